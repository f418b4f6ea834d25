package api

// TradingType selects the trading environment a strategy runs in. It picks
// both the endpoint family for job control and the instance key cache slot.
type TradingType string

const (
	TradingTypeBacktesting  TradingType = "BACKTESTING"
	TradingTypePaperTrading TradingType = "PAPERTRADING"
	TradingTypeRealTrading  TradingType = "REALTRADING"
)

// IsValid reports whether t is one of the three known trading types.
func (t TradingType) IsValid() bool {
	switch t {
	case TradingTypeBacktesting, TradingTypePaperTrading, TradingTypeRealTrading:
		return true
	}
	return false
}

// ReportType selects which report a job query retrieves.
type ReportType string

const (
	ReportTypePnLTable     ReportType = "PNL_TABLE"
	ReportTypeStatsTable   ReportType = "STATS_TABLE"
	ReportTypeOrderHistory ReportType = "ORDER_HISTORY"
)

// IsValid reports whether r is one of the known report types.
func (r ReportType) IsValid() bool {
	switch r {
	case ReportTypePnLTable, ReportTypeStatsTable, ReportTypeOrderHistory:
		return true
	}
	return false
}

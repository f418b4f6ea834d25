// Package reports decodes the tabular payloads returned by the AlgoBulls
// reporting endpoints (P&L table, statistics table, order history) into
// typed rows. The backend serializes money fields inconsistently, as JSON
// numbers or as strings, so all amounts go through decimal parsing.
package reports

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/algobulls/goalgotrading/pkg/api"
)

// PnLRow is one closed position from the P&L table report.
type PnLRow struct {
	Instrument     string
	EntryTimestamp string
	EntryIsBuy     bool
	EntryQuantity  decimal.Decimal
	EntryPrice     decimal.Decimal
	ExitTimestamp  string
	ExitQuantity   decimal.Decimal
	ExitPrice      decimal.Decimal
	PnLAbsolute    decimal.Decimal
	PnLCumulative  decimal.Decimal
}

// StatsRow is one named figure from the statistics table report.
type StatsRow struct {
	Name  string
	Value decimal.Decimal
}

// OrderState is one transition in an order's lifecycle.
type OrderState struct {
	State     string
	Timestamp string
}

// OrderHistoryRow is one order with its state transition log.
type OrderHistoryRow struct {
	OrderID    string
	Instrument string
	States     []OrderState
}

// ParsePnLTable decodes a GetReports PNL_TABLE response. A response without
// a data section yields no rows.
func ParsePnLTable(resp api.Response) ([]PnLRow, error) {
	items, err := dataRows(resp)
	if err != nil || items == nil {
		return nil, err
	}

	rows := make([]PnLRow, 0, len(items))
	for i, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			return nil, errors.Errorf("pnl table row %d: not an object", i)
		}
		entry, _ := m["entry"].(map[string]any)
		exit, _ := m["exit"].(map[string]any)
		rows = append(rows, PnLRow{
			Instrument:     asString(m["instrument"]),
			EntryTimestamp: asString(entry["timestamp"]),
			EntryIsBuy:     asBool(entry["isBuy"]),
			EntryQuantity:  asDecimal(entry["quantity"]),
			EntryPrice:     asDecimal(entry["price"]),
			ExitTimestamp:  asString(exit["timestamp"]),
			ExitQuantity:   asDecimal(exit["quantity"]),
			ExitPrice:      asDecimal(exit["price"]),
			PnLAbsolute:    asDecimal(m["pnlAbsolute"]),
			PnLCumulative:  asDecimal(m["pnlCumulativeAbsolute"]),
		})
	}
	return rows, nil
}

// ParseStatsTable decodes a GetReports STATS_TABLE response.
func ParseStatsTable(resp api.Response) ([]StatsRow, error) {
	items, err := dataRows(resp)
	if err != nil || items == nil {
		return nil, err
	}

	rows := make([]StatsRow, 0, len(items))
	for i, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			return nil, errors.Errorf("stats table row %d: not an object", i)
		}
		rows = append(rows, StatsRow{
			Name:  asString(m["name"]),
			Value: asDecimal(m["value"]),
		})
	}
	return rows, nil
}

// ParseOrderHistory decodes a GetReports ORDER_HISTORY response.
func ParseOrderHistory(resp api.Response) ([]OrderHistoryRow, error) {
	items, err := dataRows(resp)
	if err != nil || items == nil {
		return nil, err
	}

	rows := make([]OrderHistoryRow, 0, len(items))
	for i, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			return nil, errors.Errorf("order history row %d: not an object", i)
		}
		row := OrderHistoryRow{
			OrderID:    asString(m["orderId"]),
			Instrument: asString(m["instrument"]),
		}
		if states, ok := m["states"].([]any); ok {
			for _, s := range states {
				sm, ok := s.(map[string]any)
				if !ok {
					continue
				}
				row.States = append(row.States, OrderState{
					State:     asString(sm["state"]),
					Timestamp: asString(sm["timestamp"]),
				})
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func dataRows(resp api.Response) ([]any, error) {
	raw, ok := resp["data"]
	if !ok || raw == nil {
		return nil, nil
	}
	items, ok := raw.([]any)
	if !ok {
		return nil, errors.New("report data is not a list")
	}
	return items, nil
}

func asString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	default:
		return fmt.Sprint(t)
	}
}

func asBool(v any) bool {
	b, _ := v.(bool)
	return b
}

// asDecimal accepts JSON numbers, numeric strings, and the backend's
// occasional {"value": ...} wrapper. Anything else decodes as zero.
func asDecimal(v any) decimal.Decimal {
	switch t := v.(type) {
	case float64:
		return decimal.NewFromFloat(t)
	case string:
		d, err := decimal.NewFromString(t)
		if err != nil {
			return decimal.Zero
		}
		return d
	case map[string]any:
		return asDecimal(t["value"])
	default:
		return decimal.Zero
	}
}

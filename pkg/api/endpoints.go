package api

// API endpoint paths.
const (
	// Strategy build (create / update / list / details share one path,
	// distinguished by HTTP method)
	EndpointStrategyBuild = "/v2/user/strategy/build/python"

	// Instrument search (public, no authorization)
	EndpointInstrumentSearch = "/v2/instrument/search"

	// Strategy registration per trading type; returns the instance key
	EndpointPortfolioStrategy = "/v2/portfolio/strategy"

	// Job control, one endpoint family per trading type
	EndpointRealTradingJobs  = "/v2/portfolio/strategies"
	EndpointPaperTradingJobs = "/v2/papertrading/strategies"
	EndpointBacktestingJobs  = "/v2/backtesting/strategies"

	// Job status and logs
	EndpointJobStatus = "/v2/user/strategy/status"
	EndpointJobLogs   = "/v2/user/strategy/logs"

	// Reports
	EndpointPnLTable     = "/v2/user/strategy/pltable"
	EndpointStatsTable   = "/v2/user/strategy/statstable"
	EndpointOrderHistory = "/v2/user/strategy/orderhistory"
)

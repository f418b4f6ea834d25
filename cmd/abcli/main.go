// abcli is a command line front end for the AlgoBulls API client.
//
// Usage:
//
//	abcli [flags] search <text>
//	abcli [flags] strategies
//	abcli [flags] strategy <code>
//	abcli [flags] create <name> <file> <abc-version>
//	abcli [flags] update <name> <file> <abc-version>
//	abcli [flags] start|stop|status|logs <code>
//	abcli [flags] report <code>
//
// The access token comes from ALGOBULLS_ACCESS_TOKEN, a .env file, or the
// YAML config given with -config.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/algobulls/goalgotrading/pkg/api"
	"github.com/algobulls/goalgotrading/pkg/config"
	"github.com/algobulls/goalgotrading/pkg/logger"
	"github.com/algobulls/goalgotrading/pkg/reports"
)

func main() {
	_ = godotenv.Load()

	configPath := flag.String("config", "", "path to YAML config file (optional)")
	mode := flag.String("mode", "BACKTESTING", "trading type: BACKTESTING, PAPERTRADING or REALTRADING")
	reportType := flag.String("report-type", "PNL_TABLE", "report type: PNL_TABLE, STATS_TABLE or ORDER_HISTORY")
	flag.Parse()

	var cfg *config.Config
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		cfg = loaded
	} else {
		cfg = config.LoadFromEnv()
	}

	if err := logger.Init(cfg.LoggerConfig()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	client := api.NewClient(cfg.BaseURL)
	if cfg.AccessToken != "" {
		client.SetAccessToken(cfg.AccessToken)
	}

	args := flag.Args()
	if len(args) == 0 {
		flag.Usage()
		os.Exit(2)
	}

	tt := api.TradingType(*mode)
	if !tt.IsValid() {
		logrus.Fatalf("unknown trading type %q", *mode)
	}

	if err := run(client, args, tt, api.ReportType(*reportType)); err != nil {
		logrus.Fatal(err)
	}
}

func run(client *api.Client, args []string, tt api.TradingType, rt api.ReportType) error {
	cmd, rest := args[0], args[1:]

	switch cmd {
	case "search":
		requireArgs(rest, 1, "search <text>")
		return printResult(client.SearchInstrument(rest[0]))

	case "strategies":
		return printResult(client.GetAllStrategies())

	case "strategy":
		requireArgs(rest, 1, "strategy <code>")
		return printResult(client.GetStrategyDetails(rest[0]))

	case "create", "update":
		requireArgs(rest, 3, cmd+" <name> <file> <abc-version>")
		source, err := os.ReadFile(rest[1])
		if err != nil {
			return err
		}
		if cmd == "create" {
			return printResult(client.CreateStrategy(rest[0], string(source), rest[2]))
		}
		return printResult(client.UpdateStrategy(rest[0], string(source), rest[2]))

	case "start", "stop":
		requireArgs(rest, 1, cmd+" <code>")
		var sub *api.JobSubmission
		var err error
		if cmd == "start" {
			sub, err = client.StartJob(rest[0], tt)
		} else {
			sub, err = client.StopJob(rest[0], tt)
		}
		if err != nil {
			return err
		}
		if !sub.Accepted() {
			fmt.Printf("refused by platform: %v\n", sub.Rejected.Body)
			return nil
		}
		return printResult(sub.Response, nil)

	case "status":
		requireArgs(rest, 1, "status <code>")
		return printResult(client.GetJobStatus(rest[0], tt))

	case "logs":
		requireArgs(rest, 1, "logs <code>")
		return printResult(client.GetLogs(rest[0], tt))

	case "report":
		requireArgs(rest, 1, "report <code>")
		resp, err := client.GetReports(rest[0], tt, rt)
		if err != nil {
			return err
		}
		return printReport(resp, rt)

	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func printResult(resp api.Response, err error) error {
	if err != nil {
		return err
	}
	out, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

func printReport(resp api.Response, rt api.ReportType) error {
	switch rt {
	case api.ReportTypePnLTable:
		rows, err := reports.ParsePnLTable(resp)
		if err != nil {
			return err
		}
		for _, r := range rows {
			fmt.Printf("%-20s entry %s @ %s x %s  exit %s @ %s  pnl %s (cum %s)\n",
				r.Instrument, r.EntryTimestamp, r.EntryPrice, r.EntryQuantity,
				r.ExitTimestamp, r.ExitPrice, r.PnLAbsolute, r.PnLCumulative)
		}
	case api.ReportTypeStatsTable:
		rows, err := reports.ParseStatsTable(resp)
		if err != nil {
			return err
		}
		for _, r := range rows {
			fmt.Printf("%-30s %s\n", r.Name, r.Value)
		}
	case api.ReportTypeOrderHistory:
		rows, err := reports.ParseOrderHistory(resp)
		if err != nil {
			return err
		}
		for _, r := range rows {
			fmt.Printf("order %s (%s)\n", r.OrderID, r.Instrument)
			for _, s := range r.States {
				fmt.Printf("  %s  %s\n", s.Timestamp, s.State)
			}
		}
	default:
		return printResult(resp, nil)
	}
	return nil
}

func requireArgs(args []string, n int, usage string) {
	if len(args) < n {
		fmt.Fprintf(os.Stderr, "usage: abcli %s\n", usage)
		os.Exit(2)
	}
}

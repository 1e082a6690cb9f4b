package main

import (
	"flag"
	"strings"

	"go.uber.org/fx"

	"github.com/notehive/payout-ledger-api/internal/app"
)

var defaultBin string

func selectedModules(binValue string) []fx.Option {
	selected := strings.TrimSpace(strings.ToLower(binValue))

	switch selected {
	case "auth":
		return []fx.Option{
			app.AuthModule(),
		}
	case "ledger":
		return []fx.Option{
			app.LedgerModule(),
		}
	default:
		return []fx.Option{
			app.AuthModule(),
			app.LedgerModule(),
		}
	}
}

func main() {
	bin := flag.String("bin", defaultBin, "select module binary: auth|ledger (default: all)")
	flag.Parse()

	app.New(*bin, selectedModules(*bin)...).Run()
}

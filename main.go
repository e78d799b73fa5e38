package main

import (
	"fmt"
	"net/http"
	"os"
	"text/tabwriter"

	"go.uber.org/zap"

	"github.com/km-arc/go-inject/demo/shop"
	"github.com/km-arc/go-inject/framework/app"
	"github.com/km-arc/go-inject/framework/config"
	"github.com/km-arc/go-inject/framework/debug"
	"github.com/km-arc/go-inject/framework/logging"
)

func main() {
	cfg := config.Load() // loads .env automatically
	log := logging.MustNew(cfg.Log, cfg.App.Env)
	defer func() { _ = log.Sync() }()

	// ── Bootstrap ────────────────────────────────────────────────────────────

	app.StartApplication(&shop.Service{}, app.WithConfig(cfg), app.WithLogger(log))
	inj := app.Default()

	// ── Use the wired beans ──────────────────────────────────────────────────

	checkout := app.GetBean[*shop.Checkout]()
	if checkout == nil {
		log.Fatal("checkout is not available")
	}
	for _, line := range checkout.Buy("coffee", "!croissant") {
		fmt.Println(line)
	}

	// ── Bean table ───────────────────────────────────────────────────────────

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "BEAN\tCONTRACTS")
	contracts := map[string][]string{}
	for _, c := range debug.Contracts(inj) {
		for _, impl := range c.Implementations {
			contracts[impl] = append(contracts[impl], c.Contract)
		}
	}
	for _, b := range debug.Beans(inj) {
		fmt.Fprintf(tw, "%s\t%v\n", b.Type, contracts[b.Type])
	}
	_ = tw.Flush()

	// ── Bean inspector ───────────────────────────────────────────────────────

	if cfg.Debug.Addr == "" {
		return
	}
	log.Info("bean inspector listening", zap.String("addr", cfg.Debug.Addr))
	if err := http.ListenAndServe(cfg.Debug.Addr, debug.NewHandler(inj, log)); err != nil {
		log.Fatal("server error", zap.Error(err))
	}
}

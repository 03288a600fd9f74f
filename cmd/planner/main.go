package main

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/logrusorgru/aurora"
	"gopkg.in/alecthomas/kingpin.v2"

	"dubins-planner/internal/config"
	"dubins-planner/internal/server"
	"dubins-planner/planner"
	"dubins-planner/scenario"
)

var (
	app        = kingpin.New("planner", "Obstacle-aware route planner for a car-like vehicle.")
	configPath = app.Flag("config", "YAML configuration file.").Short('c').String()

	serveCmd = app.Command("serve", "Run the HTTP server.").Default()
	addr     = serveCmd.Flag("addr", "Listen address, overrides the config file.").String()

	planCmd   = app.Command("plan", "Plan routes for GeoJSON scenario files and print them as JSON.")
	strategy  = planCmd.Flag("strategy", "Planning strategy: grid, visibility or straight.").String()
	workers   = planCmd.Flag("workers", "Scenarios planned in parallel, 0 for one per CPU.").Default("0").Int()
	noColor   = planCmd.Flag("no-color", "Disable colored summaries.").Bool()
	scenarios = planCmd.Arg("scenario", "Scenario files.").Required().ExistingFiles()
)

func main() {
	cmd := kingpin.MustParse(app.Parse(os.Args[1:]))

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("❌ %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch cmd {
	case serveCmd.FullCommand():
		if *addr != "" {
			cfg.Addr = *addr
		}
		if err := server.New(cfg, nil).ListenAndServe(ctx); err != nil {
			log.Fatalf("❌ %v", err)
		}
	case planCmd.FullCommand():
		if err := plan(ctx, cfg); err != nil {
			log.Fatalf("❌ %v", err)
		}
	}
}

type planOutput struct {
	Scenario string         `json:"scenario"`
	Result   planner.Result `json:"result"`
	Length   float64        `json:"length"`
}

func plan(ctx context.Context, cfg config.Config) error {
	name := cfg.Strategy
	if *strategy != "" {
		name = *strategy
	}
	p, err := planner.New(name, cfg.Planner, log.Default())
	if err != nil {
		return err
	}

	loaded := make([]*scenario.Scenario, len(*scenarios))
	for i, path := range *scenarios {
		log.Printf("📂 Loading %s\n", path)
		if loaded[i], err = scenario.LoadFile(path, cfg.Scenario); err != nil {
			return err
		}
	}

	results, err := planner.PlanAll(ctx, p, loaded, *workers)
	if err != nil {
		return err
	}

	au := aurora.NewAurora(!*noColor)
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	for i, res := range results {
		outcome := au.Green(res.Outcome.String())
		if res.Outcome.Fallback() {
			outcome = au.Yellow(res.Outcome.String())
		}
		log.Printf("✅ %s: %d waypoints (%s)\n", (*scenarios)[i], len(res.Path), outcome)
		out := planOutput{Scenario: (*scenarios)[i], Result: res, Length: planner.PathLength(res.Path)}
		if err := enc.Encode(out); err != nil {
			return err
		}
	}
	return nil
}

// Command redistrict partitions a tract map into population-balanced,
// contiguous districts and prints the plan as JSON.
//
// Usage:
//
//	redistrict [-config run.yaml] [-env .env] [-out plan.json]
//
// Without -config and without data the command runs on a small built-in
// demo grid. Exit status is 0 for a complete plan, 2 for an incomplete one
// and 1 on error.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/katalvlaran/redistrict/balance"
	"github.com/katalvlaran/redistrict/config"
	"github.com/katalvlaran/redistrict/internal/logging"
	"github.com/katalvlaran/redistrict/internal/metrics"
	"github.com/katalvlaran/redistrict/partition"
)

const (
	exitOK         = 0
	exitError      = 1
	exitIncomplete = 2
)

// demoGrid is used when no data is configured: two islands bridged into
// one landmass before partitioning.
var demoGrid = [][]int{
	{4, 2, 3, 0, 5, 2},
	{1, 6, 2, 0, 3, 4},
	{3, 1, 5, 0, 1, 2},
	{2, 3, 1, 0, 6, 1},
}

// report is the JSON document written on success.
type report struct {
	Plan         *partition.Result `json:"plan"`
	Summary      balance.Summary   `json:"summary"`
	Alternatives []alternative     `json:"alternatives,omitempty"`
}

type alternative struct {
	RunID   string                  `json:"runId"`
	Policy  partition.ScoringPolicy `json:"policy"`
	Summary balance.Summary         `json:"summary"`
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("redistrict", flag.ContinueOnError)
	fs.SetOutput(stderr)
	cfgPath := fs.String("config", "", "YAML run configuration")
	envPath := fs.String("env", "", ".env file to load (default: ./.env if present)")
	outPath := fs.String("out", "", "plan output file (overrides config; default stdout)")
	if err := fs.Parse(args); err != nil {
		return exitError
	}

	cfg, err := loadConfig(*cfgPath, *envPath)
	if err != nil {
		fmt.Fprintln(stderr, "redistrict:", err)
		return exitError
	}
	if *outPath != "" {
		cfg.Output = *outPath
	}

	log, err := logging.NewText(stderr, cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(stderr, "redistrict:", err)
		return exitError
	}

	rep, err := plan(ctx, cfg, log)
	if err != nil {
		log.Error("run failed", "error", err)
		return exitError
	}
	if err := write(cfg.Output, stdout, rep); err != nil {
		log.Error("write plan", "error", err)
		return exitError
	}
	if err := rep.Plan.Err(); err != nil {
		log.Warn("plan incomplete", "error", err)
		return exitIncomplete
	}

	return exitOK
}

func loadConfig(path, envFile string) (*config.Config, error) {
	cfg := config.Default()
	if path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return nil, err
		}
	}
	var files []string
	if envFile != "" {
		files = append(files, envFile)
	}
	if err := cfg.ApplyEnv(files...); err != nil {
		return nil, err
	}
	if cfg.Data.Tracts == "" && len(cfg.Data.Grid) == 0 {
		cfg.Data.Grid = demoGrid
		cfg.Data.Bridge = 1
	}

	return cfg, nil
}

// plan loads the data, runs one Fill or a policy sweep, and ranks the
// outcomes by balance.
func plan(ctx context.Context, cfg *config.Config, log logging.Logger) (*report, error) {
	src, err := cfg.Data.Source()
	if err != nil {
		return nil, err
	}
	ds, err := src.Load(ctx)
	if err != nil {
		return nil, err
	}
	g, err := ds.Graph()
	if err != nil {
		return nil, err
	}
	log.Info("data loaded", "tracts", g.Len(), "edges", g.EdgeCount(), "population", g.TotalPopulation())

	opts := []partition.Option{
		partition.WithLogger(log),
		partition.WithParallelism(cfg.Parallelism),
	}
	var reg *prometheus.Registry
	if cfg.Metrics.Enabled {
		reg = prometheus.NewRegistry()
		opts = append(opts, partition.WithMetrics(metrics.NewPrometheus(reg, cfg.Metrics.Namespace)))
	}

	var results []*partition.Result
	if len(cfg.Sweep) > 0 {
		results, err = partition.Sweep(ctx, g, cfg.Districts, cfg.Sweep, opts...)
		if err != nil {
			return nil, err
		}
	} else {
		p, err := partition.New(g, cfg.Districts, append(opts, partition.WithPolicy(cfg.Policy))...)
		if err != nil {
			return nil, err
		}
		res, err := p.Fill(ctx)
		if err != nil {
			return nil, err
		}
		results = []*partition.Result{res}
	}

	ranked := balance.Rank(g, results)
	best := ranked[0]
	if err := partition.Verify(g, best.Result); err != nil && !errors.Is(err, partition.ErrIncomplete) {
		return nil, fmt.Errorf("verify plan %s: %w", best.Result.RunID, err)
	}
	rep := &report{Plan: best.Result, Summary: best.Summary}
	for _, r := range ranked[1:] {
		rep.Alternatives = append(rep.Alternatives, alternative{
			RunID:   r.Result.RunID,
			Policy:  r.Result.Policy,
			Summary: r.Summary,
		})
	}

	if reg != nil && cfg.Metrics.Textfile != "" {
		if err := prometheus.WriteToTextfile(cfg.Metrics.Textfile, reg); err != nil {
			return nil, fmt.Errorf("write metrics: %w", err)
		}
	}

	return rep, nil
}

func write(path string, stdout io.Writer, rep *report) (err error) {
	w := stdout
	if path != "" {
		var f *os.File
		if f, err = os.Create(path); err != nil {
			return err
		}
		defer func() {
			if cerr := f.Close(); err == nil {
				err = cerr
			}
		}()
		w = f
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(rep)
}

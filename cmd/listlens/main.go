package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"listlens/internal/cmdlog"
	"listlens/internal/config"
	"listlens/internal/jobs"
	"listlens/internal/logging"
	"listlens/internal/model"
	"listlens/internal/pipeline"
	"listlens/internal/report"
	"listlens/internal/server"
	"listlens/internal/store/filestore"
	"listlens/internal/store/runstore"
	"listlens/internal/suggest"
	"listlens/internal/theme"
	"listlens/internal/xclient"
)

func main() {
	cmd := ""
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}
	switch cmd {
	case "init":
		cmdInit()
	case "scrape":
		cmdScrape()
	case "clean":
		cmdClean()
	case "leads":
		cmdLeads()
	case "report":
		cmdReport()
	case "icebreak":
		cmdIcebreak()
	case "serve":
		cmdServe()
	default:
		printHelp()
	}
}

func printHelp() {
	theme.PrintBanner()
	fmt.Println("Usage: listlens <command> [options]")
	fmt.Println("Commands:")
	fmt.Println("  init        Create a config file at ./listlens.yaml")
	fmt.Println("  scrape      Fetch the list timeline, clean it, and persist the run")
	fmt.Println("  clean       Clean a locally saved raw timeline file")
	fmt.Println("  leads       Print potential leads from the latest cleaned batch")
	fmt.Println("  report      Print the dashboard analysis document")
	fmt.Println("  icebreak    Print per-author icebreakers with the cleaned batch")
	fmt.Println("  serve       Serve the dashboard API")
}

func fatal(err error) {
	fmt.Println("error:", err)
	os.Exit(1)
}

func mustLoadConfig(path string) config.Config {
	cfg, err := config.Load(path)
	if err != nil {
		fatal(err)
	}
	if cfg.Credentials.BearerToken == "" {
		fmt.Println("warning: missing X_BEARER_TOKEN; API calls will fail")
	}
	return cfg
}

func mustCleaner(cfg config.Config) *pipeline.Cleaner {
	mode, err := model.ParseMode(cfg.Pipeline.Mode)
	if err != nil {
		fatal(err)
	}
	return pipeline.New(mode, cfg.List.BaseURL)
}

func cmdInit() {
	fs := flag.NewFlagSet("init", flag.ExitOnError)
	path := fs.String("path", "./listlens.yaml", "path to write config")
	_ = fs.Parse(os.Args[2:])
	if err := config.Save(*path, config.Default()); err != nil {
		fatal(err)
	}
	abs, _ := filepath.Abs(*path)
	theme.PrintBanner()
	fmt.Println("Config written to:", abs)
}

func cmdScrape() {
	fs := flag.NewFlagSet("scrape", flag.ExitOnError)
	cfgPath := fs.String("config", "./listlens.yaml", "config path")
	out := fs.String("out", "x-data.json", "output file name for bronze/gold dumps")
	every := fs.Duration("every", 0, "rerun interval; 0 runs once")
	_ = fs.Parse(os.Args[2:])
	cfg := mustLoadConfig(*cfgPath)
	log := logging.New(os.Getenv("APP_ENV"))

	db, err := runstore.Open(cfg.Storage.DBPath)
	if err != nil {
		fatal(err)
	}
	defer db.Close()

	d := jobs.Deps{
		Client:  xclient.NewHTTPClient(cfg.Credentials.BearerToken),
		Cleaner: mustCleaner(cfg),
		DB:      db,
		Log:     log,
		Cfg:     cfg,
	}
	ctx := context.Background()
	err = cmdlog.Run(log, "scrape", func() error {
		if *every > 0 {
			return jobs.RunScrapeLoop(ctx, d, *out, *every)
		}
		data, err := jobs.RunScrapeOnce(ctx, d, *out)
		if err != nil {
			return err
		}
		fmt.Printf("Cleaned %d posts (mode=%s)\n", len(data.Posts), data.Mode)
		return nil
	})
	if err != nil {
		os.Exit(1)
	}
}

func cmdClean() {
	fs := flag.NewFlagSet("clean", flag.ExitOnError)
	in := fs.String("in", "", "path to a raw timeline JSON file")
	out := fs.String("out", "", "path to write the cleaned batch (stdout if empty)")
	mode := fs.String("mode", "rich", "output schema: rich or simplified")
	base := fs.String("base", "https://x.com", "platform base URL")
	_ = fs.Parse(os.Args[2:])
	if *in == "" {
		fatal(fmt.Errorf("missing -in"))
	}
	m, err := model.ParseMode(*mode)
	if err != nil {
		fatal(err)
	}
	b, err := os.ReadFile(*in)
	if err != nil {
		fatal(err)
	}
	data, stats, err := pipeline.New(m, *base).CleanJSON(b)
	if err != nil {
		fatal(err)
	}
	if *out == "" {
		printJSON(data)
	} else if err := filestore.SaveJSON(*out, data); err != nil {
		fatal(err)
	}
	fmt.Printf("Entries: %d, kept: %d, dropped: %d\n",
		stats.Entries, stats.Kept, stats.DroppedModule+stats.DroppedNoTweet+stats.DroppedEmpty)
}

func cmdLeads() {
	data, _ := mustLoadData()
	printJSON(report.BuildNewsletter(data).PotentialLeads)
}

func cmdReport() {
	data, cfg := mustLoadData()
	listURL := cfg.List.BaseURL + "/i/lists/" + cfg.List.ID
	printJSON(report.BuildListAnalysis(data, listURL, cfg.List.ID, time.Now()))
}

func cmdIcebreak() {
	data, cfg := mustLoadData()
	icebreakers := suggest.Icebreakers(context.Background(), data, cfg.LLM, cfg.List.BaseURL)
	printJSON(suggest.BuildSummary(data, icebreakers))
}

func cmdServe() {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	cfgPath := fs.String("config", "./listlens.yaml", "config path")
	_ = fs.Parse(os.Args[2:])
	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fatal(err)
	}
	log := logging.New(os.Getenv("APP_ENV"))
	db, err := runstore.Open(cfg.Storage.DBPath)
	if err != nil {
		fatal(err)
	}
	defer db.Close()
	theme.PrintBanner()
	if err := server.New(db, log, cfg.List.ID, cfg.List.BaseURL).ListenAndServe(cfg.Server.Addr); err != nil {
		fatal(err)
	}
}

// mustLoadData resolves the cleaned batch the read-only commands operate on:
// an explicit -in file, or the latest stored run.
func mustLoadData() (model.CleanedData, config.Config) {
	fs := flag.NewFlagSet(os.Args[1], flag.ExitOnError)
	cfgPath := fs.String("config", "./listlens.yaml", "config path")
	in := fs.String("in", "", "path to a cleaned JSON file; latest stored run if empty")
	_ = fs.Parse(os.Args[2:])
	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fatal(err)
	}
	if *in != "" {
		data, err := filestore.ReadCleaned(*in)
		if err != nil {
			fatal(err)
		}
		return data, cfg
	}
	db, err := runstore.Open(cfg.Storage.DBPath)
	if err != nil {
		fatal(err)
	}
	defer db.Close()
	run, err := db.Latest(context.Background())
	if err != nil {
		fatal(err)
	}
	var data model.CleanedData
	if err := json.Unmarshal(run.Payload, &data); err != nil {
		fatal(err)
	}
	return data, cfg
}

func printJSON(v any) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fatal(err)
	}
	fmt.Println(string(b))
}

// Package main is the interactive terminal job browser. It loads the same
// layered configuration as the service, mounts one listing controller and
// drives it from stdin.
package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"

	"github.com/badhon18478/Marketplace-sub000/internal/adapters/clients/acl"
	"github.com/badhon18478/Marketplace-sub000/internal/app"
	"github.com/badhon18478/Marketplace-sub000/internal/cli"
	"github.com/badhon18478/Marketplace-sub000/internal/platform/config"
	"github.com/badhon18478/Marketplace-sub000/internal/platform/httpclient"
	"github.com/badhon18478/Marketplace-sub000/internal/platform/logging"
)

const listingServiceName = "marketplace-api"

type CLI struct {
	Profile   string `help:"Configuration profile (local, dev, qa, prod)." env:"APP_PROFILE" default:"local"`
	ConfigDir string `help:"Directory holding base.yaml and the profile files." name:"config-dir" type:"path" default:"configs"`
	Query     string `help:"Initial view as a query string or full link, e.g. 'category=WebDevelopment&page=2'." short:"q"`
	Color     string `help:"Color output: auto, always, never." enum:"auto,always,never" default:"auto"`
	LinkBase  string `help:"Page URL shareable links are built on. Defaults to browse.link_base." name:"link-base"`
	Verbose   bool   `help:"Enable debug logging."`
}

func main() {
	var flags CLI
	parser, err := kong.New(&flags,
		kong.Name("jobbrowse"),
		kong.Description("Browse marketplace job listings from the terminal."),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true}),
	)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	// .env is loaded before parsing so APP_PROFILE may come from it.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "loading .env: %v\n", err)
		os.Exit(1)
	}

	if _, err := parser.Parse(os.Args[1:]); err != nil {
		fallbackUI := cli.NewUI(os.Stdout, os.Stderr, cli.ColorAuto)
		fallbackUI.Errorf("%v", err)
		os.Exit(1)
	}

	ui := cli.NewUI(os.Stdout, os.Stderr, cli.NormalizeColorMode(flags.Color))
	if err := run(&flags, ui); err != nil {
		ui.Errorf("error: %v", err)
		os.Exit(1)
	}
}

func run(flags *CLI, ui *cli.UI) error {
	cfg, err := config.Load(flags.Profile, config.WithConfigDir(flags.ConfigDir))
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	params, err := cli.ParseInitialQuery(flags.Query)
	if err != nil {
		return err
	}

	// Log lines share stderr with the REPL warnings, so only problems are
	// logged unless --verbose is set.
	level := "warn"
	if flags.Verbose {
		level = "debug"
	}
	logger := logging.New(level, "text", os.Stderr)

	client := httpclient.New(&cfg.Client, listingServiceName, nil, logger)
	jobs := acl.NewJobClient(client, cfg.Browse.ListingPath, logger)
	service := app.NewBrowseService(jobs, app.BrowseSettings{
		FetchTimeout:    cfg.Browse.FetchTimeout,
		CategoryWorkers: cfg.Browse.CategoryWorkers,
	}, nil, logger)

	linkBase := flags.LinkBase
	if linkBase == "" {
		linkBase = cfg.Browse.LinkBase
	}
	link := cli.NewLinkLocation(linkBase)
	controller := service.NewController(cli.NewWarnNotifier(ui), link)

	logger.Debug("browsing jobs",
		slog.String("listing_url", jobs.ListingURL()),
		slog.String("profile", flags.Profile),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ui.Infof("Type help for commands.")
	return cli.NewSession(controller, ui, link, os.Stdin).Run(ctx, params)
}

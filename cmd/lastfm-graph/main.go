package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/handiism/lastfm-graph/internal/config"
	"github.com/handiism/lastfm-graph/internal/explore"
	"github.com/handiism/lastfm-graph/internal/http"
	"github.com/handiism/lastfm-graph/internal/model"
)

func main() {
	// Command line flags
	var (
		tagFlag      = flag.String("tag", "", "Tag name(s) to explore (comma-separated or newline-separated)")
		configFlag   = flag.String("config", "", "Path to config file (default: user config dir)")
		depthFlag    = flag.Int("depth", -1, "Similar-tag levels to walk (overrides config)")
		verboseFlag  = flag.Bool("verbose", false, "Show verbose output")
		playlistFlag = flag.String("playlist", "", "Write a playlist of the first tag's top tracks to this file or directory")
		coverFlag    = flag.String("cover", "", "Save the top album cover of the first tag (or of the retagged track's top tag) to this file or directory; with -retag it is also embedded")
		retagFlag    = flag.String("retag", "", "Write the top tags of this MP3's track as its genre")
	)

	flag.Usage = config.FUsage(flag.CommandLine.Output(), "Environment variables:", func() {
		fmt.Fprintln(flag.CommandLine.Output(), "Usage:")
		fmt.Fprintln(flag.CommandLine.Output(), "  lastfm-graph -tag <name> [options]")
		fmt.Fprintln(flag.CommandLine.Output(), "  lastfm-graph <name> [options]")
		fmt.Fprintln(flag.CommandLine.Output(), "  lastfm-graph -retag <file.mp3>")
		fmt.Fprintln(flag.CommandLine.Output())
		flag.PrintDefaults()
	})
	flag.Parse()

	tags := *tagFlag
	if tags == "" && flag.NArg() > 0 {
		tags = flag.Arg(0)
	}

	if tags == "" && *retagFlag == "" {
		fmt.Println("Last.fm Graph - Explore tags, their neighbours and charts")
		fmt.Println()
		fmt.Println("For interactive mode, use: lastfm-graph-tui")
		fmt.Println()
		flag.Usage()
		os.Exit(1)
	}

	// Load config
	path := *configFlag
	if path == "" {
		path = config.DefaultPath()
	}
	settings, err := config.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	// Apply flags
	if *depthFlag >= 0 {
		settings.ExploreDepth = *depthFlag
	}
	if *verboseFlag && config.ParseLogLevel(settings.LogLevel) > slog.LevelInfo {
		settings.LogLevel = "INFO"
	}
	config.InitLogging(settings.LogLevel)

	if settings.APIKey == "" {
		fmt.Fprintln(os.Stderr, "Error: no API key; set LASTFM_API_KEY or api_key in", path)
		os.Exit(1)
	}

	// Handle interrupts
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Println("\nInterrupted, cancelling...")
		cancel()
	}()

	client := http.NewClient(settings.Timeout(), settings.UserAgent)
	app := &app{
		settings: settings,
		client:   client,
		session:  http.NewSession(client, settings.ToSessionConfig()),
	}

	var root *explore.Summary
	if tags != "" {
		root = app.exploreTags(ctx, tags, *verboseFlag)
		if *playlistFlag != "" {
			if err := app.writePlaylist(ctx, root, *playlistFlag); err != nil {
				exit(ctx, "Error writing playlist", err)
			}
		}
	}

	var genres []*model.Tag
	if *retagFlag != "" {
		genres, err = app.trackTags(ctx, *retagFlag)
		if err != nil {
			exit(ctx, "Error reading track", err)
		}
	}

	var cover *coverArt
	if *coverFlag != "" {
		albums, err := coverCandidates(ctx, root, genres)
		if err != nil {
			exit(ctx, "Error finding cover", err)
		}
		if cover, err = app.saveCover(ctx, albums, *coverFlag); err != nil {
			exit(ctx, "Error saving cover", err)
		}
	}

	if *retagFlag != "" {
		if err := app.retag(ctx, *retagFlag, genres, cover); err != nil {
			exit(ctx, "Error retagging", err)
		}
	}
}

// exit reports err and terminates, with 130 when the run was interrupted.
func exit(ctx context.Context, what string, err error) {
	if ctx.Err() != nil || errors.Is(err, context.Canceled) {
		fmt.Println("\nCancelled.")
		os.Exit(130)
	}
	fmt.Fprintf(os.Stderr, "%s: %v\n", what, err)
	os.Exit(1)
}

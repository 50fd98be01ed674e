package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/handiism/lastfm-graph/internal/config"
	"github.com/handiism/lastfm-graph/internal/http"
	"github.com/handiism/lastfm-graph/internal/tui"
)

func main() {
	configFlag := flag.String("config", "", "Path to config file (default: user config dir)")
	flag.Usage = config.FUsage(flag.CommandLine.Output(), "Environment variables:", flag.PrintDefaults)
	flag.Parse()

	path := *configFlag
	if path == "" {
		path = config.DefaultPath()
	}
	settings, err := config.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	// Log output would corrupt the alternate screen.
	config.InitLogging("ERROR")

	if settings.APIKey == "" {
		fmt.Fprintln(os.Stderr, "Error: no API key; set LASTFM_API_KEY or api_key in", path)
		os.Exit(1)
	}

	client := http.NewClient(settings.Timeout(), settings.UserAgent)
	session := http.NewSession(client, settings.ToSessionConfig())

	if err := tui.Run(session, settings); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

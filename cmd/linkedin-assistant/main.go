/*
Package main is the entry point for the linkedin-assistant CLI.

linkedin-assistant keeps a user's writing samples and AI preferences and
drafts LinkedIn comments in that voice, either from the command line or
through a local HTTP API used by the browser UI.

Usage:

	linkedin-assistant [command]

Available Commands:

	settings    Show or change AI settings
	api-key     Manage the LinkedIn API key
	samples     Manage writing samples
	feed        Fetch recent posts, optionally drafting comments
	comment     Generate, post or schedule comments
	posts       Manage scheduled posts
	learning    Manage tone learning
	config      Inspect or create the configuration file
	serve       Run the local HTTP API
	version     Show version information

Examples:

	# Add a writing sample and draft comments for the feed
	linkedin-assistant samples add "Excited to share my thoughts on leadership."
	linkedin-assistant feed --generate

	# Serve the API for the browser UI
	linkedin-assistant serve
*/
package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"

	"github.com/growthkit/linkedin-assistant/internal/cli"
	"github.com/growthkit/linkedin-assistant/internal/version"
)

// Version information (set via ldflags during build)
var (
	buildVersion = "dev"
	buildCommit  = "none"
	buildDate    = "unknown"
)

func main() {
	// .env is optional; LINKEDIN_ASSISTANT_* variables override the config file.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "Warning: failed to load .env: %v\n", err)
	}

	version.Version = buildVersion
	version.Commit = buildCommit
	version.Date = buildDate

	if err := cli.NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

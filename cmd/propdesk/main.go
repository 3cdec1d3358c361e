// cmd/propdesk/main.go
//
// This is the entry point for the propdesk client.
//
// Flow:
// 1. Resolve the config directory (~/.propdesk by default)
// 2. Load the YAML config, applying command line overrides
// 3. Open the session logbook and the backend client
// 4. Launch the TUI

package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"

	"propdesk/internal/api"
	"propdesk/internal/config"
	"propdesk/internal/logbook"
	"propdesk/internal/tui"
)

func main() {
	var (
		configDir  string
		department string
		baseURL    string
		token      string
	)
	pflag.StringVar(&configDir, "config", "", "config directory (default ~/.propdesk)")
	pflag.StringVar(&department, "department", "", "override the active department for this session")
	pflag.StringVar(&baseURL, "base-url", "", "override the backend base URL")
	pflag.StringVar(&token, "token", "", "override the backend bearer token")
	pflag.Parse()

	if configDir == "" {
		dir, err := config.DefaultDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error resolving config directory: %v\n", err)
			os.Exit(1)
		}
		configDir = dir
	}
	if err := config.InitDir(configDir); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing %s: %v\n", configDir, err)
		os.Exit(1)
	}

	cfg, err := config.Load(configDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if baseURL != "" {
		cfg.File.API.BaseURL = baseURL
	}
	if token != "" {
		cfg.File.API.Token = token
	}
	if department != "" {
		if err := cfg.SetDepartment(department); err != nil {
			fmt.Fprintf(os.Stderr, "Error switching department: %v\n", err)
			os.Exit(1)
		}
	}

	book, err := logbook.Open(cfg.LogPath())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening logbook: %v\n", err)
		os.Exit(1)
	}

	client := api.New(cfg.BaseURL(), cfg.Token())

	// tea.NewProgram creates a new bubbletea application;
	// tui.NewApp returns our main application model.
	p := tea.NewProgram(
		tui.NewApp(cfg, client, book),
		tea.WithAltScreen(),
	)
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		os.Exit(1)
	}
}

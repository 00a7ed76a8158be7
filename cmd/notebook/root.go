package main

import (
	"fmt"
	"io"
	"log"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/csheth/notebook/internal/audio"
	"github.com/csheth/notebook/internal/config"
	"github.com/csheth/notebook/internal/layout"
	"github.com/csheth/notebook/internal/llm"
	"github.com/csheth/notebook/internal/notes"
	"github.com/csheth/notebook/internal/sources"
	"github.com/csheth/notebook/internal/tui"
)

type rootOptions struct {
	configPath  string
	noAltScreen bool
	watchDir    string
	breakpoint  int
	logFile     string
}

func newRootCommand() *cobra.Command {
	var opts rootOptions
	root := &cobra.Command{
		Use:           "notebook",
		Short:         "Chat with your documents in a three-panel terminal notebook",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts)
		},
	}
	flags := root.Flags()
	flags.StringVar(&opts.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/notebook/config.yaml)")
	flags.BoolVar(&opts.noAltScreen, "no-alt-screen", false, "disable the alternate screen buffer")
	flags.StringVar(&opts.watchDir, "watch-dir", "", "import files dropped into this directory")
	flags.IntVar(&opts.breakpoint, "breakpoint", 0, "width in columns below which panels become tabs")
	flags.StringVar(&opts.logFile, "log-file", "", "write debug logs to this file")

	root.AddCommand(newConfigPathCommand())
	return root
}

func newConfigPathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "config-path",
		Short: "Print the default config file location",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.DefaultPath()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
}

func loadConfig(cmd *cobra.Command, opts rootOptions) (config.Config, error) {
	path := opts.configPath
	if path == "" {
		var err error
		if path, err = config.DefaultPath(); err != nil {
			log.Printf("[config] %v, using defaults", err)
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, err
	}
	if cmd.Flags().Changed("watch-dir") {
		cfg.Sources.WatchDir = opts.watchDir
	}
	if cmd.Flags().Changed("breakpoint") {
		cfg.Layout.Breakpoint = opts.breakpoint
	}
	return cfg, cfg.Validate()
}

func run(cmd *cobra.Command, opts rootOptions) error {
	if opts.logFile != "" {
		f, err := tea.LogToFile(opts.logFile, "notebook")
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}

	seed := cfg.Sources.SeedEnabled()
	library := sources.NewLibrary(seed)
	recordingDelay := cfg.Studio.RecordingDelay
	tuiCfg := tui.Config{
		Layout:         layout.Classifier{Breakpoint: cfg.Layout.Breakpoint},
		Gap:            cfg.Layout.Gap,
		LLM:            llm.New(llm.Fixed(cfg.Chat.ResponseDelay)),
		Library:        library,
		Notebook:       notes.NewNotebook(seed),
		Deck:           audio.NewDeck(seed),
		RecordingDelay: &recordingDelay,
	}

	if fetcher, err := sources.NewFetcher(cfg.Sources.CacheDir, nil); err != nil {
		log.Printf("[sources] url import disabled: %v", err)
	} else {
		tuiCfg.Fetcher = fetcher
	}

	if dir := cfg.Sources.WatchDir; dir != "" {
		watcher, err := sources.NewWatcher(dir, 0)
		if err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}
		defer watcher.Close()
		watcher.MarkReported(importExisting(library, dir)...)
		log.Printf("[sources] watching %s", watcher.Dir())
		tuiCfg.Drops = watcher.Events()
	}

	programOpts := []tea.ProgramOption{}
	if !opts.noAltScreen {
		programOpts = append(programOpts, tea.WithAltScreen())
	}
	program := tea.NewProgram(tui.New(tuiCfg), programOpts...)
	_, err = program.Run()
	return err
}

// importExisting loads files already sitting in the drop folder and returns
// every path it looked at, imported or not.
func importExisting(library *sources.Library, dir string) []string {
	paths, err := sources.ScanDir(dir)
	if err != nil {
		log.Printf("[sources] scan %s: %v", dir, err)
		return nil
	}
	for _, path := range paths {
		doc, err := sources.Import(path)
		if err != nil {
			log.Printf("[sources] skip %s: %v", path, err)
			continue
		}
		library.Add(doc)
	}
	return paths
}

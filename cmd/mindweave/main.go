// Package main implements mindweave, a terminal mindmap editor with an
// infinite zoomable canvas, gesture-driven editing and parameterized
// layouts.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/mindweave/mindweave/internal/config"
	"github.com/mindweave/mindweave/internal/layout"
	"github.com/mindweave/mindweave/internal/layoutparams"
)

// Version information (set by goreleaser)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// Global flags
var (
	debugMode    bool
	debugLogPath string
	noAnimations bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "mindweave",
		Short: "Terminal mindmap editor",
		Long: `mindweave - terminal mindmap editor

An infinite zoomable canvas in your terminal: drag nodes with the mouse,
pan and zoom with wheel or pinch, and arrange the graph with built-in
layout algorithms.`,
		Example: `  # Run mindweave
  mindweave

  # Run without animations
  mindweave --no-animations

  # Run with debug logging to a file
  mindweave --debug --debug-log /tmp/mindweave.log

  # Print the configuration file path
  mindweave config path

  # List layouts and their parameters
  mindweave layouts`,
		Version: version,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runLocal()
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&debugLogPath, "debug-log", "", "Write debug logs to this file (default: XDG state dir)")
	rootCmd.PersistentFlags().BoolVar(&noAnimations, "no-animations", false, "Disable animated transitions")

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage mindweave configuration",
		Long:  `Manage the mindweave configuration file and settings`,
	}

	configPathCmd := &cobra.Command{
		Use:   "path",
		Short: "Print configuration file path",
		RunE: func(_ *cobra.Command, _ []string) error {
			path, err := config.GetConfigPath()
			if err != nil {
				return fmt.Errorf("failed to resolve config path: %w", err)
			}
			fmt.Println(path)
			return nil
		},
	}

	configResetCmd := &cobra.Command{
		Use:   "reset",
		Short: "Reset configuration to defaults",
		Long:  `Delete the configuration file; a fresh default is written on next run.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return resetConfig()
		},
	}

	configCmd.AddCommand(configPathCmd, configResetCmd)

	layoutsCmd := &cobra.Command{
		Use:   "layouts",
		Short: "List layouts and their parameters",
		RunE: func(_ *cobra.Command, _ []string) error {
			return printLayouts()
		},
	}

	rootCmd.AddCommand(configCmd, layoutsCmd)

	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(fmt.Sprintf("%s\nCommit: %s\nBuilt: %s", version, commit, date)),
	); err != nil {
		os.Exit(1)
	}
}

// printLayouts lists the built-in layouts with their parameter schemas and
// defaults.
func printLayouts() error {
	registry := layoutparams.NewRegistry()
	layout.RegisterBuiltins(registry)

	for _, id := range registry.LayoutIDs() {
		cfg, err := registry.Configuration(id)
		if err != nil {
			return err
		}
		fmt.Println(id)
		for _, p := range cfg.Parameters() {
			switch p.Kind {
			case layoutparams.Range:
				fmt.Printf("  %-14s range %v..%v (default %v, step %v)\n",
					p.Name, p.Min, p.Max, p.Float(), p.Step)
			case layoutparams.Choice:
				fmt.Printf("  %-14s choice %v (default %q)\n", p.Name, p.Choices, p.StringValue())
			case layoutparams.Boolean:
				fmt.Printf("  %-14s bool (default %v)\n", p.Name, p.Bool())
			}
		}
	}
	return nil
}

// resetConfig removes the user config file after telling the user where it
// was.
func resetConfig() error {
	path, err := config.GetConfigPath()
	if err != nil {
		return fmt.Errorf("failed to resolve config path: %w", err)
	}
	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			fmt.Println("No configuration file to reset")
			return nil
		}
		return fmt.Errorf("failed to remove config: %w", err)
	}
	fmt.Printf("Removed %s (defaults will be recreated on next run)\n", path)
	return nil
}

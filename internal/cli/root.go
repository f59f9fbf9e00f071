// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jeranaias/glide/internal/config"
)

// Version information (can be overridden at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// globalFlags are the persistent flags shared by every command.
type globalFlags struct {
	configPath string
	logLevel   string
}

// NewRootCmd builds the glide command tree. Running glide without a
// subcommand opens the composer screen.
func NewRootCmd() *cobra.Command {
	flags := &globalFlags{}

	root := &cobra.Command{
		Use:   "glide",
		Short: "Keyboard-synchronized composer and scroll coordination",
		Long: `glide docks a growing composer above a simulated on-screen keyboard.
The message list moves in lockstep with the keyboard animation and stays
pinned to the latest message while you are reading it.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTUI(cmd.Context(), flags)
		},
	}
	root.SetVersionTemplate(versionTemplate())

	root.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "",
		"config file (default ~/.glide/config.toml)")
	root.PersistentFlags().StringVar(&flags.logLevel, "log-level", "",
		"override log.level (trace, debug, info, warn, error)")

	root.AddCommand(
		newRunCmd(flags),
		newReplayCmd(flags),
		newConfigCmd(flags),
	)
	return root
}

// Execute runs the command line and returns the process exit code.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		DisplayError(os.Stderr, err)
		return GetExitCode(err)
	}
	return ExitSuccess
}

func versionTemplate() string {
	if GitCommit != "unknown" && GitCommit != "" {
		return fmt.Sprintf("glide %s\n  commit: %s\n  built:  %s\n", Version, GitCommit, BuildDate)
	}
	return fmt.Sprintf("glide %s\n", Version)
}

// path resolves the --config flag.
func (f *globalFlags) path() (string, error) {
	if f.configPath != "" {
		return f.configPath, nil
	}
	return config.DefaultPath()
}

// loadConfig loads the config file named by the flags and applies
// --log-level. It also returns the resolved path.
func (f *globalFlags) loadConfig() (*config.Config, string, error) {
	path, err := f.path()
	if err != nil {
		return nil, "", &ConfigError{Path: "~/.glide/config.toml", Err: err}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, path, &ConfigError{Path: path, Err: err}
	}
	if f.logLevel != "" {
		cfg.Log.Level = f.logLevel
	}
	return cfg, path, nil
}

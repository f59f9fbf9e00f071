// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/jeranaias/glide/internal/config"
	"github.com/jeranaias/glide/internal/keyboard"
	"github.com/jeranaias/glide/internal/logger"
	"github.com/jeranaias/glide/internal/ui/chat"
	"github.com/jeranaias/glide/internal/ui/styles"
)

func newRunCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Open the composer screen (default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTUI(cmd.Context(), flags)
		},
	}
}

// runTUI wires the keyboard, the screen and the config watcher, then runs
// the program until it quits or ctx is cancelled.
func runTUI(ctx context.Context, flags *globalFlags) error {
	if err := RequiresTTY("open the composer screen"); err != nil {
		return err
	}
	if err := CheckTerminalSize(MinTerminalWidth, MinTerminalHeight); err != nil {
		return err
	}

	cfg, path, err := flags.loadConfig()
	if err != nil {
		return err
	}
	logPath, err := cfg.LogPath()
	if err != nil {
		return &ConfigError{Path: path, Err: err}
	}
	log, closer, err := logger.NewFile(logPath, "tui", cfg.Log.Level)
	if err != nil {
		return &CommandError{Command: "run", Action: "open log", Reason: logPath, Err: err}
	}
	defer closer.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	obs := keyboard.NewObserver(keyboard.Options{Fallback: cfg.Keyboard.Fallback(), Log: log})
	defer obs.Close()
	kb := keyboard.NewSoftKeyboard(obs.Deliver, cfg.Keyboard.SoftKeyboard())

	m := chat.New(chat.Options{
		Config:   cfg,
		Theme:    styles.NewThemeWithProfile(GetColorProfile(), termenv.HasDarkBackground()),
		Observer: obs,
		Keyboard: kb,
		Log:      log,
		Context:  ctx,
	})
	defer m.Close()

	opts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}
	if cfg.UI.MouseWheel {
		opts = append(opts, tea.WithMouseCellMotion())
	}
	p := tea.NewProgram(m, opts...)
	m.SetSend(p.Send)

	go kb.Run(ctx)

	w, err := config.NewWatcher(path, config.DefaultDebounce,
		func(c *config.Config) {
			if flags.logLevel != "" {
				c.Log.Level = flags.logLevel
			}
			p.Send(chat.ConfigReloadedMsg{Config: c})
		},
		func(err error) { p.Send(chat.ConfigErrorMsg{Err: err}) },
	)
	if err != nil {
		log.Warn().Err(err).Str("path", path).Msg("config hot reload disabled")
	} else {
		go w.Run(ctx)
	}

	log.Info().Str("config", path).Str("version", Version).Msg("starting")
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return &CommandError{Command: "run", Action: "tui", Reason: "program exited", Err: err}
	}
	log.Info().Msg("stopped")
	return nil
}

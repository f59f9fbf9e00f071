// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"github.com/jeranaias/glide/internal/logger"
	"github.com/jeranaias/glide/internal/replay"
	"github.com/jeranaias/glide/internal/util"
)

func newReplayCmd(flags *globalFlags) *cobra.Command {
	var (
		every int
		list  bool
	)
	cmd := &cobra.Command{
		Use:   "replay [scenario|file]",
		Short: "Run a keyboard scenario headlessly and check the layout invariants",
		Long: `replay drives the dock with a scripted keyboard session on a manual
clock, prints one row per frame and fails if the bottom inset ever differs
from keyboard + composer + gap + safe area.

The argument is a YAML file or the name of a built-in scenario.`,
		Example: "  glide replay pinned-open\n  glide replay --every 4 ./my-scenario.yaml",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if list || len(args) == 0 {
				return listScenarios(out)
			}
			return runReplay(out, cmd.ErrOrStderr(), flags, args[0], every)
		},
	}
	cmd.Flags().IntVarP(&every, "every", "e", 1, "print one frame row in N (event rows are always printed)")
	cmd.Flags().BoolVarP(&list, "list", "l", false, "list the built-in scenarios")
	return cmd
}

func runReplay(out, errOut io.Writer, flags *globalFlags, name string, every int) error {
	cfg, _, err := flags.loadConfig()
	if err != nil {
		return err
	}

	log := logger.Nop()
	if flags.logLevel != "" {
		lvl, err := logger.ParseLevel(flags.logLevel)
		if err != nil {
			return &CommandError{Command: "replay", Action: "log", Reason: "bad --log-level", Err: err}
		}
		log = logger.New(errOut, "replay", lvl)
	}

	sc, err := replay.Load(name)
	if err != nil {
		if !isBuiltinOrFile(name) {
			return &NotFoundError{Resource: "scenario", ID: name}
		}
		return &CommandError{Command: "replay", Action: "load", Reason: name, Err: err}
	}

	res := replay.Run(sc, cfg, log)
	if err := replay.Render(out, res, replay.RenderOptions{Every: every}); err != nil {
		return err
	}
	if !res.OK() {
		return &InvariantError{Scenario: res.Scenario, Violations: len(res.Violations)}
	}
	return nil
}

// descriptionWidth caps scenario descriptions in the --list table.
const descriptionWidth = 72

func listScenarios(out io.Writer) error {
	fmt.Fprintln(out, TitleStyle.Render("Built-in scenarios"))

	tbl := uitable.New()
	tbl.Separator = "  "
	for _, name := range replay.Builtins() {
		sc, err := replay.Load(name)
		if err != nil {
			tbl.AddRow(RenderLabel(name), RenderStatus("fail"), err.Error())
			continue
		}
		tbl.AddRow(RenderLabel(name), DimStyle.Render(util.TruncateWidth(sc.Description, descriptionWidth)))
	}
	_, err := fmt.Fprintln(out, tbl)
	return err
}

// isBuiltinOrFile reports whether name refers to something replay.Load can
// read, so parse failures are not reported as missing scenarios.
func isBuiltinOrFile(name string) bool {
	if _, err := os.Stat(name); err == nil {
		return true
	}
	return slices.Contains(replay.Builtins(), name)
}

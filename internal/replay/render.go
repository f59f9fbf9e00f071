// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package replay

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/gosuri/uitable"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true)
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	failStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
)

// RenderOptions controls the frame table.
type RenderOptions struct {
	// Every prints one row in Every. Rows with an event and the last row are
	// always printed.
	Every int
}

// Table builds the frame table for res.
func Table(res *Result, opts RenderOptions) *uitable.Table {
	every := max(opts.Every, 1)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(
		headerStyle.Render("t(ms)"), headerStyle.Render("phase"), headerStyle.Render("p"),
		headerStyle.Render("kb"), headerStyle.Render("composer"), headerStyle.Render("inset"),
		headerStyle.Render("offset"), headerStyle.Render("max"), headerStyle.Render("pin"),
		headerStyle.Render("new"), headerStyle.Render("event"),
	)
	for i, r := range res.Rows {
		if i%every != 0 && r.Event == "" && i != len(res.Rows)-1 {
			continue
		}
		pin := ""
		if r.Pinned {
			pin = "*"
		}
		newContent := ""
		if r.NewContent > 0 {
			newContent = strconv.Itoa(r.NewContent)
		}
		tbl.AddRow(
			r.At.Milliseconds(), r.Phase, num(r.Progress), num(r.KeyboardHeight),
			num(r.ComposerHeight), num(r.BottomInset), num(r.Offset), num(r.MaxOffset),
			pin, newContent, r.Event,
		)
	}
	return tbl
}

// Render writes the frame table and a summary of res to w.
func Render(w io.Writer, res *Result, opts RenderOptions) error {
	if _, err := fmt.Fprintln(w, headerStyle.Render("scenario "+res.Scenario)); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, Table(res, opts)); err != nil {
		return err
	}
	return Summary(w, res)
}

// Summary writes the counters and any invariant violations.
func Summary(w io.Writer, res *Result) error {
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow("frames", len(res.Rows))
	tbl.AddRow("transitions", res.Stats.Transitions)
	tbl.AddRow("stale frames", res.Stats.Stale)
	tbl.AddRow("duplicates", res.Observer.Duplicates)
	tbl.AddRow("fallbacks", res.Observer.Degraded)
	tbl.AddRow("submitted", len(res.Submitted))
	if _, err := fmt.Fprintln(w, tbl); err != nil {
		return err
	}

	if res.OK() {
		_, err := fmt.Fprintln(w, okStyle.Render("all frames consistent"))
		return err
	}
	if _, err := fmt.Fprintln(w, failStyle.Render(fmt.Sprintf("%d violations", len(res.Violations)))); err != nil {
		return err
	}
	for _, v := range res.Violations {
		if _, err := fmt.Fprintln(w, "  "+v); err != nil {
			return err
		}
	}
	return nil
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

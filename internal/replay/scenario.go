// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package replay

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/jeranaias/glide/internal/keyboard"
)

//go:embed scenarios/*.yaml
var builtin embed.FS

// Action is a scenario step kind.
type Action string

const (
	ActionShow      Action = "show"
	ActionHide      Action = "hide"
	ActionChange    Action = "change"
	ActionAccessory Action = "accessory"
	ActionType      Action = "type"
	ActionClear     Action = "clear"
	ActionSubmit    Action = "submit"
	ActionAppend    Action = "append"
	ActionScroll    Action = "scroll"
	ActionJump      Action = "jump"
	ActionResize    Action = "resize"
)

var knownActions = map[Action]bool{
	ActionShow: true, ActionHide: true, ActionChange: true, ActionAccessory: true,
	ActionType: true, ActionClear: true, ActionSubmit: true, ActionAppend: true,
	ActionScroll: true, ActionJump: true, ActionResize: true,
}

// Scenario is a scripted session.
type Scenario struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	// Frame is the list frame height, Width the composer width.
	Frame float64 `yaml:"frame"`
	Width int     `yaml:"width"`
	// Content is the initial content height; ScrollBack starts the reader
	// that far above the bottom.
	Content    float64 `yaml:"content"`
	ScrollBack float64 `yaml:"scroll_back"`
	UntilMs    int     `yaml:"until_ms"`
	Steps      []Step  `yaml:"steps"`
}

// Step is one timed input. Keyboard steps without duration_ms or curve are
// delivered without that metadata.
type Step struct {
	AtMs       int     `yaml:"at_ms"`
	Action     Action  `yaml:"action"`
	Height     float64 `yaml:"height"`
	DurationMs int     `yaml:"duration_ms"`
	Curve      string  `yaml:"curve"`
	On         bool    `yaml:"on"`
	Text       string  `yaml:"text"`
	Lines      float64 `yaml:"lines"`
	Delta      float64 `yaml:"delta"`
	Repeat     int     `yaml:"repeat"`
	EveryMs    int     `yaml:"every_ms"`
}

// Parse decodes and validates a scenario. Steps are ordered by time and
// repeated steps are expanded.
func Parse(data []byte) (*Scenario, error) {
	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to decode scenario: %w", err)
	}
	if s.Frame <= 0 {
		return nil, fmt.Errorf("scenario %q: frame must be positive", s.Name)
	}
	if s.Width <= 0 {
		s.Width = 60
	}

	var steps []Step
	last := 0
	for i, st := range s.Steps {
		if !knownActions[st.Action] {
			return nil, fmt.Errorf("scenario %q: step %d: unknown action %q", s.Name, i, st.Action)
		}
		if st.AtMs < 0 {
			return nil, fmt.Errorf("scenario %q: step %d: at_ms must not be negative", s.Name, i)
		}
		if st.Curve != "" {
			if _, err := keyboard.ParseCurve(st.Curve); err != nil {
				return nil, fmt.Errorf("scenario %q: step %d: %w", s.Name, i, err)
			}
		}
		n := max(st.Repeat, 1)
		for r := 0; r < n; r++ {
			c := st
			c.AtMs = st.AtMs + r*st.EveryMs
			c.Repeat = 0
			steps = append(steps, c)
			last = max(last, c.AtMs)
		}
	}
	sort.SliceStable(steps, func(i, j int) bool { return steps[i].AtMs < steps[j].AtMs })
	s.Steps = steps

	if s.UntilMs <= 0 {
		s.UntilMs = last + 1000
	}
	return &s, nil
}

// Load reads a scenario from a file, or a built-in scenario by name.
func Load(name string) (*Scenario, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		data, err = fs.ReadFile(builtin, path.Join("scenarios", name+".yaml"))
		if err != nil {
			return nil, fmt.Errorf("no scenario file or built-in named %q", name)
		}
	}
	return Parse(data)
}

// Builtins lists the names of the embedded scenarios.
func Builtins() []string {
	entries, err := fs.ReadDir(builtin, "scenarios")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ".yaml"))
	}
	return names
}

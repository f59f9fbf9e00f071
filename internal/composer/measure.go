// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package composer

import (
	"errors"

	"github.com/jeranaias/glide/internal/util"
)

// ErrMeasurementUnavailable is returned when text cannot be measured because
// the entry has not been laid out yet.
var ErrMeasurementUnavailable = errors.New("composer: measurement unavailable")

// Measurer counts the display lines text occupies at a given width.
type Measurer interface {
	Lines(text string, width int) (int, error)
}

// MeasureFunc adapts a function to the Measurer interface.
type MeasureFunc func(text string, width int) (int, error)

// Lines calls f(text, width).
func (f MeasureFunc) Lines(text string, width int) (int, error) {
	return f(text, width)
}

// WrapMeasurer measures text the way the textarea wraps it: at word
// boundaries, keeping one column free for the cursor.
type WrapMeasurer struct{}

// Lines implements Measurer.
func (WrapMeasurer) Lines(text string, width int) (int, error) {
	if width < 2 {
		return 0, ErrMeasurementUnavailable
	}
	return util.CountLines(text, width-1), nil
}

// Package evaluate runs hyperparameter grid searches and per-class model
// comparisons.
package evaluate

import (
	"errors"
	"fmt"
)

// Mode selects what a comparison ranks models by.
type Mode string

const (
	// ModeScore ranks models by similarity to ground truth.
	ModeScore Mode = "score"
	// ModeTime would rank models by fitting wall-clock time. It is a
	// recognized target with no implementation; selecting it fails with
	// ErrTimeModeUnimplemented instead of silently comparing by score.
	ModeTime Mode = "time"
)

// ErrTimeModeUnimplemented is returned when a comparison is asked to rank by
// fitting time.
var ErrTimeModeUnimplemented = errors.New("comparison by fitting time is not implemented")

// ParseMode validates a mode string from config or flags.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeScore, ModeTime:
		return Mode(s), nil
	}
	return "", fmt.Errorf("invalid comparison mode %q (valid: %q, %q)", s, ModeScore, ModeTime)
}

// ValidateMode rejects everything except ModeScore before any work happens.
func ValidateMode(mode Mode) error {
	switch mode {
	case ModeScore:
		return nil
	case ModeTime:
		return ErrTimeModeUnimplemented
	default:
		return fmt.Errorf("invalid comparison mode %q (valid: %q, %q)", mode, ModeScore, ModeTime)
	}
}

package evaluate_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/skarland/clusterbench/internal/evaluate"
)

func TestParseMode(t *testing.T) {
	for _, s := range []string{"score", "time"} {
		mode, err := evaluate.ParseMode(s)
		if err != nil {
			t.Errorf("ParseMode(%q): %v", s, err)
		}
		if string(mode) != s {
			t.Errorf("ParseMode(%q) = %q", s, mode)
		}
	}
	_, err := evaluate.ParseMode("speed")
	if err == nil {
		t.Fatal("expected error for unknown mode")
	}
	if !strings.Contains(err.Error(), "speed") {
		t.Errorf("error should name the rejected mode: %v", err)
	}
}

func TestValidateMode(t *testing.T) {
	if err := evaluate.ValidateMode(evaluate.ModeScore); err != nil {
		t.Errorf("score mode rejected: %v", err)
	}
	if err := evaluate.ValidateMode(evaluate.ModeTime); !errors.Is(err, evaluate.ErrTimeModeUnimplemented) {
		t.Errorf("time mode error = %v, want ErrTimeModeUnimplemented", err)
	}
	if err := evaluate.ValidateMode("speed"); err == nil || errors.Is(err, evaluate.ErrTimeModeUnimplemented) {
		t.Errorf("unknown mode error = %v, want distinct invalid-mode error", err)
	}
}

package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/julianstephens/dentaplan/internal/models"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"plain", stderrors.New("boom"), "Error: boom"},
		{"wrapped", fmt.Errorf("saving patient: %w", models.ErrInvalidPatient), "Error: saving patient: invalid patient"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Format(tt.err); got != tt.want {
				t.Errorf("Format() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatf(t *testing.T) {
	if got := Formatf("slot %s is taken", "09:00"); got != "Error: slot 09:00 is taken" {
		t.Errorf("Formatf() = %q", got)
	}
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, 0},
		{"settings", fmt.Errorf("x: %w", models.ErrInvalidSettings), 2},
		{"appointment", fmt.Errorf("x: %w", models.ErrInvalidAppointment), 2},
		{"other", stderrors.New("disk full"), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExitCode(tt.err); got != tt.want {
				t.Errorf("ExitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}

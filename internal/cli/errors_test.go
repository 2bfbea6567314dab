package cli

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mcoot/elotrack/internal/model"
)

func TestToCLIError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code string
	}{
		{"player not found", fmt.Errorf("%w: %q", model.ErrPlayerNotFound, "Ghost"), CodePlayerNotFound},
		{"malformed score", fmt.Errorf("%w: bad", model.ErrMalformedScore), CodeMalformedScore},
		{"invalid set", model.ErrInvalidSet, CodeInvalidSet},
		{"invalid rating", model.ErrInvalidRating, CodeInvalidRating},
		{"corrupt state", fmt.Errorf("loading ladder: %w", model.ErrCorruptState), CodeCorruptState},
		{"usage", &usageError{errors.New("unknown flag: --bogus")}, CodeInvalidRequest},
		{"anything else", errors.New("disk full"), CodeInternalError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := toCLIError(tt.err)
			assert.Equal(t, tt.code, got.Code)
			assert.Equal(t, tt.err.Error(), got.Message)
		})
	}
}

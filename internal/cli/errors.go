package cli

import (
	"errors"

	"github.com/mcoot/elotrack/internal/model"
)

// CLIError is the machine-readable form of a failed command
type CLIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps a CLIError
type ErrorResponse struct {
	Error CLIError `json:"error"`
}

// Error codes
const (
	CodeInvalidRequest = "INVALID_REQUEST"
	CodePlayerNotFound = "PLAYER_NOT_FOUND"
	CodeDuplicateName  = "DUPLICATE_NAME"
	CodeInvalidName    = "INVALID_NAME"
	CodeInvalidRating  = "INVALID_RATING"
	CodeMalformedScore = "MALFORMED_SCORE"
	CodeInvalidSet     = "INVALID_SET"
	CodeStateNotFound  = "STATE_NOT_FOUND"
	CodeCorruptState   = "CORRUPT_STATE"
	CodeInternalError  = "INTERNAL_ERROR"
)

// toCLIError classifies err by the model error it wraps. The message keeps
// the full wrapped text.
func toCLIError(err error) CLIError {
	code := CodeInternalError
	switch {
	case errors.Is(err, model.ErrPlayerNotFound):
		code = CodePlayerNotFound
	case errors.Is(err, model.ErrDuplicateName):
		code = CodeDuplicateName
	case errors.Is(err, model.ErrInvalidName):
		code = CodeInvalidName
	case errors.Is(err, model.ErrInvalidRating):
		code = CodeInvalidRating
	case errors.Is(err, model.ErrMalformedScore):
		code = CodeMalformedScore
	case errors.Is(err, model.ErrInvalidSet):
		code = CodeInvalidSet
	case errors.Is(err, model.ErrStateNotFound):
		code = CodeStateNotFound
	case errors.Is(err, model.ErrCorruptState):
		code = CodeCorruptState
	case errors.As(err, new(*usageError)):
		code = CodeInvalidRequest
	}
	return CLIError{Code: code, Message: err.Error()}
}

// usageError marks a bad flag, argument or config value
type usageError struct {
	err error
}

func (e *usageError) Error() string {
	return e.err.Error()
}

func (e *usageError) Unwrap() error {
	return e.err
}

package domain

import "errors"

var (
	// ErrInvalidInput marks a caller contract violation, such as a line
	// sequence that is not exactly six long. Not retryable.
	ErrInvalidInput = errors.New("invalid input")
	// ErrDataIntegrity marks a binary signature with no entry in the
	// hexagram table. The table is exhaustive, so this means corrupted data.
	ErrDataIntegrity = errors.New("data integrity")

	ErrHexagramNotFound  = errors.New("hexagram not found")
	ErrTrigramNotFound   = errors.New("trigram not found")
	ErrSessionNotFound   = errors.New("casting session not found")
	ErrSessionComplete   = errors.New("casting session already has six lines")
	ErrSessionIncomplete = errors.New("casting session is not complete")
	ErrReadingNotFound   = errors.New("reading not found")
	ErrUpstreamLLM       = errors.New("upstream LLM failure")
	ErrInvalidLLMJSON    = errors.New("LLM returned invalid JSON after retry")
	ErrNoInterpreter     = errors.New("no interpreter configured")
)

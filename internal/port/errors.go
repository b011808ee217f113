package port

import "errors"

// Sentinel errors used across ports.
var (
	ErrMissingQuestion  = errors.New("question parameter required")
	ErrEmptyEmbedding   = errors.New("embedding backend returned no vectors")
	ErrVectorCountMatch = errors.New("chunk and vector counts differ")
)

package usecase

import "time"

const (
	// DefaultOperationTimeout bounds every store call made by an operation.
	// This keeps a slow database from blocking request handlers and lets
	// timeouts surface as infrastructure failures instead of hanging.
	DefaultOperationTimeout = 10 * time.Second

	// MaxNumberGenerationAttempts caps the account number collision retry
	// loop before failing with ErrGenerationExhausted.
	MaxNumberGenerationAttempts = 10

	// IdempotencyKeyTTL is how long idempotency keys are cached.
	IdempotencyKeyTTL = 24 * time.Hour

	defaultPageSize = 20
	maxPageSize     = 100
)

// normalizePagination clamps a limit/offset pair to sane bounds.
func normalizePagination(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = defaultPageSize
	}

	if limit > maxPageSize {
		limit = maxPageSize
	}

	if offset < 0 {
		offset = 0
	}

	return limit, offset
}

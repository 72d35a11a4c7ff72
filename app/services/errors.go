package services

import "fmt"

// ValidationError reports input the services refuse to store. Controllers
// map it to 400 Bad Request.
type ValidationError struct {
	Entity string
	Err    error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %v", e.Entity, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func invalid(entity string, err error) error {
	return &ValidationError{Entity: entity, Err: err}
}

// clampPage normalises paging input: pages start at 1, limits default to
// defaultLimit and never exceed maxLimit.
func clampPage(page, limit, defaultLimit, maxLimit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return page, limit
}

package repositories

import (
	"fmt"

	"forum/app/logging"

	"github.com/dgraph-io/badger/v4"
)

// Open opens the badger database at path. An empty path opens an in-memory
// database, which is what the tests use.
func Open(path string) (*badger.DB, error) {
	var opts badger.Options
	if path == "" {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		opts = badger.DefaultOptions(path)
	}
	opts = opts.
		WithLogger(logging.NewLogger("badger")).
		WithLoggingLevel(badger.WARNING).
		WithNumVersionsToKeep(1)

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("opening badger at %q: %w", path, err)
	}
	return db, nil
}

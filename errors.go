package idxgo

import (
	"errors"
	"fmt"

	"github.com/hupe1980/idxgo/core"
	"github.com/hupe1980/idxgo/store"
)

var (
	// ErrNilKeyFunc is returned when a constructor receives a nil key
	// extractor.
	ErrNilKeyFunc = errors.New("key extractor must not be nil")

	// ErrTooManyRecords is returned when a collection holds more records
	// than positions can address.
	ErrTooManyRecords = errors.New("collection exceeds maximum position")

	// ErrRangeOverflow is returned when a key falls outside a dense or
	// signed-integer store's allocatable range. The store's typed error
	// with the rejected key remains reachable via errors.As.
	ErrRangeOverflow = errors.New("key range overflow")

	// ErrPositionOutOfRange is returned when a caller-supplied position
	// does not address a record.
	ErrPositionOutOfRange = errors.New("position out of range")
)

// PositionOutOfRangeError reports a caller-supplied position beyond the
// record count.
//
// It unwraps to ErrPositionOutOfRange.
type PositionOutOfRangeError struct {
	Position core.Position
	Length   int
}

func (e *PositionOutOfRangeError) Error() string {
	return fmt.Sprintf("position %d out of range [0:%d)", e.Position, e.Length)
}

func (e *PositionOutOfRangeError) Unwrap() error { return ErrPositionOutOfRange }

func translateError(err error) error {
	if err == nil {
		return nil
	}

	// Range overflow unification across key types.
	if errors.Is(err, store.ErrRangeOverflow) {
		return fmt.Errorf("%w: %w", ErrRangeOverflow, err)
	}

	// Everything else, notably resource.ErrMemoryLimitExceeded, passes
	// through so errors.Is keeps matching the originating sentinel.
	return err
}

// deref resolves a store-emitted position to its record. A position beyond
// the records indicates a corrupted index and fails loudly rather than
// returning wrong results.
func deref[T any](records []T, pos core.Position) T {
	if int(pos) >= len(records) {
		panic(fmt.Sprintf("idxgo: position %d out of range [0:%d)", pos, len(records)))
	}
	return records[pos]
}

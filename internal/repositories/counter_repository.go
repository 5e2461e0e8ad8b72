package repositories

import "fmt"

// CounterRepository allocates monotonically increasing per-entity sequence
// numbers used to build human-readable IDs.
type CounterRepository interface {
	// Next increments and returns the counter for the given name, creating it
	// at zero when absent. The increment-and-read is a single statement, so
	// concurrent callers can never observe the same value for one name.
	Next(executor SQLExecutor, name string) (int64, error)
}

type counterRepository struct{}

// NewCounterRepository creates a new instance of CounterRepository.
func NewCounterRepository() CounterRepository {
	return &counterRepository{}
}

func (r *counterRepository) Next(executor SQLExecutor, name string) (int64, error) {
	query := `INSERT INTO counters (name, seq) VALUES ($1, 1)
	          ON CONFLICT (name) DO UPDATE SET seq = counters.seq + 1
	          RETURNING seq`

	var seq int64
	if err := executor.QueryRow(query, name).Scan(&seq); err != nil {
		return 0, fmt.Errorf("%w: incrementing counter %q: %v", ErrDatabaseError, name, err)
	}
	return seq, nil
}

package schema

import "context"

// Row is a single table row keyed by attribute name.
type Row map[string]any

// Cond is a conjunction of attribute equality conditions used to
// restrict fetches and deletes.
type Cond map[string]any

// TableRef identifies a table at the provider boundary.
type TableRef struct {
	// Schema is the schema binding the table lives in.
	Schema string

	// Name is the tier-prefixed storage name within the schema.
	Name string
}

// String returns the fully qualified form "schema.name".
func (r TableRef) String() string {
	return r.Schema + "." + r.Name
}

// Provider executes storage operations on behalf of materialized
// instances. The core never talks to storage itself; every fetch,
// insert, delete, and drop is forwarded here. Implementations decide
// latency, retry, and transaction behavior; failures propagate to the
// caller unchanged.
type Provider interface {
	// Describe returns a human-readable definition of the table.
	Describe(ctx context.Context, table TableRef) (string, error)

	// PrimaryKey returns the primary key attribute names in order.
	PrimaryKey(ctx context.Context, table TableRef) ([]string, error)

	// Fetch returns the rows matching cond; a nil cond matches all.
	Fetch(ctx context.Context, table TableRef, cond Cond) ([]Row, error)

	// Count returns the number of rows matching cond.
	Count(ctx context.Context, table TableRef, cond Cond) (int, error)

	// Insert writes the given rows.
	Insert(ctx context.Context, table TableRef, rows []Row) error

	// Delete removes the rows matching cond and returns how many were
	// removed; a nil cond removes all rows.
	Delete(ctx context.Context, table TableRef, cond Cond) (int, error)

	// Drop removes the table itself.
	Drop(ctx context.Context, table TableRef) error
}

// Populator is the autopopulate collaborator boundary. The population
// algorithm is external; the core only checks tier capability and
// forwards.
type Populator interface {
	// Populate fills the instance's table from its key source.
	Populate(ctx context.Context, in *Instance) error

	// Progress reports how many key-source keys remain unpopulated out
	// of the total.
	Progress(ctx context.Context, in *Instance) (remaining, total int, err error)
}

package dynamo

import "errors"

var (
	// ErrTableMissing is returned when a table has no meta item, i.e.
	// Register was never called for it.
	ErrTableMissing = errors.New("stratum/dynamo: table is not registered")

	// ErrDuplicate is returned when an insert collides with an existing
	// primary key.
	ErrDuplicate = errors.New("stratum/dynamo: duplicate primary key")

	// ErrMissingKey is returned when an inserted row lacks one of the
	// table's primary key attributes.
	ErrMissingKey = errors.New("stratum/dynamo: row is missing a primary key attribute")
)

package schema

import "errors"

var (
	// ErrNotRecognized is returned when a storage name matches no tier
	// pattern. This is an expected outcome for foreign or malformed
	// names, not an integrity fault.
	ErrNotRecognized = errors.New("stratum: storage name matches no tier")

	// ErrAmbiguousName is returned when more than one tier pattern
	// matches a storage name. A correctly ordered registry never
	// produces this; it signals registry misconfiguration.
	ErrAmbiguousName = errors.New("stratum: storage name matches multiple tiers")

	// ErrUnboundSchema is returned when an operation needs a schema
	// binding before registration has assigned one.
	ErrUnboundSchema = errors.New("stratum: entity is not bound to a schema (registration not applied?)")

	// ErrAlreadyBound is returned when a second schema binding is
	// attempted on an entity.
	ErrAlreadyBound = errors.New("stratum: entity is already bound to a schema")

	// ErrPartMutation is returned when a part table delete or drop is
	// attempted without the explicit force override. Delete from the
	// master instead.
	ErrPartMutation = errors.New("stratum: cannot delete or drop a part directly, use the master")

	// ErrInvalidMasterTier is returned when a part is declared with a
	// master that is itself a part or carries an unknown tier.
	ErrInvalidMasterTier = errors.New("stratum: part master must be a manual, lookup, imported, or computed entity")

	// ErrPartBinding is returned when Bind is called on a part, which
	// inherits its binding from the master.
	ErrPartBinding = errors.New("stratum: parts are bound through their master")

	// ErrMembersFrozen is returned when a member is declared after the
	// entity's member order has been frozen.
	ErrMembersFrozen = errors.New("stratum: member order is frozen")

	// ErrNoKeySource is returned when population is requested for an
	// entity that declared no key source.
	ErrNoKeySource = errors.New("stratum: no key source declared")

	// ErrBadIdentifier is returned for type names outside the supported
	// character set (ASCII CamelCase beginning with a capital letter).
	ErrBadIdentifier = errors.New("stratum: type name must be CamelCase ASCII alphanumeric")

	// ErrNotPopulatable is returned when population is requested for a
	// tier that does not support it.
	ErrNotPopulatable = errors.New("stratum: tier does not support population")

	// ErrNoPopulator is returned when Populate or Progress is invoked
	// on an entity with no populate collaborator attached.
	ErrNoPopulator = errors.New("stratum: no populate collaborator attached")
)

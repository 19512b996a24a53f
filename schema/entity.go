package schema

import (
	"sync"
	"sync/atomic"

	"github.com/jacentio/stratum/internal/namecase"
)

// binding is the write-once registration state shared by an entity and
// its parts. Published atomically so concurrent readers see either
// "absent" or the final value, never an intermediate.
type binding struct {
	schema   string
	provider Provider
}

// Entity is a declared schema entity. Its type name and tier are fixed
// at declaration; the schema binding is assigned exactly once, later,
// by the registration step. An Entity models a persistent schema
// object, so it is created once and never destroyed.
type Entity struct {
	typeName string
	base     string // snake_case of typeName
	tier     Tier

	master *Entity // parts only

	mu    sync.Mutex
	parts []*Entity

	members   *Members
	keySource *Expr
	populator Populator

	bound atomic.Pointer[binding]
}

// Option configures an entity at declaration time.
type Option func(*Entity)

// WithKeySource declares the expression whose keys drive population.
// Meaningful only for populate-capable tiers.
func WithKeySource(e *Expr) Option {
	return func(ent *Entity) { ent.keySource = e }
}

// WithPopulator attaches the autopopulate collaborator consulted by
// Populate and Progress.
func WithPopulator(p Populator) Option {
	return func(ent *Entity) { ent.populator = p }
}

// New declares an entity of one of the four root tiers. The type name
// must be CamelCase ASCII alphanumeric (ErrBadIdentifier otherwise);
// part entities are declared with NewPart.
func New(typeName string, tier Tier, opts ...Option) (*Entity, error) {
	if tier == Part {
		return nil, ErrInvalidMasterTier
	}
	if _, ok := tiers[tier]; !ok {
		return nil, ErrInvalidMasterTier
	}
	base, ok := namecase.Snake(typeName)
	if !ok {
		return nil, ErrBadIdentifier
	}
	ent := &Entity{
		typeName: typeName,
		base:     base,
		tier:     tier,
		members:  newMembers(),
	}
	for _, opt := range opts {
		opt(ent)
	}
	return ent, nil
}

// NewPart declares a part entity owned by master. The master must be a
// root-tier entity (ErrInvalidMasterTier otherwise); the linkage is
// immutable. The new part is registered with its master so master
// deletes and drops cascade to it.
func NewPart(master *Entity, typeName string, opts ...Option) (*Entity, error) {
	if master == nil || master.tier == Part {
		return nil, ErrInvalidMasterTier
	}
	base, ok := namecase.Snake(typeName)
	if !ok {
		return nil, ErrBadIdentifier
	}
	ent := &Entity{
		typeName: typeName,
		base:     base,
		tier:     Part,
		master:   master,
		members:  newMembers(),
	}
	for _, opt := range opts {
		opt(ent)
	}
	master.mu.Lock()
	master.parts = append(master.parts, ent)
	master.mu.Unlock()
	return ent, nil
}

// TypeName returns the identifier the entity was declared with.
func (e *Entity) TypeName() string { return e.typeName }

// Tier returns the entity's tier.
func (e *Entity) Tier() Tier { return e.tier }

// Master returns the owning master for parts, nil otherwise.
func (e *Entity) Master() *Entity { return e.master }

// Parts returns the part entities declared under this entity, in
// declaration order.
func (e *Entity) Parts() []*Entity {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]*Entity, len(e.parts))
	copy(out, e.parts)
	return out
}

// Members returns the entity's ordered member declarations.
func (e *Entity) Members() *Members { return e.members }

// StorageName returns the canonical stored table name: the tier prefix
// plus the snake_case type name, or for parts the master's storage
// name, "__", and the part's own base name.
func (e *Entity) StorageName() string {
	if e.tier == Part {
		return e.master.StorageName() + "__" + e.base
	}
	return e.tier.Prefix() + e.base
}

// Bind assigns the schema binding and storage provider, exactly once.
// A second call returns ErrAlreadyBound. Parts are bound through their
// master and return ErrPartBinding.
func (e *Entity) Bind(schema string, p Provider) error {
	if e.tier == Part {
		return ErrPartBinding
	}
	if !e.bound.CompareAndSwap(nil, &binding{schema: schema, provider: p}) {
		return ErrAlreadyBound
	}
	return nil
}

// Bound reports whether the schema binding has been assigned. For
// parts this is the master's binding.
func (e *Entity) Bound() bool {
	_, err := e.binding()
	return err == nil
}

// binding resolves the entity's registration state, walking to the
// master for parts.
func (e *Entity) binding() (*binding, error) {
	if e.tier == Part {
		return e.master.binding()
	}
	b := e.bound.Load()
	if b == nil {
		return nil, ErrUnboundSchema
	}
	return b, nil
}

// Ref returns the table reference for the bound entity. Before
// registration it returns ErrUnboundSchema; the name is never padded
// with a placeholder schema.
func (e *Entity) Ref() (TableRef, error) {
	b, err := e.binding()
	if err != nil {
		return TableRef{}, err
	}
	return TableRef{Schema: b.schema, Name: e.StorageName()}, nil
}

// FullName returns the fully qualified "schema.storage_name", or
// ErrUnboundSchema before registration (for parts, before the master's
// registration).
func (e *Entity) FullName() (string, error) {
	ref, err := e.Ref()
	if err != nil {
		return "", err
	}
	return ref.String(), nil
}

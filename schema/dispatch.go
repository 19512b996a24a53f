package schema

import "context"

// Capabilities enumerates the instance-level operations an entity
// forwards by materializing a default instance. The set is closed:
// membership here is what distinguishes "behaves like an instance"
// from plain declaration-time accessors such as StorageName.
var Capabilities = []string{
	"describe", "primary_key", "heading", "key_source",
	"fetch", "fetch1", "head", "tail", "each", "count",
	"insert", "insert1",
	"delete", "delete_quick", "force_delete",
	"drop", "drop_quick", "force_drop",
	"populate", "progress",
	"restrict", "subtract", "join", "union", "project",
}

// Default materializes the entity's default instance: the entity plus
// its resolved binding and provider. Materialization is repeated on
// every type-level capability access and never cached; an unbound
// entity fails with ErrUnboundSchema, and that failure propagates out
// of whichever capability triggered it.
func (e *Entity) Default() (*Instance, error) {
	b, err := e.binding()
	if err != nil {
		return nil, err
	}
	return &Instance{entity: e, provider: b.provider, ref: TableRef{Schema: b.schema, Name: e.StorageName()}}, nil
}

// The methods below make the entity itself usable wherever an instance
// is expected: each materializes a default instance and forwards, so
// callers never instantiate explicitly. Composition on the entity is
// exactly composition on a default instance with the same operand.

// Restrict composes a restriction of the entity's table.
func (e *Entity) Restrict(cond Cond) (*Expr, error) {
	in, err := e.Default()
	if err != nil {
		return nil, err
	}
	return in.Restrict(cond), nil
}

// Subtract composes an anti-restriction of the entity's table.
func (e *Entity) Subtract(cond Cond) (*Expr, error) {
	in, err := e.Default()
	if err != nil {
		return nil, err
	}
	return in.Subtract(cond), nil
}

// Join composes the natural join of the entity's table with other.
func (e *Entity) Join(other *Expr) (*Expr, error) {
	in, err := e.Default()
	if err != nil {
		return nil, err
	}
	return in.Join(other), nil
}

// UnionWith composes the union of the entity's table with other.
func (e *Entity) UnionWith(other *Expr) (*Expr, error) {
	in, err := e.Default()
	if err != nil {
		return nil, err
	}
	return in.UnionWith(other), nil
}

// Project composes a projection of the entity's table.
func (e *Entity) Project(attrs ...string) (*Expr, error) {
	in, err := e.Default()
	if err != nil {
		return nil, err
	}
	return in.Project(attrs...), nil
}

// Describe forwards to a default instance.
func (e *Entity) Describe(ctx context.Context) (string, error) {
	in, err := e.Default()
	if err != nil {
		return "", err
	}
	return in.Describe(ctx)
}

// PrimaryKey forwards to a default instance.
func (e *Entity) PrimaryKey(ctx context.Context) ([]string, error) {
	in, err := e.Default()
	if err != nil {
		return nil, err
	}
	return in.PrimaryKey(ctx)
}

// Heading forwards to a default instance. The declaration-time member
// order remains reachable on an unbound entity through Members.
func (e *Entity) Heading() ([]string, error) {
	in, err := e.Default()
	if err != nil {
		return nil, err
	}
	return in.Heading(), nil
}

// KeySource forwards to a default instance.
func (e *Entity) KeySource() (*Expr, error) {
	in, err := e.Default()
	if err != nil {
		return nil, err
	}
	return in.KeySource()
}

// Fetch forwards to a default instance.
func (e *Entity) Fetch(ctx context.Context, cond Cond) ([]Row, error) {
	in, err := e.Default()
	if err != nil {
		return nil, err
	}
	return in.Fetch(ctx, cond)
}

// Fetch1 forwards to a default instance.
func (e *Entity) Fetch1(ctx context.Context, cond Cond) (Row, error) {
	in, err := e.Default()
	if err != nil {
		return nil, err
	}
	return in.Fetch1(ctx, cond)
}

// Head forwards to a default instance.
func (e *Entity) Head(ctx context.Context, n int) ([]Row, error) {
	in, err := e.Default()
	if err != nil {
		return nil, err
	}
	return in.Head(ctx, n)
}

// Tail forwards to a default instance.
func (e *Entity) Tail(ctx context.Context, n int) ([]Row, error) {
	in, err := e.Default()
	if err != nil {
		return nil, err
	}
	return in.Tail(ctx, n)
}

// Each forwards to a default instance, so iterating the entity is
// iterating a default instance.
func (e *Entity) Each(ctx context.Context, fn func(Row) error) error {
	in, err := e.Default()
	if err != nil {
		return err
	}
	return in.Each(ctx, fn)
}

// Count forwards to a default instance.
func (e *Entity) Count(ctx context.Context, cond Cond) (int, error) {
	in, err := e.Default()
	if err != nil {
		return 0, err
	}
	return in.Count(ctx, cond)
}

// Insert forwards to a default instance.
func (e *Entity) Insert(ctx context.Context, rows []Row) error {
	in, err := e.Default()
	if err != nil {
		return err
	}
	return in.Insert(ctx, rows)
}

// Insert1 forwards to a default instance.
func (e *Entity) Insert1(ctx context.Context, row Row) error {
	in, err := e.Default()
	if err != nil {
		return err
	}
	return in.Insert1(ctx, row)
}

// Delete forwards to a default instance; the part guard applies.
func (e *Entity) Delete(ctx context.Context, cond Cond) (int, error) {
	in, err := e.Default()
	if err != nil {
		return 0, err
	}
	return in.Delete(ctx, cond)
}

// DeleteQuick forwards to a default instance; the part guard applies.
func (e *Entity) DeleteQuick(ctx context.Context, cond Cond) (int, error) {
	in, err := e.Default()
	if err != nil {
		return 0, err
	}
	return in.DeleteQuick(ctx, cond)
}

// ForceDelete forwards to a default instance, bypassing the part
// guard.
func (e *Entity) ForceDelete(ctx context.Context, cond Cond) (int, error) {
	in, err := e.Default()
	if err != nil {
		return 0, err
	}
	return in.ForceDelete(ctx, cond)
}

// Drop forwards to a default instance; the part guard applies.
func (e *Entity) Drop(ctx context.Context) error {
	in, err := e.Default()
	if err != nil {
		return err
	}
	return in.Drop(ctx)
}

// DropQuick forwards to a default instance; the part guard applies.
func (e *Entity) DropQuick(ctx context.Context) error {
	in, err := e.Default()
	if err != nil {
		return err
	}
	return in.DropQuick(ctx)
}

// ForceDrop forwards to a default instance, bypassing the part guard.
func (e *Entity) ForceDrop(ctx context.Context) error {
	in, err := e.Default()
	if err != nil {
		return err
	}
	return in.ForceDrop(ctx)
}

// Populate forwards to a default instance.
func (e *Entity) Populate(ctx context.Context) error {
	in, err := e.Default()
	if err != nil {
		return err
	}
	return in.Populate(ctx)
}

// Progress forwards to a default instance.
func (e *Entity) Progress(ctx context.Context) (remaining, total int, err error) {
	in, err := e.Default()
	if err != nil {
		return 0, 0, err
	}
	return in.Progress(ctx)
}

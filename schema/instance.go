package schema

import (
	"context"
	"fmt"
)

// Instance is a materialized entity: the entity plus its resolved
// schema binding and provider. Instances are cheap stateless values;
// every type-level capability access materializes a fresh one and no
// caching is performed.
type Instance struct {
	entity   *Entity
	provider Provider
	ref      TableRef
}

// Entity returns the entity this instance materializes.
func (in *Instance) Entity() *Entity { return in.entity }

// Ref returns the instance's table reference.
func (in *Instance) Ref() TableRef { return in.ref }

// Expr returns the leaf relational expression for this instance's
// table. All composition starts here.
func (in *Instance) Expr() *Expr {
	return TableExpr(in.ref)
}

// Restrict composes a restriction of this table.
func (in *Instance) Restrict(cond Cond) *Expr {
	return in.Expr().Restrict(cond)
}

// Subtract composes an anti-restriction of this table.
func (in *Instance) Subtract(cond Cond) *Expr {
	return in.Expr().Subtract(cond)
}

// Join composes the natural join of this table with other.
func (in *Instance) Join(other *Expr) *Expr {
	return in.Expr().Join(other)
}

// UnionWith composes the union of this table with other.
func (in *Instance) UnionWith(other *Expr) *Expr {
	return in.Expr().UnionWith(other)
}

// Project composes a projection of this table onto attrs.
func (in *Instance) Project(attrs ...string) *Expr {
	return in.Expr().Project(attrs...)
}

// Describe returns the table definition from the provider.
func (in *Instance) Describe(ctx context.Context) (string, error) {
	return in.provider.Describe(ctx, in.ref)
}

// PrimaryKey returns the primary key attribute names.
func (in *Instance) PrimaryKey(ctx context.Context) ([]string, error) {
	return in.provider.PrimaryKey(ctx, in.ref)
}

// Heading returns the declared member names in declaration order.
func (in *Instance) Heading() []string {
	return in.entity.Members().Names()
}

// KeySource returns the expression whose keys drive population.
// Returns ErrNotPopulatable for tiers without population support and
// ErrNoKeySource when the entity declared none.
func (in *Instance) KeySource() (*Expr, error) {
	if !in.entity.tier.SupportsPopulation() {
		return nil, ErrNotPopulatable
	}
	if in.entity.keySource == nil {
		return nil, ErrNoKeySource
	}
	return in.entity.keySource, nil
}

// Fetch returns the rows matching cond; nil matches all.
func (in *Instance) Fetch(ctx context.Context, cond Cond) ([]Row, error) {
	return in.provider.Fetch(ctx, in.ref, cond)
}

// Fetch1 returns the single row matching cond, failing unless exactly
// one row matches.
func (in *Instance) Fetch1(ctx context.Context, cond Cond) (Row, error) {
	rows, err := in.provider.Fetch(ctx, in.ref, cond)
	if err != nil {
		return nil, err
	}
	if len(rows) != 1 {
		return nil, fmt.Errorf("stratum: fetch1 from %s: expected exactly 1 row, got %d", in.ref, len(rows))
	}
	return rows[0], nil
}

// Head returns at most n rows from the start of the table.
func (in *Instance) Head(ctx context.Context, n int) ([]Row, error) {
	rows, err := in.provider.Fetch(ctx, in.ref, nil)
	if err != nil {
		return nil, err
	}
	if n < len(rows) {
		rows = rows[:n]
	}
	return rows, nil
}

// Tail returns at most n rows from the end of the table.
func (in *Instance) Tail(ctx context.Context, n int) ([]Row, error) {
	rows, err := in.provider.Fetch(ctx, in.ref, nil)
	if err != nil {
		return nil, err
	}
	if n < len(rows) {
		rows = rows[len(rows)-n:]
	}
	return rows, nil
}

// Each calls fn for every row of the table, stopping at the first
// error.
func (in *Instance) Each(ctx context.Context, fn func(Row) error) error {
	rows, err := in.provider.Fetch(ctx, in.ref, nil)
	if err != nil {
		return err
	}
	for _, row := range rows {
		if err := fn(row); err != nil {
			return err
		}
	}
	return nil
}

// Count returns the number of rows matching cond.
func (in *Instance) Count(ctx context.Context, cond Cond) (int, error) {
	return in.provider.Count(ctx, in.ref, cond)
}

// Insert writes rows to the table.
func (in *Instance) Insert(ctx context.Context, rows []Row) error {
	return in.provider.Insert(ctx, in.ref, rows)
}

// Insert1 writes a single row to the table.
func (in *Instance) Insert1(ctx context.Context, row Row) error {
	return in.provider.Insert(ctx, in.ref, []Row{row})
}

// Delete removes the rows matching cond, cascading to part tables
// first so no part row outlives its master. Parts refuse direct
// deletion with ErrPartMutation; use the master, or ForceDelete for
// the explicit override.
func (in *Instance) Delete(ctx context.Context, cond Cond) (int, error) {
	if in.entity.tier == Part {
		return 0, ErrPartMutation
	}
	total := 0
	for _, part := range in.entity.Parts() {
		ref, err := part.Ref()
		if err != nil {
			return total, err
		}
		n, err := in.provider.Delete(ctx, ref, cond)
		if err != nil {
			return total, err
		}
		total += n
	}
	n, err := in.provider.Delete(ctx, in.ref, cond)
	return total + n, err
}

// DeleteQuick removes the rows matching cond without cascading to
// parts. The part guard still applies.
func (in *Instance) DeleteQuick(ctx context.Context, cond Cond) (int, error) {
	if in.entity.tier == Part {
		return 0, ErrPartMutation
	}
	return in.provider.Delete(ctx, in.ref, cond)
}

// ForceDelete is the sanctioned override of the part guard: it
// forwards a single delete for this table only, bypassing no other
// checks. All direct part deletions must route through here.
func (in *Instance) ForceDelete(ctx context.Context, cond Cond) (int, error) {
	return in.provider.Delete(ctx, in.ref, cond)
}

// Drop removes the table, dropping part tables first. Parts refuse a
// direct drop with ErrPartMutation; use ForceDrop for the explicit
// override.
func (in *Instance) Drop(ctx context.Context) error {
	if in.entity.tier == Part {
		return ErrPartMutation
	}
	for _, part := range in.entity.Parts() {
		ref, err := part.Ref()
		if err != nil {
			return err
		}
		if err := in.provider.Drop(ctx, ref); err != nil {
			return err
		}
	}
	return in.provider.Drop(ctx, in.ref)
}

// DropQuick removes the table without cascading to parts. The part
// guard still applies.
func (in *Instance) DropQuick(ctx context.Context) error {
	if in.entity.tier == Part {
		return ErrPartMutation
	}
	return in.provider.Drop(ctx, in.ref)
}

// ForceDrop is the sanctioned override of the part guard for drops.
func (in *Instance) ForceDrop(ctx context.Context) error {
	return in.provider.Drop(ctx, in.ref)
}

// Populate forwards to the entity's populate collaborator after
// checking tier capability.
func (in *Instance) Populate(ctx context.Context) error {
	if !in.entity.tier.SupportsPopulation() {
		return ErrNotPopulatable
	}
	if in.entity.populator == nil {
		return ErrNoPopulator
	}
	return in.entity.populator.Populate(ctx, in)
}

// Progress reports population progress via the populate collaborator.
func (in *Instance) Progress(ctx context.Context) (remaining, total int, err error) {
	if !in.entity.tier.SupportsPopulation() {
		return 0, 0, ErrNotPopulatable
	}
	if in.entity.populator == nil {
		return 0, 0, ErrNoPopulator
	}
	return in.entity.populator.Progress(ctx, in)
}

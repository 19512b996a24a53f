// Package populate runs the activation hook for populate-capable
// entities: it enumerates the keys of an entity's key source, skips
// the ones already present, and delegates the actual row computation
// to a registered maker.
package populate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/jacentio/stratum/schema"
)

// ErrNoMaker is returned when population is requested for an entity
// with no registered maker.
var ErrNoMaker = errors.New("stratum/populate: no maker registered for entity")

// Maker computes and inserts the rows of one key. It is the only place
// user code runs during population.
type Maker func(ctx context.Context, in *schema.Instance, key schema.Cond) error

// Lister enumerates the candidate keys of a key source expression.
type Lister interface {
	Keys(ctx context.Context, source *schema.Expr) ([]schema.Cond, error)
}

// Runner drives population for a set of entities. It implements
// [schema.Populator], so entities constructed with
// schema.WithPopulator(runner) expose Populate and Progress as
// instance capabilities.
type Runner struct {
	lister Lister
	makers map[string]Maker
	logger *slog.Logger
}

var _ schema.Populator = (*Runner)(nil)

// NewRunner creates a runner using lister to expand key sources.
func NewRunner(lister Lister, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{
		lister: lister,
		makers: make(map[string]Maker),
		logger: logger,
	}
}

// Handle registers the maker for an entity, keyed by storage name.
func (r *Runner) Handle(ent *schema.Entity, make Maker) {
	r.makers[ent.StorageName()] = make
}

// Populate fills the instance's table: every key of the key source
// that has no rows yet is handed to the entity's maker. Keys already
// populated are skipped; the first maker failure stops the run.
func (r *Runner) Populate(ctx context.Context, in *schema.Instance) error {
	if !in.Entity().Tier().SupportsPopulation() {
		return schema.ErrNotPopulatable
	}
	make, ok := r.makers[in.Entity().StorageName()]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNoMaker, in.Entity().StorageName())
	}
	source, err := in.KeySource()
	if err != nil {
		return err
	}
	keys, err := r.lister.Keys(ctx, source)
	if err != nil {
		return err
	}

	jobID := uuid.NewString()
	made := 0
	for _, key := range keys {
		n, err := in.Count(ctx, key)
		if err != nil {
			return err
		}
		if n > 0 {
			continue
		}
		if err := make(ctx, in, key); err != nil {
			r.logger.Error("make failed",
				"job", jobID,
				"table", in.Ref().String(),
				"key", key,
				"error", err,
			)
			return err
		}
		made++
	}

	r.logger.Info("populate finished",
		"job", jobID,
		"table", in.Ref().String(),
		"keys", len(keys),
		"made", made,
	)
	return nil
}

// Progress reports how many key-source keys remain unpopulated out of
// the total.
func (r *Runner) Progress(ctx context.Context, in *schema.Instance) (remaining, total int, err error) {
	if !in.Entity().Tier().SupportsPopulation() {
		return 0, 0, schema.ErrNotPopulatable
	}
	source, err := in.KeySource()
	if err != nil {
		return 0, 0, err
	}
	keys, err := r.lister.Keys(ctx, source)
	if err != nil {
		return 0, 0, err
	}
	for _, key := range keys {
		n, err := in.Count(ctx, key)
		if err != nil {
			return 0, 0, err
		}
		if n == 0 {
			remaining++
		}
	}
	return remaining, len(keys), nil
}

package populate

import (
	"context"
	"errors"

	"github.com/jacentio/stratum/schema"
)

// ErrCompositeSource is returned when a key source is more than a
// stored table with restrictions. Expanding joined or projected
// sources requires a query engine, which sits outside this layer.
var ErrCompositeSource = errors.New("stratum/populate: key source must be a stored table, optionally restricted")

// TableKeys expands a key source by fetching the source table's rows
// and projecting them onto its primary key.
type TableKeys struct {
	Provider schema.Provider
}

var _ Lister = TableKeys{}

// Keys returns one key per row of the source table matching its
// restrictions.
func (t TableKeys) Keys(ctx context.Context, source *schema.Expr) ([]schema.Cond, error) {
	table, cond, err := flatten(source)
	if err != nil {
		return nil, err
	}
	pk, err := t.Provider.PrimaryKey(ctx, table)
	if err != nil {
		return nil, err
	}
	rows, err := t.Provider.Fetch(ctx, table, cond)
	if err != nil {
		return nil, err
	}

	keys := make([]schema.Cond, 0, len(rows))
	for _, row := range rows {
		key := schema.Cond{}
		for _, attr := range pk {
			if v, ok := row[attr]; ok {
				key[attr] = v
			}
		}
		keys = append(keys, key)
	}
	return keys, nil
}

// flatten reduces a table-plus-restrictions expression to its table
// reference and merged condition.
func flatten(e *schema.Expr) (schema.TableRef, schema.Cond, error) {
	switch e.Op {
	case schema.OpTable:
		return e.Table, nil, nil
	case schema.OpRestrict:
		table, cond, err := flatten(e.Left)
		if err != nil {
			return schema.TableRef{}, nil, err
		}
		if cond == nil {
			cond = schema.Cond{}
		}
		for k, v := range e.Cond {
			cond[k] = v
		}
		return table, cond, nil
	default:
		return schema.TableRef{}, nil, ErrCompositeSource
	}
}

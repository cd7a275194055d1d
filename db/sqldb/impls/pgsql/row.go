package pgsql

import (
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/zeptools/gw-intern/db/sqldb"
)

type Row struct {
	row pgx.Row
}

// Ensure pgsql.Row implements sqldb.Row interface
var _ sqldb.Row = (*Row)(nil)

func (r *Row) Scan(dest ...any) error {
	raw := boolsAsSmallints(dest)
	if err := r.row.Scan(raw...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return sqldb.ErrNoRows
		}
		return err
	}
	smallintsToBools(dest, raw)
	return nil
}

// Flags are smallint columns (0/1): scan to `int16`s instead of `bool`s
func boolsAsSmallints(dest []any) []any {
	raw := make([]any, len(dest))
	for i, d := range dest {
		switch d.(type) {
		case *bool:
			raw[i] = new(int16)
		default:
			raw[i] = d
		}
	}
	return raw
}

func smallintsToBools(dest []any, raw []any) {
	for i, d := range dest {
		if v, ok := d.(*bool); ok {
			*v = *(raw[i].(*int16)) != 0
		}
	}
}

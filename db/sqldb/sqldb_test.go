package sqldb

import (
	"context"
	"errors"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReplaceStaticPlaceholders(t *testing.T) {
	cases := []struct {
		in     string
		prefix byte
		want   string
	}{
		{"SELECT * FROM t WHERE a = ? AND b = ?", '$', "SELECT * FROM t WHERE a = $1 AND b = $2"},
		{"SELECT * FROM t WHERE a = ?", '?', "SELECT * FROM t WHERE a = ?"},
		{"SELECT * FROM t WHERE id IN (??) AND a = ?", '$', "SELECT * FROM t WHERE id IN (??) AND a = $1"},
		{"SELECT 1", '$', "SELECT 1"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ReplaceStaticPlaceholders(tc.in, tc.prefix))
	}
}

func TestLoadRawStmtsToStore(t *testing.T) {
	groups := []GroupFS{{
		Group: "records",
		FS: fstest.MapFS{
			"sql/internship.sql":  {Data: []byte("SELECT * FROM intern_internship WHERE id = ?")},
			"sql/terms.sql":       {Data: []byte("SELECT * FROM intern_term WHERE code = ?")},
			"sql/terms.pgsql":     {Data: []byte("SELECT * FROM intern_term WHERE code = $1::text")},
			"sql/readme.md":       {Data: []byte("ignored")},
			"sql/nested/skip.sql": {Data: []byte("ignored")},
		},
	}}

	store := NewRawStore()
	require.NoError(t, LoadRawStmtsToStore(store, groups, "pgsql", '$'))
	assert.Equal(t, 2, store.Len())

	stmt, ok := store.Get("records.internship")
	require.True(t, ok)
	assert.Equal(t, "SELECT * FROM intern_internship WHERE id = $1", stmt)

	stmt, ok = store.Get("records.terms")
	require.True(t, ok)
	assert.Equal(t, "SELECT * FROM intern_term WHERE code = $1::text", stmt)

	_, ok = store.Get("records.readme")
	assert.False(t, ok)
}

func TestLoadRawStmtsMissingDir(t *testing.T) {
	err := LoadRawStmtsToStore(NewRawStore(), []GroupFS{{Group: "x", FS: fstest.MapFS{}}}, "mysql", '?')
	assert.Error(t, err)
}

type person struct {
	ID   int64
	Name string
}

func (p *person) TargetFields() []any {
	return []any{&p.ID, &p.Name}
}

type fakeRows struct {
	data [][]any
	i    int
	err  error
}

func (r *fakeRows) Next() bool {
	r.i++
	return r.i <= len(r.data)
}

func (r *fakeRows) Scan(dest ...any) error {
	row := r.data[r.i-1]
	*dest[0].(*int64) = row[0].(int64)
	*dest[1].(*string) = row[1].(string)
	return nil
}

func (r *fakeRows) Close() error { return nil }
func (r *fakeRows) Err() error   { return r.err }

type fakeRow struct{ rows *fakeRows }

func (r fakeRow) Scan(dest ...any) error {
	if !r.rows.Next() {
		return ErrNoRows
	}
	return r.rows.Scan(dest...)
}

type fakeHandle struct{ data [][]any }

func (h fakeHandle) QueryRows(context.Context, string, ...any) (Rows, error) {
	return &fakeRows{data: h.data}, nil
}

func (h fakeHandle) QueryRow(context.Context, string, ...any) Row {
	return fakeRow{rows: &fakeRows{data: h.data}}
}

func TestQueryItems(t *testing.T) {
	h := fakeHandle{data: [][]any{{int64(1), "ada"}, {int64(2), "grace"}}}
	items, err := QueryItems[person](context.Background(), h, "q")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, person{ID: 2, Name: "grace"}, *items[1])

	item, err := QueryItem[person](context.Background(), h, "q")
	require.NoError(t, err)
	assert.Equal(t, "ada", item.Name)
}

func TestQueryItemNoRows(t *testing.T) {
	_, err := QueryItem[person](context.Background(), fakeHandle{}, "q")
	assert.ErrorIs(t, err, ErrNoRows)
}

func TestRowsToItemsIterationError(t *testing.T) {
	boom := errors.New("boom")
	_, err := RowsToItems[person](&fakeRows{err: boom})
	assert.ErrorIs(t, err, boom)
}

func TestNewUnknownType(t *testing.T) {
	_, err := New(&Conf{Type: "oracle"})
	assert.Error(t, err)
}

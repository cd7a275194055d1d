package pgsql

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoolsAsSmallints(t *testing.T) {
	var (
		flag bool
		name string
	)
	dest := []any{&flag, &name}
	raw := boolsAsSmallints(dest)
	require.Len(t, raw, 2)
	assert.IsType(t, new(int16), raw[0])
	assert.Same(t, &name, raw[1])

	*(raw[0].(*int16)) = 1
	smallintsToBools(dest, raw)
	assert.True(t, flag)
}

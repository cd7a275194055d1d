package pgsql

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeptools/gw-intern/db/sqldb"
)

func TestFactoryRegistered(t *testing.T) {
	Register()
	c, err := sqldb.New(&sqldb.Conf{Type: DBType})
	require.NoError(t, err)
	assert.IsType(t, &Client{}, c)
	assert.Equal(t, byte('$'), c.PlaceholderPrefix())
	assert.Error(t, c.Ping(t.Context()), "ping before Init")
	assert.NoError(t, c.Close())
}

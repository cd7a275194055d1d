package redis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeptools/gw-intern/db/kvdb"
)

func TestFactoryRegistered(t *testing.T) {
	Register()
	c, err := kvdb.New(&kvdb.Conf{Type: KVType, Host: "127.0.0.1", Port: 1})
	require.NoError(t, err)
	assert.IsType(t, &Client{}, c)
	assert.NoError(t, c.Close(), "close before Init")
}

func TestInitFailsWithoutServer(t *testing.T) {
	c := &Client{Conf: &kvdb.Conf{Type: KVType, Host: "127.0.0.1", Port: 1}}
	assert.Error(t, c.Init())
	assert.NoError(t, c.Close())
}

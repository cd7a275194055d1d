package mysql

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/zeptools/gw-intern/db/sqldb"
)

func TestDSN(t *testing.T) {
	conf := &sqldb.Conf{Type: DBType, Host: "db", Port: 3306, User: "intern", PW: "secret", DB: "internship"}
	assert.Equal(t, "intern:secret@tcp(db:3306)/internship?parseTime=true&loc=UTC&sql_mode=ANSI_QUOTES", DSN(conf))

	conf.TZ = "America%2FNew_York"
	assert.Contains(t, DSN(conf), "loc=America%2FNew_York")
}

func TestFactoryRegistered(t *testing.T) {
	Register()
	c, err := sqldb.New(&sqldb.Conf{Type: DBType})
	assert.NoError(t, err)
	assert.IsType(t, &Client{}, c)
	assert.Equal(t, byte('?'), c.PlaceholderPrefix())
}

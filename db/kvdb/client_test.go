package kvdb

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewUnknownType(t *testing.T) {
	_, err := New(&Conf{Type: "memcached"})
	assert.ErrorIs(t, err, ErrNotSupported)
}

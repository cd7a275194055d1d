package nullable

import (
	"encoding/json/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type row struct {
	Hours Int    `json:"hours"`
	Name  String `json:"name"`
	Start Time   `json:"start"`
}

func TestDecodeNullsAndValues(t *testing.T) {
	var r row
	require.NoError(t, json.Unmarshal([]byte(`{"hours":3,"name":null,"start":"2024-08-21"}`), &r))

	assert.Equal(t, "3", r.Hours.Text())
	assert.True(t, r.Name.IsNil())
	assert.Equal(t, "", r.Name.ForceValue())
	assert.Equal(t, time.Date(2024, 8, 21, 0, 0, 0, 0, time.UTC), r.Start.ForceValue())
}

func TestIntTextEmptyWhenNil(t *testing.T) {
	var n Int
	assert.Equal(t, "", n.Text())
	assert.Equal(t, "0", IntOf(0).Text())
}

func TestTimeRejectsGarbage(t *testing.T) {
	var n Time
	assert.Error(t, json.Unmarshal([]byte(`"next tuesday"`), &n))
}

func TestMarshalNil(t *testing.T) {
	b, err := json.Marshal(row{Hours: IntOf(12)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"hours":12,"name":null,"start":null}`, string(b))
}

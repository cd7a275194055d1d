package contractcache

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeptools/gw-intern/contract"
	"github.com/zeptools/gw-intern/db/kvdb"
	"github.com/zeptools/gw-intern/intern"
	"github.com/zeptools/gw-intern/pdfs/pdftest"
)

// memKV is an in-memory kvdb.Client
type memKV struct {
	mu      sync.Mutex
	data    map[string]string
	ttls    map[string]time.Duration
	gets    int
	sets    int
	expires int
	failGet error
	failSet error
}

var _ kvdb.Client = (*memKV)(nil)

func newMemKV() *memKV {
	return &memKV{data: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (m *memKV) Init() error        { return nil }
func (m *memKV) Close() error       { return nil }
func (m *memKV) GetConf() *kvdb.Conf { return &kvdb.Conf{Type: "mem"} }

func (m *memKV) Delete(_ context.Context, keys ...string) (int64, error) {
	var n int64
	for _, k := range keys {
		if _, ok := m.data[k]; ok {
			delete(m.data, k)
			n++
		}
	}
	return n, nil
}

func (m *memKV) Expire(_ context.Context, key string, expiration time.Duration) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.expires++
	if _, ok := m.data[key]; !ok {
		return false, nil
	}
	m.ttls[key] = expiration
	return true, nil
}

func (m *memKV) Set(_ context.Context, key string, value any, expiration time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sets++
	if m.failSet != nil {
		return m.failSet
	}
	switch v := value.(type) {
	case []byte:
		m.data[key] = string(v)
	default:
		m.data[key] = fmt.Sprint(v)
	}
	m.ttls[key] = expiration
	return nil
}

func (m *memKV) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gets++
	if m.failGet != nil {
		return "", false, m.failGet
	}
	v, ok := m.data[key]
	return v, ok, nil
}

func fixture(t *testing.T) (*contract.Template, contract.Input) {
	t.Helper()
	tpl, err := contract.NewTemplate(pdftest.TemplatePDF(t, 2))
	require.NoError(t, err)
	in := contract.Input{
		Internship: intern.Internship{ID: 42, FirstName: "Ada", LastName: "Lovelace", Paid: true},
		Contacts:   []intern.EmergencyContact{{Name: "Annabella Byron"}},
		Term:       intern.Term{Description: "Fall 2024"},
	}
	return tpl, in
}

func TestMissThenHit(t *testing.T) {
	tpl, in := fixture(t)
	kv := newMemKV()
	c := New(kv, "intern:", time.Hour)
	ctx := context.Background()

	first, err := c.Document(ctx, tpl, in, contract.DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, 1, kv.sets)
	require.Len(t, kv.data, 1)
	for k, ttl := range kv.ttls {
		assert.Contains(t, k, "intern:contract:")
		assert.Equal(t, time.Hour, ttl)
	}

	// a hit returns the stored bytes verbatim
	key, err := c.Key(tpl, in, contract.DefaultOptions())
	require.NoError(t, err)
	kv.data[key] = "%PDF-cached"
	second, err := c.Document(ctx, tpl, in, contract.DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-cached"), second)
	assert.Equal(t, 1, kv.sets)
	assert.NotEqual(t, first, second)
}

func TestHitRefreshesTTL(t *testing.T) {
	tpl, in := fixture(t)
	kv := newMemKV()
	c := New(kv, "", time.Hour)
	ctx := context.Background()

	_, err := c.Document(ctx, tpl, in, contract.DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, 0, kv.expires, "a miss stores with the TTL")

	key, err := c.Key(tpl, in, contract.DefaultOptions())
	require.NoError(t, err)
	kv.ttls[key] = time.Minute
	_, err = c.Document(ctx, tpl, in, contract.DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, 1, kv.expires)
	assert.Equal(t, time.Hour, kv.ttls[key])
}

func TestKeyDependsOnInput(t *testing.T) {
	tpl, in := fixture(t)
	c := New(nil, "", 0)
	k1, err := c.Key(tpl, in, contract.DefaultOptions())
	require.NoError(t, err)

	in.Internship.Paid = false
	k2, err := c.Key(tpl, in, contract.DefaultOptions())
	require.NoError(t, err)
	assert.NotEqual(t, k1, k2)

	k3, err := c.Key(tpl, in, contract.Options{EmailDomain: "example.edu"})
	require.NoError(t, err)
	assert.NotEqual(t, k2, k3)

	k4, err := c.Key(tpl, in, contract.Options{})
	require.NoError(t, err)
	assert.Equal(t, k2, k4, "empty domain means the default one")

	k5, err := c.Key(tpl, in, contract.Options{Creator: "gw-intern"})
	require.NoError(t, err)
	assert.NotEqual(t, k4, k5, "creator is written into the PDF")
}

func TestBackendErrorsRenderThrough(t *testing.T) {
	tpl, in := fixture(t)
	kv := newMemKV()
	kv.failGet = errors.New("connection refused")
	kv.failSet = errors.New("connection refused")

	out, err := New(kv, "", 0).Document(context.Background(), tpl, in, contract.DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, "%PDF-", string(out[:5]))
	assert.Equal(t, 1, kv.gets)
	assert.Equal(t, 1, kv.sets)
	assert.Empty(t, kv.data)
}

func TestDisabledCache(t *testing.T) {
	tpl, in := fixture(t)
	out, err := New(nil, "", 0).Document(context.Background(), tpl, in, contract.DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, "%PDF-", string(out[:5]))
}

func TestRenderErrorIsNotCached(t *testing.T) {
	_, in := fixture(t)
	kv := newMemKV()
	_, err := New(kv, "", 0).Document(context.Background(), nil, in, contract.DefaultOptions())
	assert.ErrorIs(t, err, contract.ErrTemplate)
	assert.Equal(t, 0, kv.sets)
}

func TestForget(t *testing.T) {
	tpl, in := fixture(t)
	kv := newMemKV()
	c := New(kv, "", 0)
	_, err := c.Document(context.Background(), tpl, in, contract.DefaultOptions())
	require.NoError(t, err)
	require.Len(t, kv.data, 1)

	require.NoError(t, c.Forget(context.Background(), tpl, in, contract.DefaultOptions()))
	assert.Empty(t, kv.data)
	assert.NoError(t, New(nil, "", 0).Forget(context.Background(), tpl, in, contract.DefaultOptions()))
}

func TestConcurrentMissesRenderOnce(t *testing.T) {
	tpl, in := fixture(t)
	kv := newMemKV()
	c := New(kv, "t:", time.Hour)

	var wg sync.WaitGroup
	outs := make([][]byte, 8)
	errs := make([]error, 8)
	for i := range outs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			outs[i], errs[i] = c.Document(context.Background(), tpl, in, contract.DefaultOptions())
		}(i)
	}
	wg.Wait()

	for i := range outs {
		require.NoError(t, errs[i])
		assert.Equal(t, outs[0], outs[i])
	}
	assert.Equal(t, 1, kv.sets)
}

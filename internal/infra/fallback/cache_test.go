package fallback

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

type failingBackend struct{ err error }

func (f failingBackend) Get(context.Context, string) ([]byte, error) { return nil, f.err }
func (f failingBackend) Set(context.Context, string, []byte) error   { return f.err }

func TestCache_SaveThenLoad(t *testing.T) {
	ctx := context.Background()
	c := New(NewMemory(), nil)

	want := []item{{ID: "1", Title: "Sports Day"}}
	c.Save(ctx, "site_events", want)

	got := Load(ctx, c, "site_events", []item(nil))
	assert.Equal(t, want, got)
}

func TestCache_LoadDefaults(t *testing.T) {
	ctx := context.Background()
	def := []item{{ID: "seed"}}

	mem := NewMemory()
	require.NoError(t, mem.Set(ctx, "corrupt", []byte("{not json")))
	require.NoError(t, mem.Set(ctx, "empty", []byte{}))

	tests := []struct {
		name  string
		cache *Cache
		key   string
	}{
		{name: "absent key", cache: New(mem, nil), key: "missing"},
		{name: "corrupt value", cache: New(mem, nil), key: "corrupt"},
		{name: "empty value", cache: New(mem, nil), key: "empty"},
		{name: "backend failure", cache: New(failingBackend{err: errors.New("disk gone")}, nil), key: "x"},
		{name: "nil cache", cache: nil, key: "x"},
		{name: "none backend", cache: New(nil, nil), key: "x"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, def, Load(ctx, tt.cache, tt.key, def))
		})
	}
}

func TestCache_SaveFailureIsLoggedNotRaised(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	c := New(failingBackend{err: errors.New("quota exceeded")}, logger)

	assert.NotPanics(t, func() {
		c.Save(context.Background(), "site_events", []item{{ID: "1"}})
	})
	assert.Contains(t, buf.String(), "quota exceeded")
	assert.Contains(t, buf.String(), "site_events")
}

func TestCache_SaveUnencodable(t *testing.T) {
	var buf bytes.Buffer
	c := New(NewMemory(), slog.New(slog.NewJSONHandler(&buf, nil)))

	c.Save(context.Background(), "bad", make(chan int))
	assert.Contains(t, buf.String(), "encode failed")

	var nilCache *Cache
	assert.NotPanics(t, func() { nilCache.Save(context.Background(), "k", 1) })
}

func TestMemory_CopiesValues(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	v := []byte("abc")
	require.NoError(t, m.Set(ctx, "k", v))
	v[0] = 'z'

	got, err := m.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(got))
}

func TestOpen_Drivers(t *testing.T) {
	ctx := context.Background()

	b, closeFn, err := Open(ctx, Options{}, slog.Default())
	require.NoError(t, err)
	assert.IsType(t, &Memory{}, b)
	assert.NoError(t, closeFn())

	b, _, err = Open(ctx, Options{Driver: DriverNone}, slog.Default())
	require.NoError(t, err)
	assert.IsType(t, None{}, b)

	b, _, err = Open(ctx, Options{Driver: DriverFile, Dir: t.TempDir()}, slog.Default())
	require.NoError(t, err)
	assert.IsType(t, &File{}, b)

	_, _, err = Open(ctx, Options{Driver: "etcd"}, slog.Default())
	assert.Error(t, err)
}

package objectstore

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

// Memory is an in-process Store. Objects are kept in upload order and never
// overwritten, so several versions of one logical document can coexist.
type Memory struct {
	mu      sync.RWMutex
	objects []Object
	data    map[string][]byte // URL -> body
	now     func() time.Time

	// PutErr, ListErr and OpenErr force failures in tests.
	PutErr  error
	ListErr error
	OpenErr error
}

// NewMemory returns an empty in-memory store using the wall clock.
func NewMemory() *Memory {
	return &Memory{data: make(map[string][]byte), now: time.Now}
}

// WithClock replaces the clock used for UploadedAt.
func (m *Memory) WithClock(now func() time.Time) *Memory {
	m.now = now
	return m
}

func (m *Memory) Put(ctx context.Context, pathname string, body io.Reader, opts PutOptions) (Object, error) {
	if err := ctx.Err(); err != nil {
		return Object{}, err
	}
	if m.PutErr != nil {
		return Object{}, m.PutErr
	}
	b, err := io.ReadAll(body)
	if err != nil {
		return Object{}, fmt.Errorf("read body: %w", err)
	}

	final := pathname
	if opts.AddRandomSuffix {
		final = WithSuffix(pathname, randomSuffix())
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	obj := Object{
		Pathname:    final,
		URL:         fmt.Sprintf("memory://%s#%d", final, len(m.objects)),
		ContentType: opts.ContentType,
		Size:        int64(len(b)),
		UploadedAt:  m.now(),
	}
	m.objects = append(m.objects, obj)
	m.data[obj.URL] = b
	return obj, nil
}

func (m *Memory) List(ctx context.Context, prefix string) ([]Object, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if m.ListErr != nil {
		return nil, m.ListErr
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []Object
	for _, o := range m.objects {
		if strings.HasPrefix(o.Pathname, prefix) {
			out = append(out, o)
		}
	}
	return out, nil
}

func (m *Memory) Open(ctx context.Context, obj Object) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if m.OpenErr != nil {
		return nil, m.OpenErr
	}

	m.mu.RLock()
	b, ok := m.data[obj.URL]
	m.mu.RUnlock()
	if !ok {
		return nil, &APIError{StatusCode: 404, Message: "object not found: " + obj.Pathname}
	}
	return io.NopCloser(bytes.NewReader(b)), nil
}

// Len returns the number of stored objects, all versions included.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.objects)
}

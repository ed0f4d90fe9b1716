// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package querycache

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/rich-context/pkg/types"
)

func TestFingerprint(t *testing.T) {
	a := Fingerprint([]string{"IRI Infoscan", "2"}, "hood-")
	b := Fingerprint([]string{"iri infoscan", "2"}, "hood-")
	c := Fingerprint([]string{" 2 ", "IRI INFOSCAN "}, "hood-")

	assert.Equal(t, a, b)
	assert.Equal(t, a, c, "order and surrounding whitespace are ignored")
	assert.Len(t, a, len("hood-")+2*DigestSize)
	assert.Regexp(t, `^hood-[0-9a-f]{20}$`, a)

	assert.NotEqual(t, a, Fingerprint([]string{"IRI Infoscan", "3"}, "hood-"))
	assert.Len(t, Fingerprint([]string{"x"}, ""), 2*DigestSize)
}

func openBackends(t *testing.T) map[string]Cache {
	t.Helper()
	backends := map[string]Cache{"memory": NewMemory()}

	b, err := OpenBadger(t.TempDir())
	require.NoError(t, err)
	backends["badger"] = b

	s, err := OpenSQLite(t.TempDir())
	require.NoError(t, err)
	backends["sqlite"] = s

	t.Cleanup(func() {
		for _, c := range backends {
			c.Close()
		}
	})
	return backends
}

func TestCache_GetPut(t *testing.T) {
	ctx := context.Background()
	for name, c := range openBackends(t) {
		t.Run(name, func(t *testing.T) {
			_, ok, err := c.Get(ctx, "hood-missing")
			require.NoError(t, err)
			assert.False(t, ok)

			require.NoError(t, c.Put(ctx, "hood-a", []byte(`{"nodes":[]}`)))
			got, ok, err := c.Get(ctx, "hood-a")
			require.NoError(t, err)
			require.True(t, ok)
			assert.Equal(t, `{"nodes":[]}`, string(got))

			require.NoError(t, c.Put(ctx, "hood-a", []byte("v2")))
			got, _, err = c.Get(ctx, "hood-a")
			require.NoError(t, err)
			assert.Equal(t, "v2", string(got))
		})
	}
}

func TestCache_ConcurrentSameKey(t *testing.T) {
	ctx := context.Background()
	for name, c := range openBackends(t) {
		t.Run(name, func(t *testing.T) {
			var wg sync.WaitGroup
			for i := range 8 {
				wg.Add(1)
				go func() {
					defer wg.Done()
					assert.NoError(t, c.Put(ctx, "hood-same", []byte("diagram")))
					_, _, err := c.Get(ctx, fmt.Sprintf("hood-%d", i))
					assert.NoError(t, err)
				}()
			}
			wg.Wait()

			got, ok, err := c.Get(ctx, "hood-same")
			require.NoError(t, err)
			require.True(t, ok)
			assert.Equal(t, "diagram", string(got))
		})
	}
}

func TestOpen(t *testing.T) {
	tests := []struct {
		backend types.CacheBackend
		want    any
	}{
		{types.CacheMemory, &Memory{}},
		{types.CacheBadger, &Badger{}},
		{"", &Badger{}},
		{types.CacheSQLite, &SQLite{}},
	}
	for _, tt := range tests {
		t.Run(string(tt.backend), func(t *testing.T) {
			c, err := Open(types.CacheConfig{Backend: tt.backend, Dir: t.TempDir()})
			require.NoError(t, err)
			defer c.Close()
			assert.IsType(t, tt.want, c)
		})
	}

	_, err := Open(types.CacheConfig{Backend: "redis"})
	assert.ErrorContains(t, err, "redis")
}

func TestMemory_CopiesValues(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	v := []byte("abc")
	require.NoError(t, m.Put(ctx, "k", v))
	v[0] = 'x'

	got, _, _ := m.Get(ctx, "k")
	assert.Equal(t, "abc", string(got))
}

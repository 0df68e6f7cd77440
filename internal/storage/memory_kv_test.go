package storage

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryKVGetMissing(t *testing.T) {
	kv := NewMemoryKV()
	_, err := kv.Get(context.Background(), "nope")
	require.ErrorIs(t, err, ErrNotFound)
}

func set(t *testing.T, kv *MemoryKV, key string, value []byte) {
	t.Helper()
	require.NoError(t, kv.Update(context.Background(), key, func([]byte) ([]byte, error) {
		return value, nil
	}))
}

func TestMemoryKVUpdateCopiesValue(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()

	v := []byte(`[1]`)
	set(t, kv, "k", v)
	v[1] = '9'

	got, err := kv.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, `[1]`, string(got))
}

func TestMemoryKVUpdateErrorLeavesValue(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()
	set(t, kv, "k", []byte("a"))

	boom := errors.New("boom")
	err := kv.Update(ctx, "k", func(cur []byte) ([]byte, error) {
		return []byte("b"), boom
	})
	require.ErrorIs(t, err, boom)

	got, err := kv.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "a", string(got))
}

func TestMemoryKVUpdateIsAtomic(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = kv.Update(ctx, "counter", func(cur []byte) ([]byte, error) {
				n := 0
				if cur != nil {
					n, _ = strconv.Atoi(string(cur))
				}
				return []byte(strconv.Itoa(n + 1)), nil
			})
		}()
	}
	wg.Wait()

	got, err := kv.Get(ctx, "counter")
	require.NoError(t, err)
	assert.Equal(t, "50", string(got))
}

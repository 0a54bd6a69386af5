package memory

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/querytrans/internal/core/ports/driven"
)

func TestNewConfigStore(t *testing.T) {
	store := NewConfigStore()
	require.NotNil(t, store)
	assert.NotNil(t, store.values)
	assert.Equal(t, ":memory:", store.Path())
}

func TestNewConfigStore_Seeded(t *testing.T) {
	store := NewConfigStore(
		map[string]any{"transform.ordering": "lexical"},
		map[string]any{"messages.page_size": 10, "transform.ordering": "input-first"},
	)

	assert.Equal(t, "input-first", store.GetString("transform.ordering"), "later seeds win")
	assert.Equal(t, 10, store.GetInt("messages.page_size"))
}

func TestConfigStore_SetAndGet(t *testing.T) {
	store := NewConfigStore()

	require.NoError(t, store.Set("key", "original"))
	require.NoError(t, store.Set("key", "updated"))

	val, ok := store.Get("key")
	assert.True(t, ok)
	assert.Equal(t, "updated", val)

	_, ok = store.Get("missing")
	assert.False(t, ok)
}

func TestConfigStore_TypedGetters(t *testing.T) {
	store := NewConfigStore(map[string]any{
		"string":  "s2tw",
		"int":     7,
		"int64":   int64(8),
		"float":   2.5,
		"float32": float32(0.5),
		"bool":    true,
		"strings": []string{"a", "b"},
		"anys":    []any{"a", 1, "b"},
	})

	tests := []struct {
		name string
		got  any
		want any
	}{
		{"string", store.GetString("string"), "s2tw"},
		{"string wrong type", store.GetString("int"), ""},
		{"int", store.GetInt("int"), 7},
		{"int from int64", store.GetInt("int64"), 8},
		{"int from float", store.GetInt("float"), 2},
		{"int wrong type", store.GetInt("string"), 0},
		{"float", store.GetFloat("float"), 2.5},
		{"float from float32", store.GetFloat("float32"), 0.5},
		{"float from int", store.GetFloat("int"), 7.0},
		{"float from int64", store.GetFloat("int64"), 8.0},
		{"float wrong type", store.GetFloat("bool"), 0.0},
		{"float missing", store.GetFloat("missing"), 0.0},
		{"bool", store.GetBool("bool"), true},
		{"bool wrong type", store.GetBool("string"), false},
		{"strings", store.GetStringSlice("strings"), []string{"a", "b"}},
		{"strings from any", store.GetStringSlice("anys"), []string{"a", "b"}},
		{"strings wrong type", store.GetStringSlice("int"), []string(nil)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.got)
		})
	}
}

func TestConfigStore_SaveLoad_NoOp(t *testing.T) {
	store := NewConfigStore(map[string]any{"key": "value"})

	require.NoError(t, store.Save())
	require.NoError(t, store.Load())
	assert.Equal(t, "value", store.GetString("key"))
}

func TestConfigStore_Concurrency(t *testing.T) {
	store := NewConfigStore()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = store.Set("messages.page_size", i)
		}()
		go func() {
			defer wg.Done()
			_ = store.GetInt("messages.page_size")
		}()
	}
	wg.Wait()

	_, ok := store.Get("messages.page_size")
	assert.True(t, ok)
}

func TestConfigStore_InterfaceCompliance(t *testing.T) {
	var _ driven.ConfigStore = NewConfigStore()
}

package cache

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntry(t *testing.T) {
	data := json.RawMessage(`[{"id":1}]`)
	entry := NewEntry("k", "https://example.test/comments", data, time.Minute)

	assert.False(t, entry.IsExpired())
	assert.LessOrEqual(t, entry.Age(), time.Second)

	t.Run("JSON", func(t *testing.T) {
		encoded, err := json.Marshal(entry)
		require.NoError(t, err)

		var decoded Entry
		require.NoError(t, json.Unmarshal(encoded, &decoded))
		assert.Equal(t, entry.Key, decoded.Key)
		assert.Equal(t, entry.URL, decoded.URL)
		assert.JSONEq(t, string(data), string(decoded.Data))
		assert.Equal(t, entry.ExpiresAt.Format(time.RFC3339), decoded.ExpiresAt.Format(time.RFC3339))
	})

	t.Run("Expiration", func(t *testing.T) {
		entry.ExpiresAt = time.Now().Add(-time.Second)
		assert.True(t, entry.IsExpired())
	})
}

func TestKey(t *testing.T) {
	a := Key("https://example.test/comments")
	assert.Len(t, a, 64)
	assert.Equal(t, a, Key("  https://example.test/comments "))
	assert.NotEqual(t, a, Key("https://example.test/users"))
}

func TestFileStore(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir, true, time.Hour)
	require.NoError(t, err)
	assert.True(t, store.IsEnabled())
	assert.Equal(t, dir, store.Directory())
	assert.Equal(t, time.Hour, store.TTL())

	key := Key("https://example.test/comments")
	data := json.RawMessage(`[{"id":1,"name":"a"}]`)

	t.Run("miss", func(t *testing.T) {
		_, getErr := store.Get(key)
		assert.ErrorIs(t, getErr, ErrNotFound)
	})

	t.Run("set and get", func(t *testing.T) {
		require.NoError(t, store.Set(key, "https://example.test/comments", data))
		entry, getErr := store.Get(key)
		require.NoError(t, getErr)
		assert.JSONEq(t, string(data), string(entry.Data))

		count, countErr := store.Count()
		require.NoError(t, countErr)
		assert.Equal(t, 1, count)
	})

	t.Run("delete is idempotent", func(t *testing.T) {
		require.NoError(t, store.Delete(key))
		require.NoError(t, store.Delete(key))
		_, getErr := store.Get(key)
		assert.ErrorIs(t, getErr, ErrNotFound)
	})

	t.Run("empty key", func(t *testing.T) {
		_, getErr := store.Get("")
		assert.ErrorIs(t, getErr, ErrInvalidKey)
		assert.ErrorIs(t, store.Set("", "", data), ErrInvalidKey)
	})

	t.Run("clear", func(t *testing.T) {
		require.NoError(t, store.Set("a", "", data))
		require.NoError(t, store.Set("b", "", data))
		require.NoError(t, store.Clear())
		count, countErr := store.Count()
		require.NoError(t, countErr)
		assert.Zero(t, count)
	})
}

func TestFileStore_Expired(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir, true, time.Hour)
	require.NoError(t, err)

	stale := NewEntry("old", "", json.RawMessage(`[]`), time.Hour)
	stale.CreatedAt = time.Now().Add(-2 * time.Hour)
	stale.ExpiresAt = time.Now().Add(-time.Hour)
	raw, err := json.Marshal(stale)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "old.json"), raw, 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "junk.json"), []byte("{"), 0o600))
	require.NoError(t, store.Set("fresh", "", json.RawMessage(`[]`)))

	_, err = store.Get("old")
	require.ErrorIs(t, err, ErrExpired)

	require.NoError(t, store.CleanupExpired())
	count, err := store.Count()
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestFileStore_Disabled(t *testing.T) {
	store, err := NewFileStore("", false, 0)
	require.NoError(t, err)
	assert.False(t, store.IsEnabled())

	_, err = store.Get("k")
	require.ErrorIs(t, err, ErrDisabled)
	require.ErrorIs(t, store.Set("k", "", nil), ErrDisabled)
	require.ErrorIs(t, store.Clear(), ErrDisabled)
}

func TestNewFileStore_EmptyDirectory(t *testing.T) {
	_, err := NewFileStore("", true, time.Hour)
	require.ErrorIs(t, err, ErrEmptyDirectory)
}

func TestParseTTL(t *testing.T) {
	tests := []struct {
		input   string
		want    time.Duration
		wantErr bool
	}{
		{input: "3600", want: time.Hour},
		{input: "30m", want: 30 * time.Minute},
		{input: "1h30m", want: 90 * time.Minute},
		{input: "10", wantErr: true},
		{input: "30d", wantErr: true},
		{input: "1000h", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseTTL(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "45s", FormatDuration(45*time.Second))
	assert.Equal(t, "30m", FormatDuration(30*time.Minute))
	assert.Equal(t, "1h", FormatDuration(time.Hour))
	assert.Equal(t, "1h30m", FormatDuration(90*time.Minute))
	assert.Equal(t, "7d", FormatDuration(MaxTTL))
	assert.Equal(t, "2d3h", FormatDuration(51*time.Hour))
}

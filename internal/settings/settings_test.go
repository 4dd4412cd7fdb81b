package settings

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/K-Lan-Chau-A/ASA-MB-sub001/internal/domain"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "tui.toml"))

	s, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, Default(), s)
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "tui.toml")
	store := NewFileStore(path)

	require.NoError(t, store.Save(Settings{Tab: TabNotifications, OrderSort: domain.SortOrderAsc}))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "notifications")
	assert.NoFileExists(t, path+".tmp")

	s, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, TabNotifications, s.Tab)
	assert.Equal(t, domain.SortOrderAsc, s.OrderSort)
}

func TestLoadFillsMissingFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tui.toml")
	require.NoError(t, os.WriteFile(path, []byte("tab = \"Notifications\"\n"), 0o644))

	s, err := NewFileStore(path).Load()
	require.NoError(t, err)
	assert.Equal(t, TabNotifications, s.Tab)
	assert.Equal(t, domain.SortOrderDesc, s.OrderSort)
}

func TestLoadRejectsInvalidFiles(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "bad toml", body: "tab = "},
		{name: "unknown tab", body: "tab = \"products\"\n"},
		{name: "unknown sort", body: "order_sort = \"sideways\"\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "tui.toml")
			require.NoError(t, os.WriteFile(path, []byte(tt.body), 0o644))
			_, err := NewFileStore(path).Load()
			assert.Error(t, err)
		})
	}
}

func TestSaveRejectsInvalid(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "tui.toml"))
	assert.Error(t, store.Save(Settings{Tab: "shifts"}))
	assert.NoFileExists(t, store.Path())
}

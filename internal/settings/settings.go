// Package settings provides TUI user preferences persistence.
package settings

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/K-Lan-Chau-A/ASA-MB-sub001/internal/config"
	"github.com/K-Lan-Chau-A/ASA-MB-sub001/internal/domain"
)

// Tab values.
const (
	TabOrders        = "orders"
	TabNotifications = "notifications"
)

const fileName = "tui" + config.FileExtTOML

// Settings holds TUI preferences persisted between runs.
//
// Example tui.toml:
//
//	tab = "notifications"
//	order_sort = "asc"
type Settings struct {
	// Tab is the tab shown on start.
	Tab string `toml:"tab"`
	// OrderSort is "desc" for newest orders first, "asc" for oldest.
	OrderSort domain.SortOrder `toml:"order_sort"`
}

// Default returns settings with all default values.
func Default() Settings {
	return Settings{Tab: TabOrders, OrderSort: domain.SortOrderDesc}
}

// Validate fills empty fields with defaults and rejects unknown values.
func (s *Settings) Validate() error {
	s.Tab = strings.ToLower(strings.TrimSpace(s.Tab))
	switch s.Tab {
	case "":
		s.Tab = TabOrders
	case TabOrders, TabNotifications:
	default:
		return fmt.Errorf("invalid tab: %s", s.Tab)
	}
	if s.OrderSort == "" {
		s.OrderSort = domain.SortOrderDesc
	}
	if !s.OrderSort.IsValid() {
		return fmt.Errorf("invalid order_sort: %s", s.OrderSort)
	}
	return nil
}

// Store loads and saves settings.
type Store interface {
	Load() (Settings, error)
	Save(s Settings) error
}

// FileStore keeps settings in a TOML file.
type FileStore struct {
	path string
}

// NewFileStore creates a store backed by path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// DefaultPath is tui.toml in the config dir, unless tui_settings_path is set.
func DefaultPath() string {
	if override := config.Get("tui_settings_path", ""); override != "" {
		return override
	}
	return filepath.Join(config.Get("config_dir", ""), fileName)
}

// Path returns the settings file.
func (f *FileStore) Path() string {
	return f.path
}

// Load reads the settings file. A missing file yields the defaults.
func (f *FileStore) Load() (Settings, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return Settings{}, fmt.Errorf("read settings: %w", err)
	}

	s := Default()
	if err := toml.Unmarshal(data, &s); err != nil {
		return Settings{}, fmt.Errorf("parse settings %s: %w", f.path, err)
	}
	if err := s.Validate(); err != nil {
		return Settings{}, fmt.Errorf("invalid settings %s: %w", f.path, err)
	}
	return s, nil
}

// Save writes s, creating the directory if needed.
func (f *FileStore) Save(s Settings) error {
	if err := s.Validate(); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(f.path), config.FileModeDir); err != nil {
		return fmt.Errorf("create settings directory: %w", err)
	}
	data, err := toml.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, config.FileModeFile); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("write settings: %w", err)
	}
	return nil
}

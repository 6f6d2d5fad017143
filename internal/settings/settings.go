// Package settings provides user preference persistence for atlassify.
// Settings are stored as a single TOML file under the user config dir.
package settings

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/atlassify/atlassify/internal/domain"
	"github.com/atlassify/atlassify/internal/logging"
	"github.com/atlassify/atlassify/internal/product"
	"github.com/atlassify/atlassify/internal/tray"
)

// File permission constants.
const (
	// FileModeDir is the permission for directories (rwxr-xr-x).
	FileModeDir os.FileMode = 0o755
	// FileModeFile is the permission for the settings file (rw-------).
	FileModeFile os.FileMode = 0o600
)

// DefaultMaxNotificationsPerAccount is the page-size ceiling requested per
// account per fetch.
const DefaultMaxNotificationsPerAccount = 999

// DefaultRefreshIntervalSeconds is the polling interval for the watch view.
const DefaultRefreshIntervalSeconds = 60

// State is the flat settings bag consumed by the pipeline. Filter fields
// hold the active values per filter dimension; empty means unconstrained.
type State struct {
	FetchOnlyUnread        bool `toml:"fetch_only_unread"`
	GroupByProduct         bool `toml:"group_by_product"`
	GroupAlphabetically    bool `toml:"group_alphabetically"`
	UseUnreadActiveIcon    bool `toml:"use_unread_active_icon"`
	UseAlternateIdleIcon   bool `toml:"use_alternate_idle_icon"`
	ShowCountInTray        bool `toml:"show_count_in_tray"`
	MaxPerAccount          int  `toml:"max_per_account"`
	RefreshIntervalSeconds int  `toml:"refresh_interval_seconds"`

	FilterTimeSensitive []string `toml:"filter_time_sensitive"`
	FilterCategories    []string `toml:"filter_categories"`
	FilterActors        []string `toml:"filter_actors"`
	FilterReadStates    []string `toml:"filter_read_states"`
	FilterProducts      []string `toml:"filter_products"`
}

// Default returns the default settings.
func Default() State {
	return State{
		FetchOnlyUnread:        true,
		GroupByProduct:         true,
		GroupAlphabetically:    false,
		UseUnreadActiveIcon:    true,
		UseAlternateIdleIcon:   false,
		ShowCountInTray:        true,
		MaxPerAccount:          DefaultMaxNotificationsPerAccount,
		RefreshIntervalSeconds: DefaultRefreshIntervalSeconds,
	}
}

// Filters converts the persisted filter arrays to a domain filter set.
// Unrecognized values are dropped with a warning so a stale settings file
// cannot poison filtering.
func (s *State) Filters() domain.FilterSet {
	fs := domain.FilterSet{}
	for _, v := range s.FilterTimeSensitive {
		switch ts := domain.TimeSensitive(v); ts {
		case domain.TimeSensitiveMention, domain.TimeSensitiveComment:
			fs.TimeSensitive = append(fs.TimeSensitive, ts)
		default:
			logging.Warn("dropping unknown time-sensitive filter value", "value", v)
		}
	}
	for _, v := range s.FilterCategories {
		if c := domain.Category(v); c.IsValid() {
			fs.Categories = append(fs.Categories, c)
		} else {
			logging.Warn("dropping unknown category filter value", "value", v)
		}
	}
	for _, v := range s.FilterActors {
		switch a := domain.ActorType(v); a {
		case domain.ActorTypeUser, domain.ActorTypeAutomation:
			fs.Actors = append(fs.Actors, a)
		default:
			logging.Warn("dropping unknown actor filter value", "value", v)
		}
	}
	for _, v := range s.FilterReadStates {
		if r := domain.ReadState(v); r.IsValid() {
			fs.ReadStates = append(fs.ReadStates, r)
		} else {
			logging.Warn("dropping unknown read-state filter value", "value", v)
		}
	}
	for _, v := range s.FilterProducts {
		if p := product.Name(v); p.IsValid() {
			fs.Products = append(fs.Products, p)
		} else {
			logging.Warn("dropping unknown product filter value", "value", v)
		}
	}
	return fs
}

// Tray converts settings to tray derivation options.
func (s *State) Tray() tray.Options {
	return tray.Options{
		UseUnreadActiveIcon:  s.UseUnreadActiveIcon,
		UseAlternateIdleIcon: s.UseAlternateIdleIcon,
		ShowCountInTitle:     s.ShowCountInTray,
	}
}

// Path returns the settings file location. ATLASSIFY_CONFIG_DIR overrides
// the default user config dir.
func Path() (string, error) {
	if dir := os.Getenv("ATLASSIFY_CONFIG_DIR"); dir != "" {
		return filepath.Join(dir, "settings.toml"), nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("determine config dir: %w", err)
	}
	return filepath.Join(dir, "atlassify", "settings.toml"), nil
}

// Load reads settings from disk. A missing file yields the defaults.
func Load() (State, error) {
	path, err := Path()
	if err != nil {
		return Default(), err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return Default(), fmt.Errorf("read settings: %w", err)
	}

	s := Default()
	if err := toml.Unmarshal(data, &s); err != nil {
		return Default(), fmt.Errorf("parse settings: %w", err)
	}
	if s.MaxPerAccount <= 0 {
		s.MaxPerAccount = DefaultMaxNotificationsPerAccount
	}
	if s.RefreshIntervalSeconds <= 0 {
		s.RefreshIntervalSeconds = DefaultRefreshIntervalSeconds
	}
	return s, nil
}

// Save writes settings to disk, creating the config directory if needed.
func Save(s State) error {
	path, err := Path()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), FileModeDir); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	data, err := toml.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	if err := os.WriteFile(path, data, FileModeFile); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	return nil
}

package settings

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atlassify/atlassify/internal/domain"
	"github.com/atlassify/atlassify/internal/product"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	t.Setenv("ATLASSIFY_CONFIG_DIR", t.TempDir())

	s, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Default(), s)
	assert.True(t, s.FetchOnlyUnread)
	assert.Equal(t, DefaultMaxNotificationsPerAccount, s.MaxPerAccount)
}

func TestSaveAndLoad_Roundtrip(t *testing.T) {
	t.Setenv("ATLASSIFY_CONFIG_DIR", t.TempDir())

	s := Default()
	s.FetchOnlyUnread = false
	s.GroupAlphabetically = true
	s.MaxPerAccount = 50
	s.FilterTimeSensitive = []string{"mention"}
	s.FilterCategories = []string{"direct"}
	s.FilterActors = []string{"user"}
	s.FilterReadStates = []string{"unread"}
	s.FilterProducts = []string{"jira", "bitbucket"}
	require.NoError(t, Save(s))

	loaded, err := Load()
	require.NoError(t, err)
	assert.Equal(t, s, loaded)
}

func TestLoad_RepairsInvalidNumbers(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("ATLASSIFY_CONFIG_DIR", dir)
	err := os.WriteFile(filepath.Join(dir, "settings.toml"),
		[]byte("max_per_account = -5\nrefresh_interval_seconds = 0\n"), 0o600)
	require.NoError(t, err)

	s, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultMaxNotificationsPerAccount, s.MaxPerAccount)
	assert.Equal(t, DefaultRefreshIntervalSeconds, s.RefreshIntervalSeconds)
}

func TestLoad_MalformedFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("ATLASSIFY_CONFIG_DIR", dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "settings.toml"), []byte("{{nope"), 0o600))

	_, err := Load()
	assert.Error(t, err)
}

func TestFilters_ConvertsKnownValues(t *testing.T) {
	s := Default()
	s.FilterTimeSensitive = []string{"mention", "comment"}
	s.FilterCategories = []string{"direct"}
	s.FilterActors = []string{"automation"}
	s.FilterReadStates = []string{"unread"}
	s.FilterProducts = []string{"jira", "confluence"}

	fs := s.Filters()

	assert.Equal(t, []domain.TimeSensitive{domain.TimeSensitiveMention, domain.TimeSensitiveComment}, fs.TimeSensitive)
	assert.Equal(t, []domain.Category{domain.CategoryDirect}, fs.Categories)
	assert.Equal(t, []domain.ActorType{domain.ActorTypeAutomation}, fs.Actors)
	assert.Equal(t, []domain.ReadState{domain.ReadStateUnread}, fs.ReadStates)
	assert.Equal(t, []product.Name{product.Jira, product.Confluence}, fs.Products)
}

func TestFilters_DropsUnknownValues(t *testing.T) {
	s := Default()
	s.FilterTimeSensitive = []string{"mention", "urgent"}
	s.FilterCategories = []string{"direct", "carrier-pigeon"}
	s.FilterProducts = []string{"jira", "made-up-product"}

	fs := s.Filters()

	assert.Equal(t, []domain.TimeSensitive{domain.TimeSensitiveMention}, fs.TimeSensitive)
	assert.Equal(t, []domain.Category{domain.CategoryDirect}, fs.Categories)
	assert.Equal(t, []product.Name{product.Jira}, fs.Products)
}

func TestTrayOptions(t *testing.T) {
	s := Default()
	s.UseUnreadActiveIcon = true
	s.UseAlternateIdleIcon = true
	s.ShowCountInTray = false

	opts := s.Tray()
	assert.True(t, opts.UseUnreadActiveIcon)
	assert.True(t, opts.UseAlternateIdleIcon)
	assert.False(t, opts.ShowCountInTitle)
}

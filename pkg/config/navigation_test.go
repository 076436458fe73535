package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Debug(string, map[string]interface{}) {}
func (nopLogger) Info(string, map[string]interface{})  {}
func (nopLogger) Warn(string, map[string]interface{})  {}
func (nopLogger) Error(string, map[string]interface{}) {}

func TestDefaultNavigation(t *testing.T) {
	nav := DefaultNavigation()

	categories := nav.Categories()
	require.Len(t, categories, 9)
	assert.Equal(t, "news", categories[0].Slug)
	assert.Equal(t, "podcast", categories[8].Slug)

	tech, ok := nav.Lookup("technology")
	require.True(t, ok)
	assert.Equal(t, "technology-science", tech.UpstreamSlug())

	politics, ok := nav.Lookup("politics")
	require.True(t, ok)
	assert.Equal(t, "politics", politics.UpstreamSlug())

	_, ok = nav.Lookup("weather")
	assert.False(t, ok)
}

func TestNavigation_CategoriesReturnsCopy(t *testing.T) {
	nav := DefaultNavigation()

	categories := nav.Categories()
	categories[0].Slug = "changed"

	assert.Equal(t, "news", nav.Categories()[0].Slug)
}

func TestParseNavigation_Errors(t *testing.T) {
	tests := map[string]string{
		"empty":     "categories: []",
		"no slug":   "categories:\n  - nepali: x\n",
		"duplicate": "categories:\n  - slug: a\n  - slug: a\n",
		"malformed": "categories: [",
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ParseNavigation([]byte(doc))
			assert.Error(t, err)
		})
	}
}

func TestLoadNavigation_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nav.yaml")
	require.NoError(t, os.WriteFile(path, []byte("categories:\n  - nepali: खेलकुद\n    slug: sports\n"), 0o644))

	nav, err := LoadNavigation(path)
	require.NoError(t, err)
	require.Len(t, nav.Categories(), 1)
	assert.Equal(t, "खेलकुद", nav.Categories()[0].Nepali)

	_, err = LoadNavigation(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestNavigation_WatchReloads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nav.yaml")
	require.NoError(t, os.WriteFile(path, []byte("categories:\n  - slug: sports\n"), 0o644))

	nav, err := LoadNavigation(path)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, nav.Watch(ctx, path, nopLogger{}))

	require.NoError(t, os.WriteFile(path, []byte("categories:\n  - slug: sports\n  - slug: world\n"), 0o644))

	require.Eventually(t, func() bool {
		_, ok := nav.Lookup("world")
		return ok
	}, 5*time.Second, 50*time.Millisecond)
}

func TestNavigation_WatchKeepsPreviousOnInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nav.yaml")
	require.NoError(t, os.WriteFile(path, []byte("categories:\n  - slug: sports\n"), 0o644))

	nav, err := LoadNavigation(path)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, nav.Watch(ctx, path, nopLogger{}))

	require.NoError(t, os.WriteFile(path, []byte("categories: ["), 0o644))
	time.Sleep(2 * reloadDebounce)

	_, ok := nav.Lookup("sports")
	assert.True(t, ok)
}

// ABOUTME: Site navigation categories loaded from YAML with an embedded default
// ABOUTME: An optional override file is watched and reloaded when it changes

package config

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"gopkg.in/yaml.v3"

	"nepalvoices-web/core/domain"
	"nepalvoices-web/core/interfaces"
)

//go:embed navigation.yaml
var defaultNavigation []byte

const reloadDebounce = 250 * time.Millisecond

type navigationFile struct {
	Categories []domain.NavCategory `yaml:"categories"`
}

// Navigation holds the current set of header sections
type Navigation struct {
	mu         sync.RWMutex
	categories []domain.NavCategory
	bySlug     map[string]domain.NavCategory
}

// ParseNavigation decodes a navigation YAML document
func ParseNavigation(data []byte) ([]domain.NavCategory, error) {
	var file navigationFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("invalid navigation yaml: %w", err)
	}

	seen := make(map[string]bool, len(file.Categories))
	for i, c := range file.Categories {
		c.Slug = strings.TrimSpace(c.Slug)
		if c.Slug == "" {
			return nil, fmt.Errorf("navigation category %d has no slug", i)
		}
		if seen[c.Slug] {
			return nil, fmt.Errorf("duplicate navigation slug %q", c.Slug)
		}
		seen[c.Slug] = true
		file.Categories[i] = c
	}

	if len(file.Categories) == 0 {
		return nil, errors.New("navigation has no categories")
	}
	return file.Categories, nil
}

// DefaultNavigation returns the embedded navigation
func DefaultNavigation() *Navigation {
	categories, err := ParseNavigation(defaultNavigation)
	if err != nil {
		panic(fmt.Sprintf("embedded navigation: %v", err))
	}
	n := &Navigation{}
	n.set(categories)
	return n
}

// LoadNavigation reads path, or the embedded default when path is empty
func LoadNavigation(path string) (*Navigation, error) {
	if path == "" {
		return DefaultNavigation(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read navigation file: %w", err)
	}
	categories, err := ParseNavigation(data)
	if err != nil {
		return nil, err
	}

	n := &Navigation{}
	n.set(categories)
	return n, nil
}

func (n *Navigation) set(categories []domain.NavCategory) {
	bySlug := make(map[string]domain.NavCategory, len(categories))
	for _, c := range categories {
		bySlug[c.Slug] = c
	}

	n.mu.Lock()
	n.categories = categories
	n.bySlug = bySlug
	n.mu.Unlock()
}

// Categories returns a copy of the sections in display order
func (n *Navigation) Categories() []domain.NavCategory {
	n.mu.RLock()
	defer n.mu.RUnlock()
	out := make([]domain.NavCategory, len(n.categories))
	copy(out, n.categories)
	return out
}

// Lookup finds a section by its path slug
func (n *Navigation) Lookup(slug string) (domain.NavCategory, bool) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	c, ok := n.bySlug[slug]
	return c, ok
}

// Watch reloads path whenever it changes until ctx is cancelled. A file that
// fails to parse leaves the previous categories in place.
func (n *Navigation) Watch(ctx context.Context, path string, logger interfaces.Logger) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("could not create file watcher: %w", err)
	}

	// Watch the parent directory so editors that save via rename are seen
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		watcher.Close()
		return fmt.Errorf("could not watch %s: %w", path, err)
	}

	target := filepath.Clean(path)
	go func() {
		defer watcher.Close()

		// Editors emit several events per save; reload once they settle
		var pending <-chan time.Time
		for {
			select {
			case <-ctx.Done():
				return
			case <-pending:
				pending = nil
				n.reload(path, logger)
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != target {
					continue
				}
				if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
					pending = time.After(reloadDebounce)
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warn("Navigation watcher error", map[string]interface{}{
					"error": err.Error(),
				})
			}
		}
	}()

	return nil
}

func (n *Navigation) reload(path string, logger interfaces.Logger) {
	data, err := os.ReadFile(path)
	if err != nil {
		logger.Warn("Failed to read navigation file", map[string]interface{}{
			"path":  path,
			"error": err.Error(),
		})
		return
	}

	categories, err := ParseNavigation(data)
	if err != nil {
		logger.Warn("Ignoring invalid navigation file", map[string]interface{}{
			"path":  path,
			"error": err.Error(),
		})
		return
	}

	n.set(categories)
	logger.Info("Navigation reloaded", map[string]interface{}{
		"path":       path,
		"categories": len(categories),
	})
}

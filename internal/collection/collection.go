// Package collection persists named groups of image folders as one JSON file
// per collection in the user's config directory.
package collection

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

const collectionsDirName = "collections"

// ErrNotFound is returned when a named collection does not exist on disk.
var ErrNotFound = errors.New("collection: not found")

// ErrExists is returned by Create when the name is already taken.
var ErrExists = errors.New("collection: already exists")

// LoggerFunc lets the caller route manager log messages.
type LoggerFunc func(message string)

// Collection is a named set of root folders to scan for images.
type Collection struct {
	Name        string   `json:"name"`
	Paths       []string `json:"paths"`
	CreatedDate string   `json:"created_date"`
	LastUsed    string   `json:"last_used,omitempty"`
	ImageCount  int      `json:"image_count"`
}

// New builds a collection stamped with the current time.
func New(name string, paths []string) *Collection {
	return &Collection{
		Name:        name,
		Paths:       paths,
		CreatedDate: time.Now().Format(time.RFC3339),
	}
}

// MarkUsed stamps the collection as recently used. The caller still needs to
// Save it.
func (c *Collection) MarkUsed() {
	c.LastUsed = time.Now().Format(time.RFC3339)
}

// Manager loads and saves collections under a single directory.
type Manager struct {
	dir    string
	logger LoggerFunc
}

// NewManager creates a manager rooted at dir, creating it if needed. An
// empty dir selects <UserConfigDir>/glimpse/collections, falling back to the
// current directory when the config dir cannot be resolved.
func NewManager(dir string, logger LoggerFunc) (*Manager, error) {
	if dir == "" {
		configDir, err := os.UserConfigDir()
		if err != nil {
			log.Printf("Warning: could not get user config dir: %v. Using current dir.", err)
			dir = collectionsDirName
		} else {
			dir = filepath.Join(configDir, "glimpse", collectionsDirName)
		}
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create collections directory %s: %w", dir, err)
	}
	return &Manager{dir: dir, logger: logger}, nil
}

// Dir returns the directory collections are stored in.
func (m *Manager) Dir() string {
	return m.dir
}

func (m *Manager) logMessage(format string, args ...interface{}) {
	if m.logger != nil {
		m.logger(fmt.Sprintf(format, args...))
	} else {
		log.Printf(format, args...)
	}
}

// safeName keeps only characters that are safe in a file name.
func safeName(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ', r == '-', r == '_':
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}

func (m *Manager) filePath(name string) string {
	return filepath.Join(m.dir, safeName(name)+".json")
}

// Save writes the collection to its JSON file, replacing any previous
// version.
func (m *Manager) Save(c *Collection) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode collection %q: %w", c.Name, err)
	}
	if err := os.WriteFile(m.filePath(c.Name), data, 0o644); err != nil {
		return fmt.Errorf("failed to save collection %q: %w", c.Name, err)
	}
	return nil
}

// Load reads one collection by name.
func (m *Manager) Load(name string) (*Collection, error) {
	data, err := os.ReadFile(m.filePath(name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to read collection %q: %w", name, err)
	}
	var c Collection
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to decode collection %q: %w", name, err)
	}
	return &c, nil
}

// All returns every stored collection, most recently used first, then by
// name. Unreadable files are logged and skipped.
func (m *Manager) All() ([]*Collection, error) {
	entries, err := os.ReadDir(m.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list collections: %w", err)
	}
	var out []*Collection
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		name := strings.TrimSuffix(e.Name(), ".json")
		c, err := m.Load(name)
		if err != nil {
			m.logMessage("Skipping unreadable collection %q: %v", name, err)
			continue
		}
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].LastUsed != out[j].LastUsed {
			return out[i].LastUsed > out[j].LastUsed
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

// Delete removes a collection file. Deleting a missing collection is not an
// error.
func (m *Manager) Delete(name string) error {
	err := os.Remove(m.filePath(name))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete collection %q: %w", name, err)
	}
	return nil
}

// Exists reports whether a collection with this name is stored.
func (m *Manager) Exists(name string) bool {
	_, err := os.Stat(m.filePath(name))
	return err == nil
}

// Create stores a new collection, refusing to overwrite an existing one.
func (m *Manager) Create(name string, paths []string) (*Collection, error) {
	if safeName(name) == "" {
		return nil, errors.New("collection: name required")
	}
	if m.Exists(name) {
		return nil, ErrExists
	}
	c := New(name, paths)
	if err := m.Save(c); err != nil {
		return nil, err
	}
	return c, nil
}

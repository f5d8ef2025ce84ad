// Package settings stores persistent user preferences in a BoltDB database,
// replacing any ambient global settings object with an explicit store handed
// to the UI at startup.
package settings

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"

	bolt "go.etcd.io/bbolt"
)

const (
	dbFileName  = "glimpse.db"
	prefsBucket = "Preferences"

	keyLastCollection = "last_collection"
	keyTimerInterval  = "timer_interval"
	keyAutoAdvance    = "auto_advance_enabled"
	keyGrayscale      = "grayscale_enabled"
	keyBackground     = "bg_mode"
	keyShowHistory    = "show_history_panel"
)

// Background display modes for the image canvas.
const (
	BackgroundBlack    = "black"
	BackgroundGray     = "gray"
	BackgroundAdaptive = "adaptive"
)

// DefaultTimerInterval is the auto-advance interval in seconds when nothing
// has been stored yet.
const DefaultTimerInterval = 60

// Store is the preferences database.
type Store struct {
	db *bolt.DB
}

// Open creates or opens the preferences database in dbDir. An empty dbDir
// selects <UserConfigDir>/glimpse, falling back to the current directory.
func Open(dbDir string) (*Store, error) {
	if dbDir == "" {
		configDir, err := os.UserConfigDir()
		if err != nil {
			log.Printf("Warning: could not get user config dir: %v. Using current dir.", err)
			dbDir = "."
		} else {
			dbDir = filepath.Join(configDir, "glimpse")
		}
	}
	if err := os.MkdirAll(dbDir, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create settings directory %s: %w", dbDir, err)
	}

	dbPath := filepath.Join(dbDir, dbFileName)
	db, err := bolt.Open(dbPath, 0o600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open settings database %s: %w", dbPath, err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(prefsBucket))
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create bucket %s: %w", prefsBucket, err)
	}
	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *Store) get(key string) string {
	var val string
	s.db.View(func(tx *bolt.Tx) error {
		if v := tx.Bucket([]byte(prefsBucket)).Get([]byte(key)); v != nil {
			val = string(v)
		}
		return nil
	})
	return val
}

func (s *Store) put(key, val string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(prefsBucket)).Put([]byte(key), []byte(val))
	})
}

func (s *Store) getBool(key string, def bool) bool {
	switch s.get(key) {
	case "1":
		return true
	case "0":
		return false
	default:
		return def
	}
}

func (s *Store) putBool(key string, v bool) error {
	if v {
		return s.put(key, "1")
	}
	return s.put(key, "0")
}

// LastCollection returns the name of the collection used last, or "".
func (s *Store) LastCollection() string {
	return s.get(keyLastCollection)
}

// SetLastCollection records the collection used last.
func (s *Store) SetLastCollection(name string) error {
	return s.put(keyLastCollection, name)
}

// TimerInterval returns the auto-advance interval in seconds.
func (s *Store) TimerInterval() int {
	if n, err := strconv.Atoi(s.get(keyTimerInterval)); err == nil && n > 0 {
		return n
	}
	return DefaultTimerInterval
}

// SetTimerInterval stores the auto-advance interval in seconds.
func (s *Store) SetTimerInterval(seconds int) error {
	return s.put(keyTimerInterval, strconv.Itoa(seconds))
}

// AutoAdvance reports whether the auto-advance timer is enabled.
func (s *Store) AutoAdvance() bool {
	return s.getBool(keyAutoAdvance, false)
}

// SetAutoAdvance stores the auto-advance toggle.
func (s *Store) SetAutoAdvance(on bool) error {
	return s.putBool(keyAutoAdvance, on)
}

// Grayscale reports whether grayscale rendering is enabled.
func (s *Store) Grayscale() bool {
	return s.getBool(keyGrayscale, false)
}

// SetGrayscale stores the grayscale toggle.
func (s *Store) SetGrayscale(on bool) error {
	return s.putBool(keyGrayscale, on)
}

// BackgroundMode returns the canvas background mode.
func (s *Store) BackgroundMode() string {
	switch mode := s.get(keyBackground); mode {
	case BackgroundBlack, BackgroundGray, BackgroundAdaptive:
		return mode
	default:
		return BackgroundBlack
	}
}

// SetBackgroundMode stores the canvas background mode.
func (s *Store) SetBackgroundMode(mode string) error {
	return s.put(keyBackground, mode)
}

// ShowHistoryPanel reports whether the history side panel is visible.
func (s *Store) ShowHistoryPanel() bool {
	return s.getBool(keyShowHistory, false)
}

// SetShowHistoryPanel stores the history panel visibility.
func (s *Store) SetShowHistoryPanel(on bool) error {
	return s.putBool(keyShowHistory, on)
}

// Package sequence implements image discovery and randomized, non-repeating
// traversal of the discovered set. The enumerator walks one or more root
// directories on its own goroutine and hands the caller a single terminal
// result; the session turns that result into a shuffled slideshow with
// bidirectional history.
package sequence

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// DefaultExtensions is the stock allow-list of image file extensions.
// Comparison is case-insensitive.
var DefaultExtensions = []string{".jpg", ".jpeg", ".png", ".bmp", ".gif"}

// progressEvery controls how often a running scan publishes its running count.
const progressEvery = 64

// errCancelled aborts a walk from inside the WalkDir callback.
var errCancelled = errors.New("sequence: scan cancelled")

// Status is the terminal state of a scan.
type Status int

const (
	// StatusSuccess means every root was walked without incident.
	StatusSuccess Status = iota
	// StatusPartial means the scan completed but one or more roots or
	// subtrees could not be read; the result carries warnings for each.
	StatusPartial
	// StatusCancelled means the caller cancelled the scan. Partial results
	// are discarded.
	StatusCancelled
	// StatusFailed means the scan could not run at all.
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusPartial:
		return "partial"
	case StatusCancelled:
		return "cancelled"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Warning records a root or subtree the scan could not read.
type Warning struct {
	Path string
	Err  error
}

// Result is the single terminal outcome of a scan.
type Result struct {
	Status   Status
	Images   []string // de-duplicated absolute paths, nil unless Success or Partial
	Warnings []Warning
	Err      error // set only for StatusFailed
}

// Config describes one scan request.
type Config struct {
	Roots      []string
	Extensions []string // defaults to DefaultExtensions when empty
}

// allowSet normalizes the configured extensions into a lookup set.
func (c Config) allowSet() map[string]bool {
	exts := c.Extensions
	if len(exts) == 0 {
		exts = DefaultExtensions
	}
	set := make(map[string]bool, len(exts))
	for _, e := range exts {
		e = strings.ToLower(e)
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		set[e] = true
	}
	return set
}

// Scan is a handle to one in-flight enumeration. Progress counts are
// advisory; Done delivers exactly one Result, after all progress sends.
type Scan struct {
	progress   chan int
	done       chan Result
	cancel     chan struct{}
	cancelOnce sync.Once
}

// Start begins walking the configured roots on a new goroutine.
func Start(cfg Config) *Scan {
	s := &Scan{
		progress: make(chan int, 1),
		done:     make(chan Result, 1),
		cancel:   make(chan struct{}),
	}
	go s.run(cfg)
	return s
}

// Progress yields running counts of images discovered so far. Sends are
// dropped rather than buffered when the consumer lags, so only the latest
// count is retained.
func (s *Scan) Progress() <-chan int {
	return s.progress
}

// Done yields the terminal Result and is then closed.
func (s *Scan) Done() <-chan Result {
	return s.done
}

// Cancel requests cancellation. Safe to call more than once and after the
// scan has finished. Cancellation is observed within one directory entry.
func (s *Scan) Cancel() {
	s.cancelOnce.Do(func() { close(s.cancel) })
}

// publish posts a count without ever blocking the walk, replacing a stale
// unread value if one is pending.
func (s *Scan) publish(count int) {
	for {
		select {
		case s.progress <- count:
			return
		default:
			select {
			case <-s.progress:
			default:
			}
		}
	}
}

func (s *Scan) run(cfg Config) {
	defer close(s.done)

	if len(cfg.Roots) == 0 {
		s.done <- Result{Status: StatusFailed, Err: errors.New("sequence: no roots to scan")}
		return
	}

	allow := cfg.allowSet()
	seen := make(map[string]bool)
	var images []string
	var warnings []Warning
	cancelled := false

	for _, root := range cfg.Roots {
		abs, err := filepath.Abs(root)
		if err != nil {
			warnings = append(warnings, Warning{Path: root, Err: err})
			continue
		}
		fi, err := os.Stat(abs)
		if err != nil {
			warnings = append(warnings, Warning{Path: abs, Err: err})
			continue
		}
		if !fi.IsDir() {
			warnings = append(warnings, Warning{Path: abs, Err: errors.New("not a directory")})
			continue
		}

		err = filepath.WalkDir(abs, func(p string, d fs.DirEntry, err error) error {
			select {
			case <-s.cancel:
				return errCancelled
			default:
			}
			if err != nil {
				// Unreadable subtree: record and keep walking siblings.
				warnings = append(warnings, Warning{Path: p, Err: err})
				if d != nil && d.IsDir() {
					return fs.SkipDir
				}
				return nil
			}
			if d.IsDir() || !d.Type().IsRegular() {
				return nil
			}
			if !allow[strings.ToLower(filepath.Ext(p))] {
				return nil
			}
			info, err := d.Info()
			if err != nil || info.Size() == 0 {
				return nil
			}
			p = filepath.Clean(p)
			if seen[p] {
				return nil
			}
			seen[p] = true
			images = append(images, p)
			if len(images)%progressEvery == 0 {
				s.publish(len(images))
			}
			return nil
		})
		if errors.Is(err, errCancelled) {
			cancelled = true
			break
		}
		if err != nil {
			warnings = append(warnings, Warning{Path: abs, Err: err})
		}
	}

	close(s.progress)

	switch {
	case cancelled:
		// Partial results are dropped entirely.
		s.done <- Result{Status: StatusCancelled}
	case len(warnings) > 0:
		s.done <- Result{Status: StatusPartial, Images: images, Warnings: warnings}
	default:
		s.done <- Result{Status: StatusSuccess, Images: images}
	}
}

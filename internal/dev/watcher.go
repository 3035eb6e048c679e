package dev

import (
	"context"
	"io/fs"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/vango-dev/docsite/internal/config"
)

// ChangeType classifies a changed file by what the server must redo.
type ChangeType int

const (
	ChangeContent ChangeType = iota
	ChangeCSS
	ChangeStatic
	ChangeConfig
)

func (t ChangeType) String() string {
	switch t {
	case ChangeContent:
		return "content"
	case ChangeCSS:
		return "css"
	case ChangeConfig:
		return "config"
	default:
		return "static"
	}
}

// Change is a file that appeared, changed or disappeared.
type Change struct {
	Path string
	Type ChangeType
}

// WatcherConfig configures a Watcher.
type WatcherConfig struct {
	// Paths are the files and directories to watch.
	Paths []string

	// Ignore holds base names, path segments ("drafts", "docs/private")
	// or globs ("*.swp"). Globs containing a slash match the whole path.
	Ignore []string

	// Interval is the time between scans.
	Interval time.Duration
}

// DefaultIgnore is used when WatcherConfig.Ignore is empty.
var DefaultIgnore = []string{
	".git",
	"node_modules",
	".docusaurus",
	"*.tmp",
	"*.swp",
	"*~",
	".DS_Store",
}

type ignoreRule struct {
	pattern  string
	glob     bool
	segments []string
}

func (r ignoreRule) match(slashed, base string, parts []string) bool {
	if r.glob {
		if len(r.segments) > 1 {
			ok, _ := path.Match(r.pattern, slashed)
			return ok
		}
		ok, _ := path.Match(r.pattern, base)
		return ok
	}
	return containsRun(parts, r.segments)
}

// containsRun reports whether want occurs as a contiguous run in parts.
func containsRun(parts, want []string) bool {
	if len(want) == 0 {
		return false
	}
outer:
	for i := 0; i+len(want) <= len(parts); i++ {
		for j, w := range want {
			if parts[i+j] != w {
				continue outer
			}
		}
		return true
	}
	return false
}

func segments(p string) []string {
	var out []string
	for _, s := range strings.Split(p, "/") {
		if s != "" && s != "." {
			out = append(out, s)
		}
	}
	return out
}

// Watcher detects file changes by comparing modification times between
// periodic scans.
type Watcher struct {
	paths    []string
	rules    []ignoreRule
	interval time.Duration

	mu       sync.Mutex
	onChange func(Change)
	cancel   context.CancelFunc
	seen     map[string]time.Time
}

// NewWatcher creates a stopped watcher.
func NewWatcher(cfg WatcherConfig) *Watcher {
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultPollInterval
	}
	ignore := cfg.Ignore
	if len(ignore) == 0 {
		ignore = DefaultIgnore
	}

	w := &Watcher{paths: cfg.Paths, interval: cfg.Interval}
	for _, p := range ignore {
		p = filepath.ToSlash(strings.TrimSpace(p))
		if p == "" {
			continue
		}
		w.rules = append(w.rules, ignoreRule{
			pattern:  p,
			glob:     strings.ContainsAny(p, "*?["),
			segments: segments(p),
		})
	}
	return w
}

// OnChange sets the callback for changes. It runs on the watcher goroutine.
func (w *Watcher) OnChange(fn func(Change)) {
	w.mu.Lock()
	w.onChange = fn
	w.mu.Unlock()
}

// Start scans until ctx is done or Stop is called. It returns ctx.Err() when
// ctx ends the watch and nil after Stop. Calling Start on a running watcher
// is a no-op.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.cancel != nil {
		w.mu.Unlock()
		return nil
	}
	runCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel
	w.mu.Unlock()

	defer w.Stop()

	w.seen = w.snapshot()
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-runCtx.Done():
			return ctx.Err()
		case <-ticker.C:
			w.poll()
		}
	}
}

// Stop ends a running Start.
func (w *Watcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.cancel != nil {
		w.cancel()
		w.cancel = nil
	}
}

// IsRunning reports whether Start is active.
func (w *Watcher) IsRunning() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.cancel != nil
}

// snapshot maps every watched, non-ignored file to its modification time.
func (w *Watcher) snapshot() map[string]time.Time {
	files := make(map[string]time.Time)
	for _, root := range w.paths {
		_ = filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
			switch {
			case err != nil:
				return nil
			case w.ignores(p):
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			case d.IsDir():
				return nil
			}
			if info, err := d.Info(); err == nil {
				files[p] = info.ModTime()
			}
			return nil
		})
	}
	return files
}

// poll diffs a fresh snapshot against the previous one and reports at most
// one change per ChangeType, in path order.
func (w *Watcher) poll() {
	next := w.snapshot()
	prev := w.seen
	w.seen = next

	var changed []string
	for p, mod := range next {
		if old, ok := prev[p]; !ok || mod.After(old) {
			changed = append(changed, p)
		}
	}
	for p := range prev {
		if _, ok := next[p]; !ok {
			changed = append(changed, p)
		}
	}
	if len(changed) == 0 {
		return
	}

	w.mu.Lock()
	fn := w.onChange
	w.mu.Unlock()
	if fn == nil {
		return
	}

	sort.Strings(changed)
	reported := make(map[ChangeType]bool)
	for _, p := range changed {
		t := classifyChange(p)
		if !reported[t] {
			reported[t] = true
			fn(Change{Path: p, Type: t})
		}
	}
}

// ignores reports whether p matches any ignore rule.
func (w *Watcher) ignores(p string) bool {
	slashed := filepath.ToSlash(p)
	base := path.Base(slashed)
	parts := segments(slashed)
	for _, r := range w.rules {
		if r.match(slashed, base, parts) {
			return true
		}
	}
	return false
}

// classifyChange maps a file name to the work it triggers.
func classifyChange(p string) ChangeType {
	if filepath.Base(p) == config.ConfigFileName {
		return ChangeConfig
	}
	switch strings.ToLower(filepath.Ext(p)) {
	case ".md", ".mdx":
		return ChangeContent
	case ".css":
		return ChangeCSS
	default:
		return ChangeStatic
	}
}

package explore

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/handiism/lastfm-graph/internal/config"
	"github.com/handiism/lastfm-graph/internal/lastfm"
	"github.com/handiism/lastfm-graph/internal/model"
	"golang.org/x/sync/errgroup"
)

// ErrNoTags is returned by Initialize when the input names no tag.
var ErrNoTags = errors.New("explore: no tag names in input")

// ProgressLevel indicates the severity/type of a progress message.
type ProgressLevel int

const (
	LevelInfo ProgressLevel = iota
	LevelVerbose
	LevelWarning
	LevelError
	LevelSuccess
)

// ProgressEvent represents an exploration progress update.
type ProgressEvent struct {
	Message string
	Level   ProgressLevel
}

// Summary is what Expand learned about one tag.
type Summary struct {
	Tag *model.Tag

	// Depth is 0 for tags named in the input, 1 for their similar tags and
	// so on.
	Depth int

	Similar    []*model.Tag
	TopAlbums  []*model.Album
	TopArtists []*model.Artist
	TopTracks  []*model.Track

	// Errors holds the failure of each relationship that could not be
	// fetched.
	Errors map[model.Relation]error
}

// Name returns the tag name.
func (s *Summary) Name() string {
	name, _ := s.Tag.Name()
	return name
}

// Manager coordinates a breadth-first walk of the tag graph.
type Manager struct {
	fetcher  lastfm.Fetcher
	settings *config.Settings

	pending   []*model.Tag
	seen      map[string]bool
	summaries []*Summary

	fetches  atomic.Int32
	failures atomic.Int32

	onProgress func(ProgressEvent)
	mu         sync.Mutex
}

// NewManager creates a new explore Manager.
//
// The settings supply MaxConcurrentFetches, ExploreDepth and
// MaxSimilarPerTag; onProgress may be nil.
func NewManager(f lastfm.Fetcher, settings *config.Settings, onProgress func(ProgressEvent)) (*Manager, error) {
	if err := lastfm.CheckFetcher(f); err != nil {
		return nil, err
	}
	if settings == nil {
		settings = config.DefaultSettings()
	}
	return &Manager{
		fetcher:    f,
		settings:   settings,
		seen:       make(map[string]bool),
		onProgress: onProgress,
	}, nil
}

// Initialize queues the tags named in input. Names are separated by commas
// or newlines; blanks and repeats are skipped.
func (m *Manager) Initialize(ctx context.Context, input string) error {
	names := parseInput(input)
	if len(names) == 0 {
		return ErrNoTags
	}

	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return err
		}
		tag, err := model.NewTag(m.fetcher, model.TagAttrs{Name: lastfm.String(name)})
		if err != nil {
			return err
		}
		if m.markSeen(tag) {
			m.pending = append(m.pending, tag)
			m.progress(ProgressEvent{Message: fmt.Sprintf("Queued tag: %s", name), Level: LevelVerbose})
		}
	}
	return nil
}

// Expand resolves the relationships of every queued tag, then follows
// similar tags breadth-first until ExploreDepth levels have been explored.
//
// Relationship failures are reported through progress events and recorded
// in the summaries; only cancellation makes Expand fail.
func (m *Manager) Expand(ctx context.Context) error {
	level := m.pending
	m.pending = nil

	for depth := 0; len(level) > 0; depth++ {
		summaries, err := m.exploreLevel(ctx, level, depth)
		if err != nil {
			return err
		}
		m.summaries = append(m.summaries, summaries...)

		if depth >= m.settings.ExploreDepth {
			break
		}
		level = m.nextLevel(summaries)
	}

	m.progress(ProgressEvent{
		Message: fmt.Sprintf("Explored %d tags (%d requests, %d failed)", len(m.summaries), m.fetches.Load(), m.failures.Load()),
		Level:   LevelSuccess,
	})
	return nil
}

// Summaries returns the explored tags in breadth-first order.
func (m *Manager) Summaries() []*Summary {
	out := make([]*Summary, len(m.summaries))
	copy(out, m.summaries)
	return out
}

// GetProgress returns the number of relationship fetches finished and
// failed so far. It is safe to call while Expand runs.
func (m *Manager) GetProgress() (fetches, failures int32) {
	return m.fetches.Load(), m.failures.Load()
}

// GetTagNames returns the names of all explored tags.
func (m *Manager) GetTagNames() []string {
	names := make([]string, len(m.summaries))
	for i, s := range m.summaries {
		names[i] = s.Name()
	}
	return names
}

func (m *Manager) exploreLevel(ctx context.Context, level []*model.Tag, depth int) ([]*Summary, error) {
	summaries := make([]*Summary, len(level))
	for i, tag := range level {
		summaries[i] = &Summary{Tag: tag, Depth: depth, Errors: make(map[model.Relation]error)}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(m.settings.MaxConcurrentFetches, 1))

	for _, s := range summaries {
		g.Go(func() error {
			return m.fetch(gctx, s, model.RelSimilar, func(ctx context.Context) (int, error) {
				var err error
				s.Similar, err = s.Tag.Similar(ctx)
				return len(s.Similar), err
			})
		})
		g.Go(func() error {
			return m.fetch(gctx, s, model.RelTopAlbums, func(ctx context.Context) (int, error) {
				var err error
				s.TopAlbums, err = s.Tag.TopAlbums(ctx)
				return len(s.TopAlbums), err
			})
		})
		g.Go(func() error {
			return m.fetch(gctx, s, model.RelTopArtists, func(ctx context.Context) (int, error) {
				var err error
				s.TopArtists, err = s.Tag.TopArtists(ctx)
				return len(s.TopArtists), err
			})
		})
		g.Go(func() error {
			return m.fetch(gctx, s, model.RelTopTracks, func(ctx context.Context) (int, error) {
				var err error
				s.TopTracks, err = s.Tag.TopTracks(ctx)
				return len(s.TopTracks), err
			})
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	for _, s := range summaries {
		m.progress(ProgressEvent{
			Message: fmt.Sprintf("Explored %s: %d similar, %d albums, %d artists, %d tracks",
				s.Name(), len(s.Similar), len(s.TopAlbums), len(s.TopArtists), len(s.TopTracks)),
			Level: LevelInfo,
		})
	}
	return summaries, nil
}

// fetch runs one relationship resolution. Only cancellation is returned as
// an error, so one failed relationship does not stop the others.
func (m *Manager) fetch(ctx context.Context, s *Summary, rel model.Relation, resolve func(context.Context) (int, error)) error {
	m.progress(ProgressEvent{Message: fmt.Sprintf("Fetching %s of %s", rel, s.Name()), Level: LevelVerbose})

	n, err := resolve(ctx)
	if err == nil {
		m.fetches.Add(1)
		m.progress(ProgressEvent{Message: fmt.Sprintf("Got %d %s of %s", n, rel, s.Name()), Level: LevelVerbose})
		return nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}

	m.fetches.Add(1)
	m.failures.Add(1)
	m.mu.Lock()
	s.Errors[rel] = err
	m.mu.Unlock()
	m.progress(ProgressEvent{Message: fmt.Sprintf("Error fetching %s of %s: %v", rel, s.Name(), err), Level: LevelError})
	return nil
}

// nextLevel collects unseen similar tags, at most MaxSimilarPerTag from
// each summary.
func (m *Manager) nextLevel(summaries []*Summary) []*model.Tag {
	var next []*model.Tag
	for _, s := range summaries {
		taken := 0
		for _, tag := range s.Similar {
			if limit := m.settings.MaxSimilarPerTag; limit > 0 && taken == limit {
				break
			}
			if m.markSeen(tag) {
				next = append(next, tag)
				taken++
			}
		}
	}
	return next
}

// markSeen records tag's identity and reports whether it was new. Tags
// without identity are never followed.
func (m *Manager) markSeen(tag *model.Tag) bool {
	key, err := tag.Key()
	if err != nil {
		return false
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.seen[key] {
		return false
	}
	m.seen[key] = true
	return true
}

func parseInput(input string) []string {
	fields := strings.FieldsFunc(input, func(r rune) bool {
		return r == ',' || r == '\n' || r == '\r'
	})
	var names []string
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			names = append(names, f)
		}
	}
	return names
}

func (m *Manager) progress(event ProgressEvent) {
	if m.onProgress != nil {
		m.onProgress(event)
	}
}

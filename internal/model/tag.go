package model

import (
	"context"
	"fmt"

	"github.com/handiism/lastfm-graph/internal/lastfm"
)

var (
	tagSimilar    = request{method: "tag.getsimilar", wrapper: "similartags", child: "tag"}
	tagTopAlbums  = request{method: "tag.gettopalbums", wrapper: "topalbums", child: "album"}
	tagTopArtists = request{method: "tag.gettopartists", wrapper: "topartists", child: "artist"}
	tagTopTracks  = request{method: "tag.gettoptracks", wrapper: "toptracks", child: "track"}
)

// TagAttrs holds the optional attributes of a Tag. Name is the identity.
type TagAttrs struct {
	// Name is the tag name, e.g. "rock".
	Name *string

	// URL is the tag's page on last.fm.
	URL *string

	// Streamable reports whether the tag radio can be streamed.
	Streamable *bool

	// Count is how often the tag was applied. Only set for tags that come
	// from a top-tags list of an artist, album or track.
	Count *int
}

func (a TagAttrs) clone() TagAttrs {
	return TagAttrs{
		Name:       clonePtr(a.Name),
		URL:        clonePtr(a.URL),
		Streamable: clonePtr(a.Streamable),
		Count:      clonePtr(a.Count),
	}
}

// Tag is a Last.fm tag with lazily fetched similar tags and top charts.
//
// Tag is safe for concurrent use. Each relationship is fetched at most once
// per Tag; a failed fetch is retried on the next access.
type Tag struct {
	fetcher lastfm.Fetcher
	attrs   TagAttrs

	similar    lastfm.Lazy[[]*Tag]
	topAlbums  lastfm.Lazy[[]*Album]
	topArtists lastfm.Lazy[[]*Artist]
	topTracks  lastfm.Lazy[[]*Track]
}

// NewTag creates a Tag. It performs no I/O and fails only with
// lastfm.ErrInvalidReference when f is unusable.
func NewTag(f lastfm.Fetcher, attrs TagAttrs) (*Tag, error) {
	if err := lastfm.CheckFetcher(f); err != nil {
		return nil, err
	}
	return &Tag{fetcher: f, attrs: attrs.clone()}, nil
}

// Name returns the tag name.
func (t *Tag) Name() (string, bool) { return lastfm.Value(t.attrs.Name) }

// URL returns the tag's last.fm page.
func (t *Tag) URL() (string, bool) { return lastfm.Value(t.attrs.URL) }

// Streamable reports whether the tag radio is streamable.
func (t *Tag) Streamable() (bool, bool) { return lastfm.Value(t.attrs.Streamable) }

// Count returns how often the tag was applied, when known.
func (t *Tag) Count() (int, bool) { return lastfm.Value(t.attrs.Count) }

// Key returns the tag name, or lastfm.ErrMissingIdentity.
func (t *Tag) Key() (string, error) {
	if t == nil {
		return "", lastfm.ErrMissingIdentity
	}
	return requireName(t.attrs.Name)
}

// Hash returns the identity hash of the tag.
func (t *Tag) Hash() (uint64, error) { return lastfm.Hash(t) }

// Equal reports whether both tags have the same name.
func (t *Tag) Equal(other *Tag) (bool, error) { return lastfm.Equal(t, other) }

// Compare orders tags by name.
func (t *Tag) Compare(other *Tag) (int, error) { return lastfm.Compare(t, other) }

func (t *Tag) String() string {
	return fmt.Sprintf("<lastfm.Tag: %s>", display(t.attrs.Name))
}

// Resolved reports whether relationship r has been fetched.
func (t *Tag) Resolved(r Relation) bool {
	switch r {
	case RelSimilar:
		return t.similar.Resolved()
	case RelTopAlbums:
		return t.topAlbums.Resolved()
	case RelTopArtists:
		return t.topArtists.Resolved()
	case RelTopTracks:
		return t.topTracks.Resolved()
	}
	return false
}

func (t *Tag) params() (lastfm.Params, error) {
	name, err := t.Key()
	if err != nil {
		return nil, err
	}
	return lastfm.Params{"tag": name}, nil
}

// Similar returns tags similar to this one (tag.getsimilar).
func (t *Tag) Similar(ctx context.Context) ([]*Tag, error) {
	return t.similar.Get(ctx, func(ctx context.Context) ([]*Tag, error) {
		params, err := t.params()
		if err != nil {
			return nil, err
		}
		return resolveList(ctx, t.fetcher, tagSimilar, params, parseTag)
	})
}

// TopAlbums returns the top albums for the tag (tag.gettopalbums).
func (t *Tag) TopAlbums(ctx context.Context) ([]*Album, error) {
	return t.topAlbums.Get(ctx, func(ctx context.Context) ([]*Album, error) {
		params, err := t.params()
		if err != nil {
			return nil, err
		}
		return resolveList(ctx, t.fetcher, tagTopAlbums, params, parseAlbum)
	})
}

// TopAlbum returns the first of TopAlbums, or nil when there are none.
func (t *Tag) TopAlbum(ctx context.Context) (*Album, error) {
	albums, err := t.TopAlbums(ctx)
	return first(albums, err)
}

// TopArtists returns the top artists for the tag (tag.gettopartists).
func (t *Tag) TopArtists(ctx context.Context) ([]*Artist, error) {
	return t.topArtists.Get(ctx, func(ctx context.Context) ([]*Artist, error) {
		params, err := t.params()
		if err != nil {
			return nil, err
		}
		return resolveList(ctx, t.fetcher, tagTopArtists, params, parseRankedArtist)
	})
}

// TopArtist returns the first of TopArtists, or nil when there are none.
func (t *Tag) TopArtist(ctx context.Context) (*Artist, error) {
	artists, err := t.TopArtists(ctx)
	return first(artists, err)
}

// TopTracks returns the top tracks for the tag (tag.gettoptracks).
func (t *Tag) TopTracks(ctx context.Context) ([]*Track, error) {
	return t.topTracks.Get(ctx, func(ctx context.Context) ([]*Track, error) {
		params, err := t.params()
		if err != nil {
			return nil, err
		}
		return resolveList(ctx, t.fetcher, tagTopTracks, params, parseTrack)
	})
}

// TopTrack returns the first of TopTracks, or nil when there are none.
func (t *Tag) TopTrack(ctx context.Context) (*Track, error) {
	tracks, err := t.TopTracks(ctx)
	return first(tracks, err)
}

// parseTag builds a Tag from a tag element.
func parseTag(f lastfm.Fetcher, n lastfm.Node) (*Tag, error) {
	return NewTag(f, TagAttrs{
		Name:       text(n, "name"),
		URL:        text(n, "url"),
		Streamable: flag(n, "streamable"),
		Count:      number(n.FindChildText("count")),
	})
}

package model

import (
	"context"
	"fmt"

	"github.com/handiism/lastfm-graph/internal/lastfm"
)

var (
	artistSimilar = request{method: "artist.getsimilar", wrapper: "similarartists", child: "artist"}
	artistTopTags = request{method: "artist.gettoptags", wrapper: "toptags", child: "tag"}
)

// ArtistAttrs holds the optional attributes of an Artist. Name is the
// identity.
type ArtistAttrs struct {
	Name       *string
	MBID       *string
	URL        *string
	Streamable *bool

	// Images maps a size label ("small", "large", ...) to an image URL.
	Images map[string]string

	// Stats is set for artists taken from a ranked chart.
	Stats *Stats

	// Match is the similarity score, set for artists from a similar list.
	Match *float64
}

func (a ArtistAttrs) clone() ArtistAttrs {
	return ArtistAttrs{
		Name:       clonePtr(a.Name),
		MBID:       clonePtr(a.MBID),
		URL:        clonePtr(a.URL),
		Streamable: clonePtr(a.Streamable),
		Images:     cloneImages(a.Images),
		Stats:      a.Stats.clone(),
		Match:      clonePtr(a.Match),
	}
}

// Artist is a Last.fm artist with lazily fetched similar artists and top
// tags.
type Artist struct {
	fetcher lastfm.Fetcher
	attrs   ArtistAttrs

	similar lastfm.Lazy[[]*Artist]
	topTags lastfm.Lazy[[]*Tag]
}

// NewArtist creates an Artist without performing any I/O.
func NewArtist(f lastfm.Fetcher, attrs ArtistAttrs) (*Artist, error) {
	if err := lastfm.CheckFetcher(f); err != nil {
		return nil, err
	}
	return &Artist{fetcher: f, attrs: attrs.clone()}, nil
}

func (a *Artist) Name() (string, bool) { return lastfm.Value(a.attrs.Name) }
func (a *Artist) MBID() (string, bool) { return lastfm.Value(a.attrs.MBID) }
func (a *Artist) URL() (string, bool) { return lastfm.Value(a.attrs.URL) }
func (a *Artist) Streamable() (bool, bool) { return lastfm.Value(a.attrs.Streamable) }
func (a *Artist) Match() (float64, bool) { return lastfm.Value(a.attrs.Match) }
func (a *Artist) Images() map[string]string { return cloneImages(a.attrs.Images) }
func (a *Artist) Stats() *Stats { return a.attrs.Stats.clone() }

// Key returns the artist name, or lastfm.ErrMissingIdentity.
func (a *Artist) Key() (string, error) {
	if a == nil {
		return "", lastfm.ErrMissingIdentity
	}
	return requireName(a.attrs.Name)
}

func (a *Artist) Hash() (uint64, error) { return lastfm.Hash(a) }
func (a *Artist) Equal(o *Artist) (bool, error) { return lastfm.Equal(a, o) }
func (a *Artist) Compare(o *Artist) (int, error) { return lastfm.Compare(a, o) }

func (a *Artist) String() string {
	return fmt.Sprintf("<lastfm.Artist: %s>", display(a.attrs.Name))
}

// Resolved reports whether relationship r has been fetched.
func (a *Artist) Resolved(r Relation) bool {
	switch r {
	case RelSimilar:
		return a.similar.Resolved()
	case RelTopTags:
		return a.topTags.Resolved()
	}
	return false
}

func (a *Artist) params() (lastfm.Params, error) {
	name, err := a.Key()
	if err != nil {
		return nil, err
	}
	return lastfm.Params{"artist": name}, nil
}

// Similar returns artists similar to this one (artist.getsimilar).
func (a *Artist) Similar(ctx context.Context) ([]*Artist, error) {
	return a.similar.Get(ctx, func(ctx context.Context) ([]*Artist, error) {
		params, err := a.params()
		if err != nil {
			return nil, err
		}
		return resolveList(ctx, a.fetcher, artistSimilar, params, parseArtist)
	})
}

// TopTags returns the tags most applied to the artist (artist.gettoptags).
func (a *Artist) TopTags(ctx context.Context) ([]*Tag, error) {
	return a.topTags.Get(ctx, func(ctx context.Context) ([]*Tag, error) {
		params, err := a.params()
		if err != nil {
			return nil, err
		}
		return resolveList(ctx, a.fetcher, artistTopTags, params, parseTag)
	})
}

func readArtistAttrs(n lastfm.Node) ArtistAttrs {
	return ArtistAttrs{
		Name:       text(n, "name"),
		MBID:       text(n, "mbid"),
		URL:        text(n, "url"),
		Streamable: flag(n, "streamable"),
		Images:     parseImages(n),
		Match:      decimal(n.FindChildText("match")),
	}
}

// parseArtist builds an Artist from an artist element.
func parseArtist(f lastfm.Fetcher, n lastfm.Node) (*Artist, error) {
	return NewArtist(f, readArtistAttrs(n))
}

// parseRankedArtist builds an Artist from a chart entry, including its Stats.
func parseRankedArtist(f lastfm.Fetcher, n lastfm.Node) (*Artist, error) {
	attrs := readArtistAttrs(n)
	attrs.Stats = parseStats(n)
	return NewArtist(f, attrs)
}

// parseNestedArtist builds the Artist embedded in an album or track element.
// It returns nil when the element has no artist child.
func parseNestedArtist(f lastfm.Fetcher, n lastfm.Node) (*Artist, error) {
	child, ok := n.FindChild("artist")
	if !ok {
		return nil, nil
	}
	return NewArtist(f, ArtistAttrs{
		Name: text(child, "name"),
		MBID: text(child, "mbid"),
		URL:  text(child, "url"),
	})
}

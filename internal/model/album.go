package model

import (
	"context"
	"fmt"

	"github.com/handiism/lastfm-graph/internal/lastfm"
)

var albumTopTags = request{method: "album.gettoptags", wrapper: "toptags", child: "tag"}

// AlbumAttrs holds the optional attributes of an Album.
//
// The identity is the pair (Artist name, Name); an album without an artist
// has no identity.
type AlbumAttrs struct {
	Name *string
	MBID *string
	URL  *string

	// Artist is the album artist. It is an independent entity with its own
	// lazy relationships.
	Artist *Artist

	// Images maps a size label to an image URL, e.g.
	//
	//	{"small": "https://.../34s/....png", "extralarge": "https://.../300x300/....png"}
	Images map[string]string

	Stats *Stats
}

func (a AlbumAttrs) clone() AlbumAttrs {
	return AlbumAttrs{
		Name:   clonePtr(a.Name),
		MBID:   clonePtr(a.MBID),
		URL:    clonePtr(a.URL),
		Artist: a.Artist,
		Images: cloneImages(a.Images),
		Stats:  a.Stats.clone(),
	}
}

// Album is a Last.fm album.
type Album struct {
	fetcher lastfm.Fetcher
	attrs   AlbumAttrs

	topTags lastfm.Lazy[[]*Tag]
}

// NewAlbum creates an Album without performing any I/O.
func NewAlbum(f lastfm.Fetcher, attrs AlbumAttrs) (*Album, error) {
	if err := lastfm.CheckFetcher(f); err != nil {
		return nil, err
	}
	return &Album{fetcher: f, attrs: attrs.clone()}, nil
}

// Name returns the album title.
func (a *Album) Name() (string, bool) { return lastfm.Value(a.attrs.Name) }

// MBID returns the MusicBrainz release id.
func (a *Album) MBID() (string, bool) { return lastfm.Value(a.attrs.MBID) }

// URL returns the album's last.fm page.
func (a *Album) URL() (string, bool) { return lastfm.Value(a.attrs.URL) }

// Artist returns the album artist, or nil.
func (a *Album) Artist() *Artist { return a.attrs.Artist }

// Images returns a copy of the size label to URL mapping.
func (a *Album) Images() map[string]string { return cloneImages(a.attrs.Images) }

// HasArtwork reports whether the album carries at least one non-empty image.
func (a *Album) HasArtwork() bool {
	for _, url := range a.attrs.Images {
		if url != "" {
			return true
		}
	}
	return false
}

// Stats returns the chart statistics, or nil.
func (a *Album) Stats() *Stats { return a.attrs.Stats.clone() }

// Key returns artist name and album name joined, or
// lastfm.ErrMissingIdentity when either is absent.
func (a *Album) Key() (string, error) {
	if a == nil {
		return "", lastfm.ErrMissingIdentity
	}
	return compositeKey(a.attrs.Artist, a.attrs.Name)
}

func (a *Album) Hash() (uint64, error) { return lastfm.Hash(a) }
func (a *Album) Equal(o *Album) (bool, error) { return lastfm.Equal(a, o) }
func (a *Album) Compare(o *Album) (int, error) { return lastfm.Compare(a, o) }

func (a *Album) String() string {
	return fmt.Sprintf("<lastfm.Album: %s - %s>", artistName(a.attrs.Artist), display(a.attrs.Name))
}

// Resolved reports whether relationship r has been fetched.
func (a *Album) Resolved(r Relation) bool {
	return r == RelTopTags && a.topTags.Resolved()
}

// TopTags returns the tags most applied to the album (album.gettoptags).
func (a *Album) TopTags(ctx context.Context) ([]*Tag, error) {
	return a.topTags.Get(ctx, func(ctx context.Context) ([]*Tag, error) {
		artist, title, err := keyParts(a.attrs.Artist, a.attrs.Name)
		if err != nil {
			return nil, err
		}
		params := lastfm.Params{"artist": artist, "album": title}
		return resolveList(ctx, a.fetcher, albumTopTags, params, parseTag)
	})
}

// parseAlbum builds an Album, its nested Artist and its Stats from a chart
// entry.
func parseAlbum(f lastfm.Fetcher, n lastfm.Node) (*Album, error) {
	artist, err := parseNestedArtist(f, n)
	if err != nil {
		return nil, err
	}
	return NewAlbum(f, AlbumAttrs{
		Name:   text(n, "name"),
		MBID:   text(n, "mbid"),
		URL:    text(n, "url"),
		Artist: artist,
		Images: parseImages(n),
		Stats:  parseStats(n),
	})
}

// keyParts returns the artist and title identity of an album or track.
func keyParts(artist *Artist, title *string) (string, string, error) {
	if artist == nil {
		return "", "", lastfm.ErrMissingIdentity
	}
	artistName, err := artist.Key()
	if err != nil {
		return "", "", err
	}
	name, err := requireName(title)
	if err != nil {
		return "", "", err
	}
	return artistName, name, nil
}

func compositeKey(artist *Artist, title *string) (string, error) {
	a, t, err := keyParts(artist, title)
	if err != nil {
		return "", err
	}
	return lastfm.JoinKey(a, t), nil
}

func artistName(a *Artist) string {
	if a == nil {
		return "<nil>"
	}
	return display(a.attrs.Name)
}

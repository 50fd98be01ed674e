package model

import (
	"context"
	"fmt"

	"github.com/handiism/lastfm-graph/internal/lastfm"
)

var trackTopTags = request{method: "track.gettoptags", wrapper: "toptags", child: "tag"}

// TrackAttrs holds the optional attributes of a Track. The identity is the
// pair (Artist name, Name).
type TrackAttrs struct {
	Name   *string
	MBID   *string
	URL    *string
	Artist *Artist

	// Streamable reports whether a preview can be streamed; FullTrack
	// whether the whole track can.
	Streamable *bool
	FullTrack  *bool

	Images map[string]string
	Stats  *Stats
}

func (a TrackAttrs) clone() TrackAttrs {
	return TrackAttrs{
		Name:       clonePtr(a.Name),
		MBID:       clonePtr(a.MBID),
		URL:        clonePtr(a.URL),
		Artist:     a.Artist,
		Streamable: clonePtr(a.Streamable),
		FullTrack:  clonePtr(a.FullTrack),
		Images:     cloneImages(a.Images),
		Stats:      a.Stats.clone(),
	}
}

// Track is a Last.fm track.
type Track struct {
	fetcher lastfm.Fetcher
	attrs   TrackAttrs

	topTags lastfm.Lazy[[]*Tag]
}

// NewTrack creates a Track without performing any I/O.
//
// A thin track built from just an artist and a title is enough to resolve
// its top tags:
//
//	artist, _ := model.NewArtist(f, model.ArtistAttrs{Name: lastfm.String("Cher")})
//	track, _ := model.NewTrack(f, model.TrackAttrs{Name: lastfm.String("Believe"), Artist: artist})
//	tags, err := track.TopTags(ctx)
func NewTrack(f lastfm.Fetcher, attrs TrackAttrs) (*Track, error) {
	if err := lastfm.CheckFetcher(f); err != nil {
		return nil, err
	}
	return &Track{fetcher: f, attrs: attrs.clone()}, nil
}

func (t *Track) Name() (string, bool) { return lastfm.Value(t.attrs.Name) }
func (t *Track) MBID() (string, bool) { return lastfm.Value(t.attrs.MBID) }
func (t *Track) URL() (string, bool) { return lastfm.Value(t.attrs.URL) }
func (t *Track) Artist() *Artist { return t.attrs.Artist }
func (t *Track) Streamable() (bool, bool) { return lastfm.Value(t.attrs.Streamable) }
func (t *Track) FullTrack() (bool, bool) { return lastfm.Value(t.attrs.FullTrack) }
func (t *Track) Images() map[string]string { return cloneImages(t.attrs.Images) }
func (t *Track) Stats() *Stats { return t.attrs.Stats.clone() }

// Key returns artist name and track name joined, or
// lastfm.ErrMissingIdentity.
func (t *Track) Key() (string, error) {
	if t == nil {
		return "", lastfm.ErrMissingIdentity
	}
	return compositeKey(t.attrs.Artist, t.attrs.Name)
}

func (t *Track) Hash() (uint64, error) { return lastfm.Hash(t) }
func (t *Track) Equal(o *Track) (bool, error) { return lastfm.Equal(t, o) }
func (t *Track) Compare(o *Track) (int, error) { return lastfm.Compare(t, o) }

func (t *Track) String() string {
	return fmt.Sprintf("<lastfm.Track: %s - %s>", artistName(t.attrs.Artist), display(t.attrs.Name))
}

// Resolved reports whether relationship r has been fetched.
func (t *Track) Resolved(r Relation) bool {
	return r == RelTopTags && t.topTags.Resolved()
}

// TopTags returns the tags most applied to the track (track.gettoptags).
func (t *Track) TopTags(ctx context.Context) ([]*Tag, error) {
	return t.topTags.Get(ctx, func(ctx context.Context) ([]*Tag, error) {
		artist, title, err := keyParts(t.attrs.Artist, t.attrs.Name)
		if err != nil {
			return nil, err
		}
		params := lastfm.Params{"artist": artist, "track": title}
		return resolveList(ctx, t.fetcher, trackTopTags, params, parseTag)
	})
}

// parseTrack builds a Track, its nested Artist and its Stats from a chart
// entry. FullTrack comes from the fulltrack attribute of streamable.
func parseTrack(f lastfm.Fetcher, n lastfm.Node) (*Track, error) {
	artist, err := parseNestedArtist(f, n)
	if err != nil {
		return nil, err
	}

	var fullTrack *bool
	if s, ok := n.FindChild("streamable"); ok {
		if v, ok := s.Attr("fulltrack"); ok {
			fullTrack = lastfm.Bool(v == "1")
		}
	}

	return NewTrack(f, TrackAttrs{
		Name:       text(n, "name"),
		MBID:       text(n, "mbid"),
		URL:        text(n, "url"),
		Artist:     artist,
		Streamable: flag(n, "streamable"),
		FullTrack:  fullTrack,
		Images:     parseImages(n),
		Stats:      parseStats(n),
	})
}

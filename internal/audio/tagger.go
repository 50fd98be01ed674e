package audio

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bogem/id3v2"
	"github.com/handiism/lastfm-graph/internal/lastfm"
	"github.com/handiism/lastfm-graph/internal/model"
)

// ErrNoTrackInfo is returned by ReadTrack when a file has neither an artist
// nor a title frame.
var ErrNoTrackInfo = errors.New("audio: file has no artist or title tag")

// TagEditAction defines how to handle an ID3 frame.
type TagEditAction int

const (
	// TagEmpty clears the frame.
	TagEmpty TagEditAction = iota

	// TagModify updates the frame with the value from Last.fm.
	TagModify

	// TagDoNotModify leaves the existing frame unchanged.
	TagDoNotModify
)

// TagConfig holds tagging configuration.
//
// Example:
//
//	cfg := &TagConfig{
//	    Genre:     TagModify, // Write Last.fm tags as genres
//	    Separator: "; ",
//	}
type TagConfig struct {
	// Genre controls the TCON (Content type) frame.
	Genre TagEditAction

	// Separator joins several genres into one TCON value.
	Separator string
}

// DefaultTagConfig returns the default tag configuration.
func DefaultTagConfig() *TagConfig {
	return &TagConfig{
		Genre:     TagModify,
		Separator: "; ",
	}
}

// Tagger reads and writes ID3 tags of MP3 files.
//
// Example:
//
//	tagger := NewTagger(DefaultTagConfig())
//
//	err := tagger.SaveGenres("song.mp3", tags, 3)
//	if err != nil {
//	    slog.Warn("failed to tag", "path", "song.mp3", "error", err)
//	}
type Tagger struct {
	config *TagConfig
}

// NewTagger creates a new Tagger with the given configuration.
//
// If config is nil, DefaultTagConfig() is used.
func NewTagger(config *TagConfig) *Tagger {
	if config == nil {
		config = DefaultTagConfig()
	}
	return &Tagger{config: config}
}

// ReadTrack builds a Track from the artist (TPE1) and title (TIT2) frames of
// an MP3 file. The track is bound to f, so its relationships can be fetched.
func (t *Tagger) ReadTrack(f lastfm.Fetcher, path string) (*model.Track, error) {
	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer tag.Close()

	artistName := strings.TrimSpace(tag.Artist())
	title := strings.TrimSpace(tag.Title())
	if artistName == "" && title == "" {
		return nil, fmt.Errorf("%s: %w", path, ErrNoTrackInfo)
	}

	attrs := model.TrackAttrs{}
	if title != "" {
		attrs.Name = lastfm.String(title)
	}
	if artistName != "" {
		artist, err := model.NewArtist(f, model.ArtistAttrs{Name: lastfm.String(artistName)})
		if err != nil {
			return nil, err
		}
		attrs.Artist = artist
	}
	return model.NewTrack(f, attrs)
}

// SaveGenres writes the names of up to max tags as the genre of an MP3 file.
// A max of zero or less writes every tag. Tags without a name are skipped.
//
// Example:
//
//	tags, _ := track.TopTags(ctx)
//	err := tagger.SaveGenres("song.mp3", tags, 3) // "rock; grunge; 90s"
func (t *Tagger) SaveGenres(path string, genres []*model.Tag, max int) error {
	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer tag.Close()

	switch t.config.Genre {
	case TagEmpty:
		tag.SetGenre("")
	case TagModify:
		tag.SetGenre(strings.Join(genreNames(genres, max), t.config.Separator))
	case TagDoNotModify:
		return nil
	}

	return tag.Save()
}

// SaveArtwork embeds JPEG cover art, replacing existing pictures.
func (t *Tagger) SaveArtwork(path string, artwork []byte) error {
	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer tag.Close()

	tag.DeleteFrames(tag.CommonID("Attached picture"))
	tag.AddAttachedPicture(id3v2.PictureFrame{
		Encoding:    id3v2.EncodingUTF8,
		MimeType:    "image/jpeg",
		PictureType: id3v2.PTFrontCover,
		Description: "Cover",
		Picture:     artwork,
	})

	return tag.Save()
}

func genreNames(genres []*model.Tag, max int) []string {
	names := make([]string, 0, len(genres))
	for _, g := range genres {
		if max > 0 && len(names) == max {
			break
		}
		if g == nil {
			continue
		}
		if name, ok := g.Name(); ok && strings.TrimSpace(name) != "" {
			names = append(names, strings.TrimSpace(name))
		}
	}
	return names
}

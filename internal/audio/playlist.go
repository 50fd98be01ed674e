package audio

import (
	"fmt"
	"strings"

	"github.com/handiism/lastfm-graph/internal/model"
)

// PlaylistFormat represents supported playlist file formats.
//
//   - M3U: Simple text format, widely supported
//   - PLS: INI-style format, used by Winamp
type PlaylistFormat int

const (
	// FormatM3U creates .m3u files (most compatible).
	// Can be extended with EXTINF lines for title info.
	FormatM3U PlaylistFormat = iota

	// FormatPLS creates .pls files (Winamp/SHOUTcast format).
	FormatPLS
)

// ParsePlaylistFormat maps a format name ("m3u", "pls") to a PlaylistFormat.
// Unknown names fall back to FormatM3U.
func ParsePlaylistFormat(name string) PlaylistFormat {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "pls":
		return FormatPLS
	default:
		return FormatM3U
	}
}

// Extension returns the file extension for the format, with the dot.
func (f PlaylistFormat) Extension() string {
	if f == FormatPLS {
		return ".pls"
	}
	return ".m3u"
}

// PlaylistCreator generates playlist files from Last.fm tracks.
//
// Example:
//
//	// Create M3U playlist with extended info
//	creator := NewPlaylistCreator(FormatM3U, true)
//	content := creator.CreatePlaylist(tracks)
//
//	// Result:
//	// #EXTM3U
//	// #EXTINF:-1,Nirvana - Smells Like Teen Spirit
//	// https://www.last.fm/music/Nirvana/_/Smells+Like+Teen+Spirit
type PlaylistCreator struct {
	format   PlaylistFormat
	extended bool // For M3U: include EXTINF lines
}

// NewPlaylistCreator creates a new PlaylistCreator.
//
// extended is ignored for formats other than M3U.
func NewPlaylistCreator(format PlaylistFormat, extended bool) *PlaylistCreator {
	return &PlaylistCreator{
		format:   format,
		extended: extended,
	}
}

// CreatePlaylist generates playlist content for tracks.
//
// Tracks without a URL are skipped. Last.fm does not report durations in
// tag charts, so lengths are written as -1 (unknown).
func (p *PlaylistCreator) CreatePlaylist(tracks []*model.Track) string {
	entries := playlistEntries(tracks)
	switch p.format {
	case FormatPLS:
		return p.createPLS(entries)
	default:
		return p.createM3U(entries)
	}
}

type playlistEntry struct {
	location string
	title    string
}

func playlistEntries(tracks []*model.Track) []playlistEntry {
	entries := make([]playlistEntry, 0, len(tracks))
	for _, track := range tracks {
		if track == nil {
			continue
		}
		location, ok := track.URL()
		if !ok || location == "" {
			continue
		}
		entries = append(entries, playlistEntry{location: location, title: trackTitle(track)})
	}
	return entries
}

// trackTitle formats "Artist - Title", omitting whatever is unknown.
func trackTitle(track *model.Track) string {
	title, _ := track.Name()
	var artist string
	if a := track.Artist(); a != nil {
		artist, _ = a.Name()
	}
	switch {
	case artist == "":
		return title
	case title == "":
		return artist
	default:
		return artist + " - " + title
	}
}

// createM3U generates an M3U playlist.
//
// Extended M3U format (when extended=true):
//
//	#EXTM3U
//	#EXTINF:-1,Artist - Title
//	https://www.last.fm/music/...
func (p *PlaylistCreator) createM3U(entries []playlistEntry) string {
	var sb strings.Builder

	if p.extended {
		sb.WriteString("#EXTM3U\n")
	}

	for _, e := range entries {
		if p.extended {
			fmt.Fprintf(&sb, "#EXTINF:-1,%s\n", e.title)
		}
		sb.WriteString(e.location + "\n")
	}

	return sb.String()
}

// createPLS generates a PLS playlist.
//
//	[playlist]
//	File1=https://www.last.fm/music/...
//	Title1=Artist - Title
//	Length1=-1
//	NumberOfEntries=1
//	Version=2
func (p *PlaylistCreator) createPLS(entries []playlistEntry) string {
	var sb strings.Builder

	sb.WriteString("[playlist]\n")

	for i, e := range entries {
		idx := i + 1
		fmt.Fprintf(&sb, "File%d=%s\n", idx, e.location)
		fmt.Fprintf(&sb, "Title%d=%s\n", idx, e.title)
		fmt.Fprintf(&sb, "Length%d=-1\n", idx)
	}

	fmt.Fprintf(&sb, "NumberOfEntries=%d\n", len(entries))
	sb.WriteString("Version=2\n")

	return sb.String()
}

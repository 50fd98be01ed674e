package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/handiism/lastfm-graph/internal/audio"
	"github.com/handiism/lastfm-graph/internal/config"
	"github.com/handiism/lastfm-graph/internal/explore"
	"github.com/handiism/lastfm-graph/internal/http"
	ioutils "github.com/handiism/lastfm-graph/internal/io"
	"github.com/handiism/lastfm-graph/internal/model"
)

type app struct {
	settings *config.Settings
	client   *http.Client
	session  *http.Session
}

func printSummary(s *explore.Summary) {
	indent := strings.Repeat("  ", s.Depth)
	fmt.Printf("%s%s: %d similar, %d artists, %d albums, %d tracks\n",
		indent, s.Name(), len(s.Similar), len(s.TopArtists), len(s.TopAlbums), len(s.TopTracks))

	if len(s.TopArtists) > 0 {
		name, _ := s.TopArtists[0].Name()
		fmt.Printf("%s  top artist: %s\n", indent, name)
	}
	if len(s.TopAlbums) > 0 {
		fmt.Printf("%s  top album:  %s\n", indent, albumTitle(s.TopAlbums[0]))
	}
	if len(s.TopTracks) > 0 {
		name, _ := s.TopTracks[0].Name()
		fmt.Printf("%s  top track:  %s\n", indent, name)
	}
	for rel, err := range s.Errors {
		fmt.Printf("%s  %s failed: %v\n", indent, rel, err)
	}
}

func albumTitle(a *model.Album) string {
	name, _ := a.Name()
	if artist := a.Artist(); artist != nil {
		if artistName, ok := artist.Name(); ok {
			return artistName + " - " + name
		}
	}
	return name
}

func (a *app) writePlaylist(ctx context.Context, s *explore.Summary, target string) error {
	format := a.settings.ToPlaylistFormat()
	content := audio.NewPlaylistCreator(format, a.settings.M3UExtended).CreatePlaylist(s.TopTracks)

	path := ioutils.OutputPath(target, s.Name(), format.Extension())
	if err := ioutils.WriteFile(ctx, path, []byte(content)); err != nil {
		return err
	}
	fmt.Printf("✓ Playlist written to %s\n", path)
	return nil
}

// coverArt is a saved album cover, kept for embedding into a retagged file.
type coverArt struct {
	data []byte
	ext  string
}

// coverCandidates returns the albums to take a cover from: the explored
// tag's top albums, or those of the retagged track's first tag.
func coverCandidates(ctx context.Context, root *explore.Summary, genres []*model.Tag) ([]*model.Album, error) {
	if root != nil {
		return root.TopAlbums, nil
	}
	if len(genres) == 0 {
		return nil, errors.New("no tag to take a cover from")
	}
	return genres[0].TopAlbums(ctx)
}

func (a *app) saveCover(ctx context.Context, albums []*model.Album, target string) (*coverArt, error) {
	var album *model.Album
	for _, candidate := range albums {
		if candidate.HasArtwork() {
			album = candidate
			break
		}
	}
	if album == nil {
		return nil, errors.New("no top album has artwork")
	}

	url, _ := ioutils.PickImage(album.Images(), a.settings.CoverArtSize)
	artwork, err := a.client.DownloadBytes(ctx, url)
	if err != nil {
		return nil, err
	}

	size := a.settings.CoverArtMaxSize
	artwork, ext, err := ioutils.NewImageService().PrepareCover(ctx, artwork, size, a.settings.ConvertCoverArtToJPG)
	if err != nil {
		return nil, err
	}

	path := ioutils.OutputPath(target, albumTitle(album), ext)
	if err := ioutils.WriteFile(ctx, path, artwork); err != nil {
		return nil, err
	}
	fmt.Printf("✓ Cover of %s saved to %s\n", albumTitle(album), path)
	return &coverArt{data: artwork, ext: ext}, nil
}

func (a *app) trackTags(ctx context.Context, path string) ([]*model.Tag, error) {
	track, err := audio.NewTagger(audio.DefaultTagConfig()).ReadTrack(a.session, path)
	if err != nil {
		return nil, err
	}
	return track.TopTags(ctx)
}

// retag writes genres into the file and, when a cover was saved, embeds it
// as the front cover. ID3 pictures are always stored as JPEG.
func (a *app) retag(ctx context.Context, path string, genres []*model.Tag, cover *coverArt) error {
	tagger := audio.NewTagger(audio.DefaultTagConfig())
	if err := tagger.SaveGenres(path, genres, a.settings.MaxGenres); err != nil {
		return err
	}

	limit := len(genres)
	if m := a.settings.MaxGenres; m > 0 && m < limit {
		limit = m
	}
	names := make([]string, 0, limit)
	for _, t := range genres[:limit] {
		name, _ := t.Name()
		names = append(names, name)
	}
	fmt.Printf("✓ Tagged %s with %s\n", path, strings.Join(names, ", "))

	if cover == nil {
		return nil
	}
	artwork := cover.data
	if cover.ext != ".jpg" {
		var err error
		if artwork, err = ioutils.NewImageService().ConvertToJPEG(ctx, artwork); err != nil {
			return err
		}
	}
	if err := tagger.SaveArtwork(path, artwork); err != nil {
		return err
	}
	fmt.Printf("✓ Embedded cover into %s\n", path)
	return nil
}

func (a *app) exploreTags(ctx context.Context, tags string, verbose bool) *explore.Summary {
	manager, err := explore.NewManager(a.session, a.settings, func(event explore.ProgressEvent) {
		if event.Level == explore.LevelVerbose && !verbose {
			return
		}

		prefix := ""
		switch event.Level {
		case explore.LevelError:
			prefix = "✗ "
		case explore.LevelWarning:
			prefix = "! "
		case explore.LevelSuccess:
			prefix = "✓ "
		case explore.LevelInfo:
			prefix = "› "
		default:
			prefix = "  "
		}

		fmt.Println(prefix + event.Message)
	})
	if err != nil {
		exit(ctx, "Error", err)
	}

	fmt.Println("♫ Last.fm Graph")
	fmt.Println("────────────────────────────────────────")
	fmt.Println()

	if err := manager.Initialize(ctx, tags); err != nil {
		exit(ctx, "Error initializing", err)
	}
	if err := manager.Expand(ctx); err != nil {
		exit(ctx, "Error exploring", err)
	}

	summaries := manager.Summaries()
	fmt.Println()
	fmt.Println("────────────────────────────────────────")
	for _, s := range summaries {
		printSummary(s)
	}
	return summaries[0]
}

// Package audio provides local-file services driven by Last.fm data: ID3
// genre tagging and playlist generation.
//
// # ID3 Tagging
//
// Use the Tagger to write a track's Last.fm tags as its genre:
//
//	tagger := audio.NewTagger(audio.DefaultTagConfig())
//	track, err := tagger.ReadTrack(session, "song.mp3")
//	tags, err := track.TopTags(ctx)
//	err = tagger.SaveGenres("song.mp3", tags, 3)
//
// The tagger supports:
//   - Reading artist and title (TPE1, TIT2) to identify the track
//   - Writing genres (TCON) from tag names
//   - Cover art (embedded in MP3)
//
// # Playlist Generation
//
// Generate playlists of a tag's top tracks:
//
//	creator := audio.NewPlaylistCreator(audio.FormatM3U, true) // extended M3U
//	content := creator.CreatePlaylist(tracks)
//	os.WriteFile("rock.m3u", []byte(content), 0644)
//
// Entries point at each track's Last.fm page. Supported formats:
//   - M3U (with optional extended info)
//   - PLS
package audio

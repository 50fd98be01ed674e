// Package ioutils provides file system and image processing utilities.
//
// This package contains functions for:
//   - File writing
//   - Filename sanitization for cross-platform compatibility
//   - Directory creation
//   - Choosing and processing Last.fm cover art
//
// # File Operations
//
//	// Write a playlist, creating directories as needed
//	err := ioutils.WriteFile(ctx, "/music/playlists/rock.m3u", content)
//
//	// Resolve a directory target to a file name
//	path := ioutils.OutputPath("/music/playlists", "rock", ".m3u")
//
// # Filename Sanitization
//
//	safe := ioutils.SanitizeFileName("AC/DC") // Returns "AC_DC"
//
// # Image Processing
//
// PickImage selects a URL from an entity's image map, and ImageService
// handles the downloaded bytes:
//
//	url, ok := ioutils.PickImage(album.Images(), "extralarge")
//
//	svc := ioutils.NewImageService()
//	resized, _ := svc.ResizeImage(ctx, imageData, 500, 500)
//	jpeg, _ := svc.ConvertToJPEG(ctx, pngData)
package ioutils

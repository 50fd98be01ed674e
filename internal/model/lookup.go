package model

import (
	"context"
	"fmt"

	"github.com/handiism/lastfm-graph/internal/lastfm"
)

// TopTags would return the globally most used tags.
//
// Not implemented: it validates its arguments and returns
// lastfm.ErrUnsupported without contacting the service.
func TopTags(ctx context.Context, f lastfm.Fetcher) ([]*Tag, error) {
	if err := lastfm.CheckFetcher(f); err != nil {
		return nil, err
	}
	return nil, fmt.Errorf("top tags: %w", lastfm.ErrUnsupported)
}

// SearchTags would search tags by partial name, one page at a time.
//
// Not implemented: it validates its arguments and returns
// lastfm.ErrUnsupported without contacting the service.
func SearchTags(ctx context.Context, f lastfm.Fetcher, name string, limit, page int) ([]*Tag, error) {
	if err := lastfm.CheckFetcher(f); err != nil {
		return nil, err
	}
	if limit < 0 || page < 0 {
		return nil, fmt.Errorf("search tags: negative limit or page")
	}
	return nil, fmt.Errorf("search tags %q: %w", name, lastfm.ErrUnsupported)
}

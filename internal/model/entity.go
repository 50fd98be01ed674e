package model

import (
	"context"
	"fmt"
	"maps"
	"strconv"
	"strings"

	"github.com/handiism/lastfm-graph/internal/lastfm"
)

// Relation names a lazily resolved relationship field.
type Relation string

const (
	RelSimilar    Relation = "similar"
	RelTopAlbums  Relation = "topalbums"
	RelTopArtists Relation = "topartists"
	RelTopTracks  Relation = "toptracks"
	RelTopTags    Relation = "toptags"
)

// request describes one relationship fetch: the method to call, the element
// wrapping the result list and the name of the repeated child element.
type request struct {
	method  string
	wrapper string
	child   string
}

// resolveList issues one fetch for req and builds one entity per child node.
// Errors from the fetcher are returned unchanged.
func resolveList[T any](
	ctx context.Context,
	f lastfm.Fetcher,
	req request,
	identity lastfm.Params,
	parse func(lastfm.Fetcher, lastfm.Node) (T, error),
) ([]T, error) {
	params := lastfm.Params{"method": req.method}
	for k, v := range identity {
		params[k] = v
	}

	root, err := f.Fetch(ctx, params)
	if err != nil {
		return nil, err
	}

	wrapper, ok := root.FindChild(req.wrapper)
	if !ok {
		return nil, fmt.Errorf("%w: %s response has no <%s> element", lastfm.ErrMalformedResponse, req.method, req.wrapper)
	}

	nodes := wrapper.FindAll(req.child)
	items := make([]T, 0, len(nodes))
	for _, n := range nodes {
		item, err := parse(f, n)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", req.method, err)
		}
		items = append(items, item)
	}
	return items, nil
}

// first returns the first item of a resolved list, or the zero value.
func first[T any](items []T, err error) (T, error) {
	var zero T
	if err != nil || len(items) == 0 {
		return zero, err
	}
	return items[0], nil
}

// text returns the text at path as an optional value.
func text(n lastfm.Node, path string) *string {
	s, ok := n.FindChildText(path)
	if !ok {
		return nil
	}
	return &s
}

// number parses an optional integer. Empty or non-numeric text is absent.
func number(s string, ok bool) *int {
	s = strings.TrimSpace(s)
	if !ok || s == "" {
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &n
}

// decimal parses an optional float, with the same rules as number.
func decimal(s string, ok bool) *float64 {
	s = strings.TrimSpace(s)
	if !ok || s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &f
}

// flag reports whether the text at path is "1". Absent elements are absent.
func flag(n lastfm.Node, path string) *bool {
	s, ok := n.FindChildText(path)
	if !ok {
		return nil
	}
	return lastfm.Bool(strings.TrimSpace(s) == "1")
}

// parseImages maps each image node's size label to its URL.
func parseImages(n lastfm.Node) map[string]string {
	nodes := n.FindAll("image")
	images := make(map[string]string, len(nodes))
	for _, img := range nodes {
		size, _ := img.Attr("size")
		url, _ := img.FindChildText(".")
		images[size] = url
	}
	return images
}

// requireName extracts an identity string from an optional attribute.
func requireName(p *string) (string, error) {
	if p == nil {
		return "", lastfm.ErrMissingIdentity
	}
	return *p, nil
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneImages(images map[string]string) map[string]string {
	if images == nil {
		return nil
	}
	return maps.Clone(images)
}

func display(p *string) string {
	if p == nil {
		return "<nil>"
	}
	return *p
}

package model

import (
	"context"
	"fmt"
	"sync"

	"github.com/handiism/lastfm-graph/internal/lastfm"
	"github.com/handiism/lastfm-graph/internal/xmltree"
)

// fakeFetcher serves canned XML bodies keyed by method and records calls.
type fakeFetcher struct {
	mu        sync.Mutex
	responses map[string]string
	errs      map[string]error
	calls     []lastfm.Params
}

func newFakeFetcher(responses map[string]string) *fakeFetcher {
	return &fakeFetcher{responses: responses, errs: make(map[string]error)}
}

func (f *fakeFetcher) Fetch(ctx context.Context, params lastfm.Params) (lastfm.Node, error) {
	f.mu.Lock()
	copied := make(lastfm.Params, len(params))
	for k, v := range params {
		copied[k] = v
	}
	f.calls = append(f.calls, copied)
	err := f.errs[params.Method()]
	body, ok := f.responses[params.Method()]
	f.mu.Unlock()

	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: no response for %s", lastfm.ErrMalformedResponse, params.Method())
	}
	return xmltree.Parse([]byte(body))
}

func (f *fakeFetcher) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func (f *fakeFetcher) failWith(method string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.errs[method] = err
}

const similarTagsXML = `<lfm status="ok">
  <similartags tag="rock">
    <tag>
      <name>classic rock</name>
      <url>https://www.last.fm/tag/classic+rock</url>
      <streamable>1</streamable>
    </tag>
    <tag>
      <name>hard rock</name>
      <url>https://www.last.fm/tag/hard+rock</url>
      <streamable>0</streamable>
    </tag>
  </similartags>
</lfm>`

const emptySimilarXML = `<lfm status="ok"><similartags tag="nothing"></similartags></lfm>`

const topAlbumsXML = `<lfm status="ok">
  <topalbums tag="disco">
    <album rank="1">
      <name>Believe</name>
      <tagcount>42</tagcount>
      <mbid>61bf0388-b8a9-48f4-81d1-7eb02706dfb0</mbid>
      <url>https://www.last.fm/music/Cher/Believe</url>
      <artist>
        <name>Cher</name>
        <mbid>bfcc6d75-a6a5-4bc6-8282-47aec8531818</mbid>
        <url>https://www.last.fm/music/Cher</url>
      </artist>
      <image size="small">https://img/34s/believe.png</image>
      <image size="large">https://img/174s/believe.png</image>
    </album>
    <album rank=" ">
      <name>Discovery</name>
      <tagcount></tagcount>
      <artist><name>Daft Punk</name></artist>
    </album>
  </topalbums>
</lfm>`

const topArtistsXML = `<lfm status="ok">
  <topartists tag="disco">
    <artist rank="1">
      <name>ABBA</name>
      <tagcount>1000</tagcount>
      <mbid>d87e52c5-bb8d-4da8-b941-9f4928627dc8</mbid>
      <url>https://www.last.fm/music/ABBA</url>
      <streamable>1</streamable>
      <image size="medium">https://img/64s/abba.png</image>
    </artist>
  </topartists>
</lfm>`

const topTracksXML = `<lfm status="ok">
  <toptracks tag="disco">
    <track rank="">
      <name>Dancing Queen</name>
      <tagcount>7</tagcount>
      <mbid></mbid>
      <url>https://www.last.fm/music/ABBA/_/Dancing+Queen</url>
      <streamable fulltrack="1">1</streamable>
      <artist>
        <name>ABBA</name>
        <mbid>d87e52c5-bb8d-4da8-b941-9f4928627dc8</mbid>
        <url>https://www.last.fm/music/ABBA</url>
      </artist>
    </track>
  </toptracks>
</lfm>`

const emptyTopTracksXML = `<lfm status="ok"><toptracks tag="x"/></lfm>`

const topTagsXML = `<lfm status="ok">
  <toptags artist="ABBA">
    <tag><name>pop</name><count>100</count><url>https://www.last.fm/tag/pop</url></tag>
    <tag><name>disco</name><count>80</count><url>https://www.last.fm/tag/disco</url></tag>
  </toptags>
</lfm>`

const similarArtistsXML = `<lfm status="ok">
  <similarartists artist="ABBA">
    <artist>
      <name>Boney M.</name>
      <match>0.87</match>
      <url>https://www.last.fm/music/Boney+M.</url>
      <image size="small">https://img/34s/boney.png</image>
      <streamable>0</streamable>
    </artist>
  </similarartists>
</lfm>`

func mustTag(t interface{ Fatalf(string, ...any) }, f lastfm.Fetcher, name string) *Tag {
	tag, err := NewTag(f, TagAttrs{Name: lastfm.String(name)})
	if err != nil {
		t.Fatalf("NewTag(%q): %v", name, err)
	}
	return tag
}

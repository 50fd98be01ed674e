package model

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/handiism/lastfm-graph/internal/lastfm"
)

func TestNewTag_InvalidReference(t *testing.T) {
	var nilFetcher *fakeFetcher

	tests := []struct {
		name string
		f    lastfm.Fetcher
	}{
		{"nil interface", nil},
		{"typed nil", nilFetcher},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewTag(tt.f, TagAttrs{Name: lastfm.String("rock")}); !errors.Is(err, lastfm.ErrInvalidReference) {
				t.Errorf("err = %v, want ErrInvalidReference", err)
			}
		})
	}
}

func TestNewTag_NoIOAndOptionalAttrs(t *testing.T) {
	f := newFakeFetcher(nil)
	tag, err := NewTag(f, TagAttrs{})
	if err != nil {
		t.Fatalf("NewTag without attributes: %v", err)
	}
	if f.callCount() != 0 {
		t.Error("construction must not fetch")
	}
	if _, ok := tag.Name(); ok {
		t.Error("Name should be absent")
	}
	if _, ok := tag.Streamable(); ok {
		t.Error("Streamable should be absent")
	}
	for _, r := range []Relation{RelSimilar, RelTopAlbums, RelTopArtists, RelTopTracks} {
		if tag.Resolved(r) {
			t.Errorf("%s should start unresolved", r)
		}
	}
}

func TestNewTag_CopiesAttrs(t *testing.T) {
	name := "rock"
	tag := mustTag(t, newFakeFetcher(nil), name)
	attrs := TagAttrs{Name: &name}
	tag2, _ := NewTag(newFakeFetcher(nil), attrs)
	name = "pop"

	if got, _ := tag2.Name(); got != "rock" {
		t.Errorf("Name = %q after caller mutation, want rock", got)
	}
	if got, _ := tag.Name(); got != "rock" {
		t.Errorf("Name = %q, want rock", got)
	}
}

func TestTag_Similar(t *testing.T) {
	f := newFakeFetcher(map[string]string{"tag.getsimilar": similarTagsXML})
	rock := mustTag(t, f, "rock")

	similar, err := rock.Similar(context.Background())
	if err != nil {
		t.Fatalf("Similar: %v", err)
	}

	if f.callCount() != 1 {
		t.Fatalf("got %d fetches, want 1", f.callCount())
	}
	params := f.calls[0]
	if len(params) != 2 || params["method"] != "tag.getsimilar" || params["tag"] != "rock" {
		t.Errorf("params = %v, want {method: tag.getsimilar, tag: rock}", params)
	}

	wantNames := []string{"classic rock", "hard rock"}
	if len(similar) != len(wantNames) {
		t.Fatalf("got %d tags, want %d", len(similar), len(wantNames))
	}
	for i, want := range wantNames {
		got, _ := similar[i].Name()
		if got != want {
			t.Errorf("similar[%d] = %q, want %q", i, got, want)
		}
		for _, r := range []Relation{RelSimilar, RelTopAlbums, RelTopArtists, RelTopTracks} {
			if similar[i].Resolved(r) {
				t.Errorf("similar[%d].%s should be unresolved", i, r)
			}
		}
	}

	if s, ok := similar[0].Streamable(); !ok || !s {
		t.Errorf("classic rock Streamable = (%v, %v), want (true, true)", s, ok)
	}
	if s, ok := similar[1].Streamable(); !ok || s {
		t.Errorf("hard rock Streamable = (%v, %v), want (false, true)", s, ok)
	}
	if !rock.Resolved(RelSimilar) {
		t.Error("rock.similar should be resolved")
	}
}

func TestTag_SimilarIsMemoized(t *testing.T) {
	f := newFakeFetcher(map[string]string{"tag.getsimilar": similarTagsXML})
	rock := mustTag(t, f, "rock")

	first, err := rock.Similar(context.Background())
	if err != nil {
		t.Fatalf("Similar: %v", err)
	}
	second, err := rock.Similar(context.Background())
	if err != nil {
		t.Fatalf("Similar: %v", err)
	}

	if f.callCount() != 1 {
		t.Errorf("got %d fetches, want 1", f.callCount())
	}
	if &first[0] != &second[0] || first[0] != second[0] {
		t.Error("second access should return the same slice and entities")
	}
}

func TestTag_EmptyRelationship(t *testing.T) {
	f := newFakeFetcher(map[string]string{
		"tag.getsimilar":   emptySimilarXML,
		"tag.gettoptracks": emptyTopTracksXML,
	})
	tag := mustTag(t, f, "nothing")

	similar, err := tag.Similar(context.Background())
	if err != nil {
		t.Fatalf("Similar: %v", err)
	}
	if similar == nil || len(similar) != 0 {
		t.Errorf("Similar = %#v, want empty non-nil slice", similar)
	}
	if !tag.Resolved(RelSimilar) {
		t.Error("empty result should be resolved")
	}

	top, err := tag.TopTrack(context.Background())
	if err != nil {
		t.Fatalf("TopTrack: %v", err)
	}
	if top != nil {
		t.Errorf("TopTrack = %v, want nil", top)
	}
	if !tag.Resolved(RelTopTracks) {
		t.Error("TopTrack should resolve the backing list")
	}
}

func TestTag_TopAlbums(t *testing.T) {
	f := newFakeFetcher(map[string]string{"tag.gettopalbums": topAlbumsXML})
	disco := mustTag(t, f, "disco")

	albums, err := disco.TopAlbums(context.Background())
	if err != nil {
		t.Fatalf("TopAlbums: %v", err)
	}
	if len(albums) != 2 {
		t.Fatalf("got %d albums, want 2", len(albums))
	}

	believe := albums[0]
	if name, _ := believe.Name(); name != "Believe" {
		t.Errorf("Name = %q, want Believe", name)
	}
	if believe.Artist() == nil {
		t.Fatal("Artist should be set")
	}
	if artist, _ := believe.Artist().Name(); artist != "Cher" {
		t.Errorf("Artist = %q, want Cher", artist)
	}
	if mbid, _ := believe.Artist().MBID(); mbid != "bfcc6d75-a6a5-4bc6-8282-47aec8531818" {
		t.Errorf("Artist MBID = %q", mbid)
	}

	images := believe.Images()
	if len(images) != 2 || images["small"] != "https://img/34s/believe.png" || images["large"] != "https://img/174s/believe.png" {
		t.Errorf("Images = %v, want small and large", images)
	}

	stats := believe.Stats()
	if stats == nil || stats.Rank == nil || *stats.Rank != 1 || stats.TagCount == nil || *stats.TagCount != 42 {
		t.Errorf("Stats = %v, want rank 1 tagcount 42", stats)
	}
	if subject, _ := stats.Key(); subject != "Believe" {
		t.Errorf("Stats subject = %q, want Believe", subject)
	}

	discovery := albums[1].Stats()
	if discovery.Rank != nil {
		t.Errorf("blank rank should be absent, got %d", *discovery.Rank)
	}
	if discovery.TagCount != nil {
		t.Errorf("empty tagcount should be absent, got %d", *discovery.TagCount)
	}
	if got := albums[1].Images(); len(got) != 0 {
		t.Errorf("Images = %v, want empty", got)
	}

	top, err := disco.TopAlbum(context.Background())
	if err != nil || top != believe {
		t.Errorf("TopAlbum = %v, %v; want Believe", top, err)
	}
	if f.callCount() != 1 {
		t.Errorf("got %d fetches, want 1", f.callCount())
	}
}

func TestTag_TopArtists(t *testing.T) {
	f := newFakeFetcher(map[string]string{"tag.gettopartists": topArtistsXML})
	disco := mustTag(t, f, "disco")

	abba, err := disco.TopArtist(context.Background())
	if err != nil {
		t.Fatalf("TopArtist: %v", err)
	}
	if name, _ := abba.Name(); name != "ABBA" {
		t.Errorf("Name = %q, want ABBA", name)
	}
	if s, ok := abba.Streamable(); !ok || !s {
		t.Error("ABBA should be streamable")
	}
	if stats := abba.Stats(); stats == nil || *stats.Rank != 1 || *stats.TagCount != 1000 {
		t.Errorf("Stats = %v", stats)
	}
	if img := abba.Images(); img["medium"] != "https://img/64s/abba.png" {
		t.Errorf("Images = %v", img)
	}
	if f.calls[0]["method"] != "tag.gettopartists" || f.calls[0]["tag"] != "disco" {
		t.Errorf("params = %v", f.calls[0])
	}
}

func TestTag_TopTracks(t *testing.T) {
	f := newFakeFetcher(map[string]string{"tag.gettoptracks": topTracksXML})
	disco := mustTag(t, f, "disco")

	tracks, err := disco.TopTracks(context.Background())
	if err != nil {
		t.Fatalf("TopTracks: %v", err)
	}
	if len(tracks) != 1 {
		t.Fatalf("got %d tracks, want 1", len(tracks))
	}
	queen := tracks[0]

	stats := queen.Stats()
	if stats.Rank != nil {
		t.Errorf("empty rank attribute should be absent, got %d", *stats.Rank)
	}
	if stats.TagCount == nil || *stats.TagCount != 7 {
		t.Errorf("TagCount = %v, want 7", stats.TagCount)
	}
	if full, ok := queen.FullTrack(); !ok || !full {
		t.Errorf("FullTrack = (%v, %v), want (true, true)", full, ok)
	}
	if mbid, ok := queen.MBID(); !ok || mbid != "" {
		t.Errorf("MBID = (%q, %v), want empty but present", mbid, ok)
	}
	key, err := queen.Key()
	if err != nil || key != lastfm.JoinKey("ABBA", "Dancing Queen") {
		t.Errorf("Key = %q, %v", key, err)
	}
}

func TestTag_FetchFailureIsRetried(t *testing.T) {
	f := newFakeFetcher(map[string]string{"tag.getsimilar": similarTagsXML})
	remote := &lastfm.RemoteError{Method: "tag.getsimilar", Code: 11, Message: "Service Offline"}
	f.failWith("tag.getsimilar", remote)
	rock := mustTag(t, f, "rock")

	for i := 0; i < 2; i++ {
		_, err := rock.Similar(context.Background())
		if !errors.Is(err, remote) {
			t.Fatalf("attempt %d: err = %v, want the remote error unchanged", i, err)
		}
		if rock.Resolved(RelSimilar) {
			t.Fatal("failed fetch must leave the field unresolved")
		}
	}

	f.failWith("tag.getsimilar", nil)
	similar, err := rock.Similar(context.Background())
	if err != nil {
		t.Fatalf("Similar after recovery: %v", err)
	}
	if len(similar) != 2 || f.callCount() != 3 {
		t.Errorf("got %d tags after %d fetches, want 2 after 3", len(similar), f.callCount())
	}
}

func TestTag_MissingWrapper(t *testing.T) {
	f := newFakeFetcher(map[string]string{"tag.getsimilar": `<lfm status="ok"><toptags/></lfm>`})
	rock := mustTag(t, f, "rock")

	if _, err := rock.Similar(context.Background()); !errors.Is(err, lastfm.ErrMalformedResponse) {
		t.Errorf("err = %v, want ErrMalformedResponse", err)
	}
	if rock.Resolved(RelSimilar) {
		t.Error("malformed response must not resolve the field")
	}
}

func TestTag_RelationshipWithoutIdentity(t *testing.T) {
	f := newFakeFetcher(map[string]string{"tag.getsimilar": similarTagsXML})
	tag, _ := NewTag(f, TagAttrs{URL: lastfm.String("https://www.last.fm/tag/x")})

	if _, err := tag.Similar(context.Background()); !errors.Is(err, lastfm.ErrMissingIdentity) {
		t.Errorf("err = %v, want ErrMissingIdentity", err)
	}
	if f.callCount() != 0 {
		t.Error("no request should be made without identity")
	}
}

// TestTag_ConcurrentSimilar verifies N concurrent first accesses share one fetch.
func TestTag_ConcurrentSimilar(t *testing.T) {
	const workers = 64

	f := newFakeFetcher(map[string]string{"tag.getsimilar": similarTagsXML})
	rock := mustTag(t, f, "rock")

	results := make([][]*Tag, workers)
	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func(id int) {
			defer wg.Done()
			<-start
			similar, err := rock.Similar(context.Background())
			if err != nil {
				t.Errorf("worker %d: %v", id, err)
				return
			}
			results[id] = similar
		}(i)
	}
	close(start)
	wg.Wait()

	if f.callCount() != 1 {
		t.Fatalf("got %d fetches, want 1", f.callCount())
	}
	for i, r := range results {
		if len(r) != 2 || r[0] != results[0][0] || r[1] != results[0][1] {
			t.Errorf("worker %d observed a different result", i)
		}
	}
}

func TestTag_String(t *testing.T) {
	if got := mustTag(t, newFakeFetcher(nil), "rock").String(); got != "<lastfm.Tag: rock>" {
		t.Errorf("String() = %q", got)
	}
}

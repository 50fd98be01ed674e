package xmltree

import (
	"errors"
	"testing"

	"github.com/handiism/lastfm-graph/internal/lastfm"
)

const topAlbumsXML = `<?xml version="1.0" encoding="utf-8"?>
<lfm status="ok">
  <topalbums tag="disco">
    <album rank="1">
      <name>Believe</name>
      <mbid></mbid>
      <url>https://www.last.fm/music/Cher/Believe</url>
      <artist>
        <name>Cher</name>
        <mbid>bfcc6d75-a6a5-4bc6-8282-47aec8531818</mbid>
        <url>https://www.last.fm/music/Cher</url>
      </artist>
      <image size="small">https://img/s.png</image>
      <image size="large">https://img/l.png</image>
    </album>
  </topalbums>
</lfm>`

func TestParse_OK(t *testing.T) {
	root, err := Parse([]byte(topAlbumsXML))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	wrapper, ok := root.FindChild("topalbums")
	if !ok {
		t.Fatal("topalbums wrapper not found")
	}
	if tag, _ := wrapper.Attr("tag"); tag != "disco" {
		t.Errorf("tag attr = %q, want disco", tag)
	}

	albums := wrapper.FindAll("album")
	if len(albums) != 1 {
		t.Fatalf("got %d albums, want 1", len(albums))
	}
	a := albums[0]

	if name, _ := a.FindChildText("name"); name != "Believe" {
		t.Errorf("name = %q, want Believe", name)
	}
	if artist, _ := a.FindChildText("artist/name"); artist != "Cher" {
		t.Errorf("artist/name = %q, want Cher", artist)
	}
	if mbid, ok := a.FindChildText("mbid"); !ok || mbid != "" {
		t.Errorf("empty mbid = (%q, %v), want (\"\", true)", mbid, ok)
	}
	if _, ok := a.FindChildText("tagcount"); ok {
		t.Error("missing tagcount should report absent")
	}
	if rank, _ := a.Attr("rank"); rank != "1" {
		t.Errorf("rank = %q, want 1", rank)
	}
	if _, ok := a.Attr("missing"); ok {
		t.Error("missing attribute should report absent")
	}
	if got := len(a.FindAll("image")); got != 2 {
		t.Errorf("got %d images, want 2", got)
	}
	if got := a.FindAll("nothing"); got == nil || len(got) != 0 {
		t.Errorf("FindAll of missing tag = %#v, want empty slice", got)
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantCode int
		wantErr  error
	}{
		{
			name:     "service error",
			body:     `<lfm status="failed"><error code="6">Tag not found</error></lfm>`,
			wantCode: 6,
			wantErr:  lastfm.ErrRemote,
		},
		{
			name:    "not xml",
			body:    `{"error": 6}`,
			wantErr: lastfm.ErrMalformedResponse,
		},
		{
			name:    "wrong root",
			body:    `<html><body>Bad Gateway</body></html>`,
			wantErr: lastfm.ErrMalformedResponse,
		},
		{
			name:    "unknown status",
			body:    `<lfm status="maybe"></lfm>`,
			wantErr: lastfm.ErrMalformedResponse,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.body))
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
			if tt.wantCode != 0 {
				var re *lastfm.RemoteError
				if !errors.As(err, &re) {
					t.Fatalf("err %v is not a RemoteError", err)
				}
				if re.Code != tt.wantCode || re.Message != "Tag not found" {
					t.Errorf("RemoteError = %+v", re)
				}
			}
		})
	}
}

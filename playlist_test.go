package main

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

const mediaManifest = `#EXTM3U
#EXT-X-VERSION:3
#EXT-X-TARGETDURATION:6
#EXTINF:5.000,
seg0.ts
#EXTINF:5.000,
seg1.ts
#EXTINF:2.120,
seg2.ts
#EXT-X-ENDLIST
`

func TestParseSegments(t *testing.T) {
	segs := parseSegments(mediaManifest)
	if len(segs) != 3 {
		t.Fatalf("got %d segments, want 3", len(segs))
	}
	for i, want := range []string{"seg0.ts", "seg1.ts", "seg2.ts"} {
		if segs[i] != want {
			t.Errorf("segs[%d] = %q, want %q", i, segs[i], want)
		}
	}
}

func TestParseSegmentsEmpty(t *testing.T) {
	if segs := parseSegments("#EXTM3U\n#EXT-X-ENDLIST\n"); len(segs) != 0 {
		t.Errorf("got %v, want none", segs)
	}
}

func TestResolveSegmentURL(t *testing.T) {
	got := resolveSegmentURL("https://cdn.example/path/master.m3u8", "chunk_0.ts")
	if got != "https://cdn.example/path/chunk_0.ts" {
		t.Errorf("got %q", got)
	}

	abs := "https://other.example/abs/chunk_0.ts"
	if got := resolveSegmentURL("https://cdn.example/path/master.m3u8", abs); got != abs {
		t.Errorf("absolute reference changed: %q", got)
	}
}

func TestFetchPlaylistMedia(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, mediaManifest)
	}))
	defer srv.Close()

	plURL := srv.URL + "/live/index.m3u8"
	segs, base, err := fetchPlaylist(plURL)
	if err != nil {
		t.Fatal(err)
	}
	if len(segs) != 3 {
		t.Fatalf("got %d segments, want 3", len(segs))
	}
	if base != plURL {
		t.Errorf("base = %q, want %q", base, plURL)
	}
}

func TestFetchPlaylistMaster(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/live/master.m3u8":
			fmt.Fprint(w, "#EXTM3U\n#EXT-X-STREAM-INF:PROGRAM-ID=1,BANDWIDTH=1280000,RESOLUTION=640x360\nmedia.m3u8\n")
		case "/live/media.m3u8":
			fmt.Fprint(w, mediaManifest)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	segs, base, err := fetchPlaylist(srv.URL + "/live/master.m3u8")
	if err != nil {
		t.Fatal(err)
	}
	if len(segs) != 3 {
		t.Fatalf("got %d segments, want 3", len(segs))
	}
	if want := srv.URL + "/live/media.m3u8"; base != want {
		t.Errorf("base = %q, want %q", base, want)
	}
}

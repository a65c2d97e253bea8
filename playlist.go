package main

import (
	"bytes"
	"strings"

	"github.com/grafov/m3u8"
)

const segmentExt = ".ts"

// fetchPlaylist downloads the manifest at playlistURL and returns its
// segment references in file order, together with the URL relative
// references resolve against. A manifest that carries no segments but
// decodes as a master playlist is followed one level down to its first
// variant.
func fetchPlaylist(playlistURL string) ([]string, string, error) {
	body, err := httpGetBody(playlistURL)
	if err != nil {
		return nil, "", err
	}

	if segs := parseSegments(string(body)); len(segs) > 0 {
		return segs, playlistURL, nil
	}

	variant := variantURI(body)
	if variant == "" {
		return nil, playlistURL, nil
	}

	variantURL := resolveSegmentURL(playlistURL, variant)
	logger.Println("master playlist, following variant:", variantURL)

	body, err = httpGetBody(variantURL)
	if err != nil {
		return nil, "", err
	}
	return parseSegments(string(body)), variantURL, nil
}

// parseSegments keeps every line ending in the segment extension, in
// file order. No other playlist semantics are interpreted here.
func parseSegments(manifest string) []string {
	var segs []string
	for _, line := range strings.Split(manifest, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasSuffix(line, segmentExt) {
			segs = append(segs, line)
		}
	}
	return segs
}

// variantURI decodes body as an HLS playlist and, when it is a master
// playlist, returns the URI of its first variant.
func variantURI(body []byte) string {
	pl, listType, err := m3u8.DecodeFrom(bytes.NewReader(body), false)
	if err != nil || listType != m3u8.MASTER {
		return ""
	}

	for _, v := range pl.(*m3u8.MasterPlaylist).Variants {
		if v != nil && v.URI != "" {
			return v.URI
		}
	}
	return ""
}

// resolveSegmentURL resolves ref against the playlist location. An
// absolute reference passes through unchanged; anything else replaces
// whatever follows the rightmost slash of the playlist URL. Not RFC
// 3986 reference resolution.
func resolveSegmentURL(playlistURL, ref string) string {
	if strings.HasPrefix(ref, "http") {
		return ref
	}
	return playlistURL[:strings.LastIndex(playlistURL, "/")+1] + ref
}

package main

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/schollz/progressbar/v3"

	"shopeedl/utils"
)

// segmentName returns the on-disk name for the segment at index i.
func segmentName(i int) string {
	return "segment_" + strconv.Itoa(i) + segmentExt
}

// downloadRecord runs the whole pipeline for a single record: resolve
// its playlist, fetch every segment in order and remux them into one
// output file inside dir. Leftover segments from an earlier run are
// cleared first. name is only consulted once the playlist has segments,
// so an interactive user is never asked to name a record that cannot
// download.
func downloadRecord(recordID, dir string, name func() string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	clearSegments(dir)

	recordURL, err := fetchRecordURL(recordID)
	if err != nil {
		return fmt.Errorf("resolve record %s: %w", recordID, err)
	}
	if !utils.IsValidUrl(recordURL) {
		return fmt.Errorf("record %s has no usable playlist URL", recordID)
	}

	segs, baseURL, err := fetchPlaylist(recordURL)
	if err != nil {
		return fmt.Errorf("fetch playlist: %w", err)
	}
	if len(segs) == 0 {
		return errors.New("no media segments found in playlist")
	}

	logger.Printf("found %d segments to download", len(segs))
	output := name()

	skipped, written := downloadSegments(segs, baseURL, dir)
	if len(skipped) == len(segs) {
		return errors.New("all segments failed to download")
	}
	if len(skipped) > 0 {
		// the merged file will be missing these
		logErr.Println("skipped segments:", skipped)
	}

	if err := writeConcatList(dir, len(segs)); err != nil {
		return err
	}

	outPath := filepath.Join(dir, output)
	if err := ffmpegConcat(filepath.Join(dir, concatListName), outPath); err != nil {
		return err
	}

	clearSegments(dir)

	logger.Printf("wrote %s (%s, %d/%d segments)",
		outPath, humanize.Bytes(uint64(written)), len(segs)-len(skipped), len(segs))
	return nil
}

// downloadSegments fetches each reference in order into dir, naming
// files by index. A failed segment is logged and skipped, never
// retried. Returns the skipped indices and the bytes written.
func downloadSegments(segs []string, playlistURL, dir string) (skipped []int, written int64) {
	bar := progressbar.NewOptions64(
		int64(len(segs)),
		progressbar.OptionSetDescription("Downloading segments"),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowCount(),
		progressbar.OptionSetPredictTime(false),
	)

	for i, ref := range segs {
		n, err := fetchSegment(resolveSegmentURL(playlistURL, ref), filepath.Join(dir, segmentName(i)))
		if err != nil {
			logErr.Printf("segment %d failed: %v", i, err)
			skipped = append(skipped, i)
			continue
		}
		written += n
		_ = bar.Add(1)
	}

	_ = bar.Finish()
	fmt.Fprintln(os.Stderr)
	return
}

// fetchSegment downloads one segment to path. A partially written file
// is removed so it can never end up in the concat list.
func fetchSegment(segURL, path string) (int64, error) {
	resp, err := httpGet(segURL)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("unexpected status %s", resp.Status)
	}

	out, err := os.Create(path)
	if err != nil {
		return 0, err
	}

	n, err := io.Copy(out, resp.Body)
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(path)
		return 0, err
	}
	return n, nil
}

// clearSegments removes segment files and the concat list from dir.
// Best effort: a missing file is not an error.
func clearSegments(dir string) {
	matches, err := filepath.Glob(filepath.Join(dir, "segment_*"+segmentExt))
	if err != nil {
		return
	}
	for _, m := range matches {
		os.Remove(m)
	}
	os.Remove(filepath.Join(dir, concatListName))
}

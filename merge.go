package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
)

const concatListName = "concat.txt"

// writeConcatList writes the ffmpeg concat-demuxer control file for
// every segment file that exists on disk, in index order. Indices whose
// download was skipped are simply left out.
func writeConcatList(dir string, total int) error {
	f, err := os.Create(filepath.Join(dir, concatListName))
	if err != nil {
		return err
	}

	for i := 0; i < total; i++ {
		if _, err := os.Stat(filepath.Join(dir, segmentName(i))); err != nil {
			continue
		}
		if _, err := fmt.Fprintf(f, "file '%s'\n", segmentName(i)); err != nil {
			f.Close()
			return err
		}
	}

	return f.Close()
}

// ffmpegConcat joins the segments listed in listPath into out with
// stream copy, overwriting an existing output file.
func ffmpegConcat(listPath, out string) error {
	args := []string{
		"-y",
		"-f", "concat",
		"-safe", "0",
		"-i", listPath,
		"-c", "copy",
		out,
	}

	if err := exec.Command(*flagFFmpeg, args...).Run(); err != nil {
		return fmt.Errorf("ffmpeg failed: %w", err)
	}
	return nil
}

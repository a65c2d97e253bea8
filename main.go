package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/AlecAivazis/survey/v2"
)

const defaultUA = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/80.0.3987.163 Safari/537.36"

var (
	logger = log.New(os.Stdout, "", log.LstdFlags)
	logErr = log.New(os.Stderr, "", log.LstdFlags)
)
var (
	flagDir    = flag.String("dir", "downloads", "`directory` to store segments and merged output")
	flagOutput = flag.String("o", "", "Write to `file` instead of prompting per record (a %s is replaced by the record id)")
	flagAPI    = flag.String("api", "https://live.shopee.ph", "Base `URL` of the replay API")
	flagUA     = flag.String("UA", defaultUA, "Send User-Agent to server")
	flagFFmpeg = flag.String("ffmpeg", "ffmpeg", "`path` to the ffmpeg binary")
)

func main() {
	flag.Parse()

	input := strings.TrimSpace(flag.Arg(0))
	if input == "" {
		err := survey.AskOne(&survey.Input{Message: "Shopee live replay URL or session ID:"}, &input)
		if err != nil {
			logErr.Fatalln(err)
		}
		input = strings.TrimSpace(input)
	}
	if input == "" {
		logErr.Fatalln("no URL or session ID given")
	}

	sessionID, recordID := input, ""
	if strings.HasPrefix(input, "http") {
		ref, err := parseReplayURL(input)
		if err != nil {
			logErr.Fatalln("cannot parse replay URL:", err)
		}
		if ref.Session == "" {
			logErr.Fatalln("no session parameter in URL, check the link format")
		}
		sessionID, recordID = ref.Session, ref.Record

		logger.Println("extracted session ID:", sessionID)
		if recordID != "" {
			logger.Println("extracted record ID:", recordID)
		}
	}

	var records []string
	if recordID != "" {
		// the link points at one specific record
		records = []string{recordID}
	} else {
		ids, err := fetchRecordIDs(sessionID)
		if err != nil {
			logErr.Println(err)
		}
		if len(ids) == 0 {
			logErr.Fatalln("no records found for session", sessionID)
		}
		logger.Printf("found %d record(s) for session %s", len(ids), sessionID)
		records = ids
	}

	done, err := downloadRecords(records, recordID != "")
	if err != nil {
		logErr.Fatalln(err)
	}

	logger.Printf("successfully downloaded %d/%d record(s)", done, len(records))
}

// downloadRecords downloads each record in order and tallies successes.
// While walking a session a failed record is logged and the rest still
// run; a failure of the one record named directly in the URL ends the
// run with an error.
func downloadRecords(records []string, direct bool) (int, error) {
	done := 0
	for i, id := range records {
		logger.Printf("downloading record %d/%d: %s", i+1, len(records), id)

		name := func() string { return outputName(id, len(records) > 1) }
		if err := downloadRecord(id, *flagDir, name); err != nil {
			if direct {
				return done, fmt.Errorf("record %s failed: %w", id, err)
			}
			logErr.Printf("record %s failed: %v", id, err)
			continue
		}
		done++
	}
	return done, nil
}

// outputName decides the merged file name for one record: the -o
// template when given, otherwise an interactive prompt falling back to
// a record-derived default.
func outputName(recordID string, multi bool) string {
	def := fmt.Sprintf("shopee_replay_%s.mp4", recordID)

	if *flagOutput != "" {
		if strings.Contains(*flagOutput, "%s") {
			return fmt.Sprintf(*flagOutput, recordID)
		}
		if multi {
			// keep names unique across records
			ext := filepath.Ext(*flagOutput)
			return strings.TrimSuffix(*flagOutput, ext) + "_" + recordID + ext
		}
		return *flagOutput
	}

	var name string
	err := survey.AskOne(&survey.Input{Message: "Output file name (blank for " + def + "):"}, &name)
	if err != nil {
		logErr.Println(err)
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return def
	}
	return name
}

package main

import (
	"encoding/json"
	"fmt"
	"net/url"
)

// replayRef holds the identifiers extracted from a replay share link.
// Parameters missing from the query string stay empty.
type replayRef struct {
	Session string
	Record  string
	RoomID  string
}

// apiResponse is the envelope every replay API endpoint answers with.
type apiResponse struct {
	ErrCode int     `json:"err_code"`
	ErrMsg  string  `json:"err_msg"`
	Data    apiData `json:"data"`
}

type apiData struct {
	RecordIDs  []string   `json:"record_ids"`
	ReplayInfo replayInfo `json:"replay_info"`
}

type replayInfo struct {
	RecordURL string `json:"record_url"`
}

// parseReplayURL pulls the session, record and room identifiers out of
// a replay link's query string. Only a structurally malformed URL is an
// error; an absent parameter is not.
func parseReplayURL(raw string) (replayRef, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return replayRef{}, err
	}

	q := u.Query()
	return replayRef{
		Session: q.Get("session"),
		Record:  q.Get("record"),
		RoomID:  q.Get("room_id"),
	}, nil
}

func getAPI(endpoint string) (*apiResponse, error) {
	body, err := httpGetBody(endpoint)
	if err != nil {
		return nil, err
	}

	var resp apiResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("bad API response: %w", err)
	}

	if resp.ErrCode != 0 {
		return nil, fmt.Errorf("API error %d: %s", resp.ErrCode, resp.ErrMsg)
	}

	return &resp, nil
}

// fetchRecordIDs lists the record ids belonging to a session, in the
// order the server returns them.
func fetchRecordIDs(sessionID string) ([]string, error) {
	resp, err := getAPI(fmt.Sprintf("%s/api/v1/replay?session_id=%s", *flagAPI, url.QueryEscape(sessionID)))
	if err != nil {
		return nil, err
	}
	return resp.Data.RecordIDs, nil
}

// fetchRecordURL resolves one record id to its playlist URL. The URL is
// returned exactly as the server sent it, empty string included.
func fetchRecordURL(recordID string) (string, error) {
	resp, err := getAPI(fmt.Sprintf("%s/api/v1/replay/%s", *flagAPI, url.PathEscape(recordID)))
	if err != nil {
		return "", err
	}
	return resp.Data.ReplayInfo.RecordURL, nil
}

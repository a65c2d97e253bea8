package main

import (
	"fmt"
	"io"
	"net/http"
	"time"
)

// every network call shares the same fixed timeout, no retries
const requestTimeout = 30 * time.Second

var httpClient = &http.Client{Timeout: requestTimeout}

// generic function to do a http get
// with UA, headers, etc. initialized
func httpGet(url string) (resp *http.Response, err error) {
	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return
	}
	req.Header.Set("User-Agent", *flagUA)
	return httpClient.Do(req)
}

// httpGetBody fetches url and returns the whole response body,
// treating any non-200 status as an error.
func httpGetBody(url string) ([]byte, error) {
	resp, err := httpGet(url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}

	return io.ReadAll(resp.Body)
}

// Package main provides a standalone liveness probe for the Kookt API.
// It is intended for container health checks and monitoring scripts.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"
)

const (
	exitCodeSuccess = 0
	exitCodeFailure = 1
)

func main() {
	var (
		url     = flag.String("url", "http://localhost:8080/api/v1/health", "health endpoint URL")
		timeout = flag.Duration("timeout", 5*time.Second, "request timeout")
	)
	flag.Parse()

	os.Exit(probe(*url, *timeout))
}

func probe(url string, timeout time.Duration) int {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid health check URL: %v\n", err)
		return exitCodeFailure
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		fmt.Fprintf(os.Stderr, "health check request failed: %v\n", err)
		return exitCodeFailure
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		fmt.Fprintf(os.Stderr, "health check returned status %d\n", resp.StatusCode)
		return exitCodeFailure
	}

	var body struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil || body.Status != "ok" {
		fmt.Fprintln(os.Stderr, "health check returned an unexpected body")
		return exitCodeFailure
	}

	return exitCodeSuccess
}

package report

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Sink receives position reports.
type Sink interface {
	Push(ctx context.Context, x, y float64) error
}

// HTTPSink posts positions as JSON to a collector endpoint. A response other
// than 200 OK is a failure.
type HTTPSink struct {
	url    string
	client *http.Client
}

// NewHTTPSink creates a sink for the given collector URL.
func NewHTTPSink(url string) *HTTPSink {
	return &HTTPSink{
		url: url,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type positionReport struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Push sends one position report.
func (s *HTTPSink) Push(ctx context.Context, x, y float64) error {
	body, err := json.Marshal(positionReport{X: x, Y: y})
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build report request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("push report: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("push report: collector returned %d", resp.StatusCode)
	}
	return nil
}

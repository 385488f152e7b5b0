package analytics

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"
)

// WriteJSON writes a report as indented JSON, the format the donor impact
// page downloads.
func WriteJSON(w io.Writer, r Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// WriteCSV writes the per-day rows of a report as CSV with a header row.
func WriteCSV(w io.Writer, r Report) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"day", "active_users", "xp_awarded", "points_earned", "points_spent"}); err != nil {
		return err
	}
	for _, d := range r.Days {
		row := []string{
			d.Day,
			strconv.Itoa(d.ActiveUsers),
			strconv.FormatInt(d.XPAwarded, 10),
			strconv.FormatInt(d.PointsEarned, 10),
			strconv.FormatInt(d.PointsSpent, 10),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// HTTPExporter pushes report snapshots to an external HTTP endpoint.
type HTTPExporter struct {
	endpoint   string
	apiKey     string
	httpClient *http.Client
}

func NewHTTPExporter(endpoint, apiKey string) *HTTPExporter {
	return &HTTPExporter{
		endpoint: endpoint,
		apiKey:   apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (e *HTTPExporter) Export(ctx context.Context, r Report) error {
	payload, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", e.endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if e.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+e.apiKey)
	}

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send report: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("report export failed with status %d: %s", resp.StatusCode, string(body))
	}

	return nil
}

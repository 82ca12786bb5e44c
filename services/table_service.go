package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// TableService is the client for the tabular backend. Every resource is a
// table endpoint returning either {"data":[...]} or, from some deployments,
// a bare top-level JSON array; both shapes are accepted.
type TableService struct {
	baseURL string
	client  *http.Client
}

func NewTableService(baseURL string) *TableService {
	return &TableService{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// FetchRows fetches a table filtered by patient id and decodes the rows
// into out (a pointer to a slice). The ?patient_id=eq.N filter is sent but
// not trusted; callers must re-check patient ids row by row.
func (s *TableService) FetchRows(ctx context.Context, table string, patientID int, out any) error {
	url := fmt.Sprintf("%s/%s?patient_id=eq.%d", s.baseURL, table, patientID)
	return s.get(ctx, url, out)
}

// FetchAll fetches a table without a filter (login scans the users table).
func (s *TableService) FetchAll(ctx context.Context, table string, out any) error {
	return s.get(ctx, fmt.Sprintf("%s/%s", s.baseURL, table), out)
}

// Insert POSTs one flat row. Success is judged by HTTP status alone; the
// response body is not interpreted.
func (s *TableService) Insert(ctx context.Context, table string, payload map[string]any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal %s payload: %w", table, err)
	}

	url := fmt.Sprintf("%s/%s", s.baseURL, table)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create %s request: %w", table, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call table API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("table API error %d inserting into %s: %s", resp.StatusCode, table, string(b))
	}
	return nil
}

func (s *TableService) get(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call table API: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read table API response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("table API error %d for %s: %s", resp.StatusCode, url, string(body))
	}

	return decodeRows(body, out)
}

// decodeRows accepts the documented {"data":[...]} envelope and tolerates
// the bare-array shape some deployments return instead.
func decodeRows(body []byte, out any) error {
	trimmed := bytes.TrimLeft(body, " \t\r\n")
	switch {
	case len(trimmed) == 0:
		return fmt.Errorf("empty table API response")
	case trimmed[0] == '{':
		var envelope struct {
			Data json.RawMessage `json:"data"`
		}
		if err := json.Unmarshal(trimmed, &envelope); err != nil {
			return fmt.Errorf("failed to parse table API response: %w", err)
		}
		if envelope.Data == nil {
			envelope.Data = json.RawMessage("[]")
		}
		if err := json.Unmarshal(envelope.Data, out); err != nil {
			return fmt.Errorf("failed to parse table API data array: %w", err)
		}
		return nil
	case trimmed[0] == '[':
		if err := json.Unmarshal(trimmed, out); err != nil {
			return fmt.Errorf("failed to parse table API array: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unexpected table API response shape: %s", snippet(trimmed))
	}
}

func snippet(b []byte) string {
	const max = 120
	if len(b) > max {
		return string(b[:max]) + "..."
	}
	return string(b)
}

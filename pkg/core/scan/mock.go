package scan

import (
	"context"
	"time"

	"dealdesk/pkg/core/ingest"
)

// MockScanner returns fixed records, for offline runs and tests.
type MockScanner struct {
	Records []ingest.ScanRecord
	Err     error
	Latency time.Duration
}

var _ DocumentScanner = (*MockScanner)(nil)

func (m *MockScanner) ScanDocument(ctx context.Context, document string) ([]ingest.ScanRecord, error) {
	// Simulate "thinking" latency
	if m.Latency > 0 {
		select {
		case <-time.After(m.Latency):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	if m.Err != nil {
		return nil, m.Err
	}
	return m.Records, nil
}

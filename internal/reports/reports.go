// Package reports writes timestamped JSON report files.
package reports

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// DefaultDir is where reports go when no directory is given.
const DefaultDir = "reports"

// WriteJSON pretty-prints data into dir/{prefix}-{YYYYMMDD-HHMMSS}.json,
// creating dir if needed, and returns the file path. The timestamp is now
// in UTC.
func WriteJSON(dir, prefix string, data any, now time.Time) (string, error) {
	if dir == "" {
		dir = DefaultDir
	}
	if prefix == "" {
		prefix = "report"
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create reports directory: %w", err)
	}

	b, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal report: %w", err)
	}

	name := fmt.Sprintf("%s-%s.json", prefix, now.UTC().Format("20060102-150405"))
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, append(b, '\n'), 0o644); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}
	return path, nil
}

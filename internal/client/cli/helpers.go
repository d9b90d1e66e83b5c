package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/iudanet/medsync/internal/models"
)

// parseDocument читает JSON-объект из строки или файла
func parseDocument(raw, file string) (models.Document, error) {
	if raw != "" && file != "" {
		return nil, fmt.Errorf("use either -data or -file, not both")
	}
	if file != "" {
		content, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("failed to read data file: %w", err)
		}
		raw = string(content)
	}
	if raw == "" {
		return nil, nil
	}

	var doc models.Document
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return nil, fmt.Errorf("data must be a JSON object: %w", err)
	}
	if doc == nil {
		return nil, fmt.Errorf("data must be a JSON object")
	}
	return doc, nil
}

func (c *Cli) printJSON(v any) error {
	enc := json.NewEncoder(c.io)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func formatTime(t *time.Time) string {
	if t == nil || t.IsZero() {
		return "never"
	}
	return t.Local().Format(time.RFC3339)
}

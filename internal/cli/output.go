package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// SendResult describes one delivered (or dry-run) submission
type SendResult struct {
	SentAt  time.Time `json:"sent_at"`
	Student string    `json:"student"`
	Score   string    `json:"score"`
	DryRun  bool      `json:"dry_run"`
	Message string    `json:"message"`
	Length  int       `json:"length"`
}

// WriteOutput writes the result in the specified format
func WriteOutput(w io.Writer, result *SendResult, format OutputFormat) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, result)
	case FormatText:
		return writeText(w, result)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// writeJSON outputs results as JSON
func writeJSON(w io.Writer, result *SendResult) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

// writeText outputs results as human-readable text
func writeText(w io.Writer, result *SendResult) error {
	verb := "Sent"
	if result.DryRun {
		verb = "Dry run, not sent"
	}

	_, err := fmt.Fprintf(w, "%s: result for %s (%s%%), %d characters\n",
		verb, result.Student, result.Score, result.Length)
	return err
}

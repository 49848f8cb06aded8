// Package storage reads standards CSV sources from the filesystem.
package storage

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/felixgeelhaar/devstandards/pkg/domain/standards"
	"github.com/felixgeelhaar/fortify/retry"
)

// Header is the required CSV column layout, in order.
var Header = []string{
	"id", "category", "subcategory", "title", "description", "severity",
	"examples", "references", "tags", "rationale", "fix_guidance",
}

// CSVSource reads one CSV file into standard records. It implements
// standards.Source.
type CSVSource struct {
	path        string
	retryConfig retry.Config
}

// NewCSVSource creates a source for the given file path.
func NewCSVSource(path string) *CSVSource {
	return &CSVSource{
		path: path,
		retryConfig: retry.Config{
			MaxAttempts:   3,
			InitialDelay:  10 * time.Millisecond,
			BackoffPolicy: retry.BackoffExponential,
		},
	}
}

// Name returns the source file path.
func (s *CSVSource) Name() string {
	return s.path
}

// Load parses the file. Malformed rows are reported individually; a file
// that cannot be read or has a bad header fails as a whole.
func (s *CSVSource) Load() ([]standards.Standard, []standards.RowError, error) {
	retryer := retry.New[[]byte](s.retryConfig)

	data, err := retryer.Do(context.Background(), func(ctx context.Context) ([]byte, error) {
		// #nosec G304 -- paths come from the validated registry config
		return os.ReadFile(s.path)
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read source: %w", err)
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = len(Header)

	header, err := reader.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read header: %w", err)
	}
	for i, col := range Header {
		if strings.TrimSpace(header[i]) != col {
			return nil, nil, fmt.Errorf("unexpected header column %d: got %q, want %q", i, header[i], col)
		}
	}

	var (
		records []standards.Standard
		rowErrs []standards.RowError
	)
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				rowErrs = append(rowErrs, standards.RowError{
					Source:  s.path,
					Reasons: []string{err.Error()},
				})
				continue
			}
			return records, rowErrs, fmt.Errorf("failed to parse source: %w", err)
		}

		std, reasons := parseRow(row)
		if len(reasons) > 0 {
			rowErrs = append(rowErrs, standards.RowError{
				Source:  s.path,
				RowID:   row[0],
				Reasons: reasons,
			})
			continue
		}
		records = append(records, std)
	}
	return records, rowErrs, nil
}

// parseRow converts one CSV row into a record. The examples column is a
// JSON object with optional "good"/"bad" keys, references is a JSON array
// of URLs, and tags is a pipe-delimited keyword list.
func parseRow(row []string) (standards.Standard, []string) {
	var reasons []string

	examples := map[string]string{}
	if raw := strings.TrimSpace(row[6]); raw != "" {
		if err := json.Unmarshal([]byte(raw), &examples); err != nil {
			reasons = append(reasons, fmt.Sprintf("invalid examples: %v", err))
		}
	}

	var references []string
	if raw := strings.TrimSpace(row[7]); raw != "" {
		if err := json.Unmarshal([]byte(raw), &references); err != nil {
			reasons = append(reasons, fmt.Sprintf("invalid references: %v", err))
		}
	}

	std := standards.Standard{
		ID:          row[0],
		Category:    row[1],
		Subcategory: row[2],
		Title:       row[3],
		Description: row[4],
		Severity:    standards.Severity(strings.ToLower(strings.TrimSpace(row[5]))),
		Examples:    examples,
		References:  references,
		Tags:        splitTags(row[8]),
		Rationale:   row[9],
		FixGuidance: row[10],
	}
	return std, reasons
}

// splitTags splits a pipe-delimited keyword list into trimmed lowercase
// tags, dropping empties and duplicates while preserving order.
func splitTags(raw string) []string {
	var tags []string
	seen := make(map[string]bool)
	for _, t := range strings.Split(raw, "|") {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		tags = append(tags, t)
	}
	return tags
}

// Sources wraps file paths into store sources.
func Sources(paths []string) []standards.Source {
	sources := make([]standards.Source, 0, len(paths))
	for _, p := range paths {
		sources = append(sources, NewCSVSource(p))
	}
	return sources
}

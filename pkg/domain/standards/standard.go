// Package standards defines the coding-standard record model and the
// in-memory store that answers all catalog queries.
package standards

import (
	"fmt"
	"strings"
	"time"
)

// Severity ranks the importance of a standard.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
	SeverityInfo     Severity = "info"
)

// Severities lists all accepted severity values in ranking order.
func Severities() []Severity {
	return []Severity{SeverityCritical, SeverityHigh, SeverityMedium, SeverityLow, SeverityInfo}
}

// ParseSeverity parses a severity value case-insensitively.
func ParseSeverity(s string) (Severity, error) {
	sev := Severity(strings.ToLower(strings.TrimSpace(s)))
	if !sev.Valid() {
		return "", fmt.Errorf("%w: invalid severity %q (expected critical, high, medium, low, or info)", ErrInvalidArgument, s)
	}
	return sev, nil
}

// Valid reports whether the severity is one of the five accepted values.
func (s Severity) Valid() bool {
	switch s {
	case SeverityCritical, SeverityHigh, SeverityMedium, SeverityLow, SeverityInfo:
		return true
	}
	return false
}

// Standard represents one coding-standard or best-practice entry.
type Standard struct {
	ID          string            `json:"id" yaml:"id"`
	Category    string            `json:"category" yaml:"category"`
	Subcategory string            `json:"subcategory" yaml:"subcategory"`
	Title       string            `json:"title" yaml:"title"`
	Description string            `json:"description" yaml:"description"`
	Severity    Severity          `json:"severity" yaml:"severity"`
	Examples    map[string]string `json:"examples" yaml:"examples"`
	References  []string          `json:"references" yaml:"references"`
	Tags        []string          `json:"tags" yaml:"tags"`
	Rationale   string            `json:"rationale,omitempty" yaml:"rationale,omitempty"`
	FixGuidance string            `json:"fix_guidance,omitempty" yaml:"fix_guidance,omitempty"`
	CreatedAt   *time.Time        `json:"created_at,omitempty" yaml:"created_at,omitempty"`
	UpdatedAt   *time.Time        `json:"updated_at,omitempty" yaml:"updated_at,omitempty"`
}

// Validate checks the record invariants. It returns one error per violation
// and never panics; callers decide whether to discard invalid records.
func (s *Standard) Validate() []error {
	var errs []error
	if s.ID == "" {
		errs = append(errs, fmt.Errorf("standard ID is required"))
	}
	if s.Category == "" {
		errs = append(errs, fmt.Errorf("standard category is required"))
	}
	if s.Title == "" {
		errs = append(errs, fmt.Errorf("standard title is required"))
	}
	if s.Description == "" {
		errs = append(errs, fmt.Errorf("standard description is required"))
	}
	if !s.Severity.Valid() {
		errs = append(errs, fmt.Errorf("invalid severity: %q", s.Severity))
	}
	return errs
}

// HasTag reports whether the record carries the given tag (case-insensitive).
func (s *Standard) HasTag(tag string) bool {
	tag = strings.ToLower(tag)
	for _, t := range s.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// searchText joins the searchable fields into one lowercase blob.
func (s *Standard) searchText() string {
	parts := []string{s.Title, s.Description}
	parts = append(parts, s.Tags...)
	return strings.ToLower(strings.Join(parts, " "))
}

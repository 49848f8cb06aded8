package standards

import (
	"errors"
	"testing"
)

func validStandard() Standard {
	return Standard{
		ID:          "DS001",
		Category:    "drupal_security",
		Subcategory: "sql_injection",
		Title:       "Use parameterized queries",
		Description: "Never concatenate user input into SQL.",
		Severity:    SeverityCritical,
		Examples:    map[string]string{"good": "placeholders", "bad": "concatenation"},
		References:  []string{"https://example.com/secure-code"},
		Tags:        []string{"security", "database", "injection"},
	}
}

func TestStandardValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Standard)
		wantErr int
	}{
		{"valid", func(s *Standard) {}, 0},
		{"missing id", func(s *Standard) { s.ID = "" }, 1},
		{"missing category", func(s *Standard) { s.Category = "" }, 1},
		{"missing title", func(s *Standard) { s.Title = "" }, 1},
		{"missing description", func(s *Standard) { s.Description = "" }, 1},
		{"bogus severity", func(s *Standard) { s.Severity = "bogus" }, 1},
		{"empty severity", func(s *Standard) { s.Severity = "" }, 1},
		{"everything wrong", func(s *Standard) { *s = Standard{} }, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			std := validStandard()
			tt.mutate(&std)
			errs := std.Validate()
			if len(errs) != tt.wantErr {
				t.Fatalf("Validate() returned %d errors, want %d: %v", len(errs), tt.wantErr, errs)
			}
		})
	}
}

func TestParseSeverity(t *testing.T) {
	for _, sev := range Severities() {
		got, err := ParseSeverity(string(sev))
		if err != nil {
			t.Fatalf("ParseSeverity(%q): %v", sev, err)
		}
		if got != sev {
			t.Fatalf("ParseSeverity(%q) = %q", sev, got)
		}
	}

	got, err := ParseSeverity("  CRITICAL ")
	if err != nil {
		t.Fatalf("ParseSeverity mixed case: %v", err)
	}
	if got != SeverityCritical {
		t.Fatalf("ParseSeverity mixed case = %q", got)
	}

	if _, err := ParseSeverity("bogus"); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("ParseSeverity(bogus) error = %v, want ErrInvalidArgument", err)
	}
}

func TestHasTag(t *testing.T) {
	std := validStandard()
	if !std.HasTag("security") {
		t.Fatal("expected tag 'security'")
	}
	if !std.HasTag("SECURITY") {
		t.Fatal("tag matching must be case-insensitive")
	}
	if std.HasTag("unknown") {
		t.Fatal("did not expect tag 'unknown'")
	}
}

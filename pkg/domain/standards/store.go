package standards

import (
	"fmt"
	"strings"
	"sync"
)

// DuplicatePolicy decides what happens when two sources carry the same id.
type DuplicatePolicy string

const (
	// DuplicateReplace keeps the later occurrence (last write wins).
	DuplicateReplace DuplicatePolicy = "replace"
	// DuplicateReject keeps the earlier occurrence and discards the later one.
	DuplicateReject DuplicatePolicy = "reject"
)

// Valid reports whether the policy is one of the accepted values.
func (p DuplicatePolicy) Valid() bool {
	return p == DuplicateReplace || p == DuplicateReject
}

// LimitBounds clamps query result sizes.
type LimitBounds struct {
	Default int `json:"default" yaml:"default"`
	Min     int `json:"min" yaml:"min"`
	Max     int `json:"max" yaml:"max"`
}

// DefaultLimitBounds returns the standard clamp window.
func DefaultLimitBounds() LimitBounds {
	return LimitBounds{Default: 50, Min: 1, Max: 100}
}

// Clamp resolves a requested limit against the bounds. A nil limit means the
// caller did not constrain the result and gets the default.
func (b LimitBounds) Clamp(limit *int) int {
	if limit == nil {
		return b.Default
	}
	n := *limit
	if n < b.Min {
		return b.Min
	}
	if n > b.Max {
		return b.Max
	}
	return n
}

// Source supplies parsed records to the store. Implementations report
// row-level problems separately from a source-level failure so that one
// bad file never aborts the rest of the load.
type Source interface {
	// Name identifies the source in diagnostics (typically a file path).
	Name() string
	// Load parses the source into records. Rows that could not be parsed
	// are reported as RowErrors; a non-nil error means the whole source
	// is unreadable and must be skipped.
	Load() ([]Standard, []RowError, error)
}

// RowError records one discarded row.
type RowError struct {
	Source  string   `json:"source"`
	RowID   string   `json:"row_id,omitempty"`
	Reasons []string `json:"reasons"`
}

// SourceError records one skipped source.
type SourceError struct {
	Source string `json:"source"`
	Reason string `json:"reason"`
}

// LoadReport summarizes one LoadAll pass.
type LoadReport struct {
	Loaded         int           `json:"loaded"`
	SkippedRows    []RowError    `json:"skipped_rows,omitempty"`
	SkippedSources []SourceError `json:"skipped_sources,omitempty"`
}

// StoreConfig tunes store behavior. The zero value gets sane defaults.
type StoreConfig struct {
	// DuplicatePolicy resolves id collisions across sources (default replace).
	DuplicatePolicy DuplicatePolicy
	// Limits clamp query result sizes (default 50, clamped to [1,100]).
	Limits LimitBounds
	// CategoryDescriptions maps category names to human-readable
	// descriptions supplied by the owning plugins.
	CategoryDescriptions map[string]string
}

type entry struct {
	std    Standard
	search string
}

// Store owns the authoritative in-memory record collection and all derived
// indexes. It is read-only after LoadAll and safe for concurrent readers.
type Store struct {
	mu     sync.RWMutex
	life   *lifecycle
	cfg    StoreConfig
	report *LoadReport

	records  []*entry         // insertion order
	byID     map[string]int   // id -> index into records
	byCat    map[string][]string
	catOrder []string
}

// NewStore constructs an empty store.
func NewStore(cfg StoreConfig) (*Store, error) {
	if cfg.DuplicatePolicy == "" {
		cfg.DuplicatePolicy = DuplicateReplace
	}
	if !cfg.DuplicatePolicy.Valid() {
		return nil, fmt.Errorf("%w: invalid duplicate policy %q", ErrInvalidArgument, cfg.DuplicatePolicy)
	}
	if cfg.Limits == (LimitBounds{}) {
		cfg.Limits = DefaultLimitBounds()
	}

	life, err := newLifecycle()
	if err != nil {
		return nil, err
	}

	return &Store{
		life:  life,
		cfg:   cfg,
		byID:  make(map[string]int),
		byCat: make(map[string][]string),
	}, nil
}

// LoadAll ingests every source into the store. It is idempotent: once the
// store is loaded, later calls return the original report without re-reading
// any source. Row and source failures are recorded on the report and never
// abort the pass; zero loadable sources yields an empty but valid store.
func (s *Store) LoadAll(sources []Source) (*LoadReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.life.Loaded() {
		return s.report, nil
	}

	report := &LoadReport{}
	for _, src := range sources {
		records, rowErrs, err := src.Load()
		if err != nil {
			report.SkippedSources = append(report.SkippedSources, SourceError{
				Source: src.Name(),
				Reason: err.Error(),
			})
			continue
		}
		report.SkippedRows = append(report.SkippedRows, rowErrs...)

		for _, std := range records {
			if errs := std.Validate(); len(errs) > 0 {
				reasons := make([]string, 0, len(errs))
				for _, e := range errs {
					reasons = append(reasons, e.Error())
				}
				report.SkippedRows = append(report.SkippedRows, RowError{
					Source:  src.Name(),
					RowID:   std.ID,
					Reasons: reasons,
				})
				continue
			}
			s.insert(std, src.Name(), report)
		}
	}

	report.Loaded = len(s.records)
	s.report = report

	if err := s.life.MarkLoaded(); err != nil {
		return nil, err
	}
	return report, nil
}

// insert places one validated record, resolving id collisions per policy.
func (s *Store) insert(std Standard, source string, report *LoadReport) {
	e := &entry{std: std, search: std.searchText()}

	idx, exists := s.byID[std.ID]
	if !exists {
		s.records = append(s.records, e)
		s.byID[std.ID] = len(s.records) - 1
		s.indexCategory(std.Category, std.ID)
		return
	}

	if s.cfg.DuplicatePolicy == DuplicateReject {
		report.SkippedRows = append(report.SkippedRows, RowError{
			Source:  source,
			RowID:   std.ID,
			Reasons: []string{fmt.Sprintf("duplicate id %q already loaded", std.ID)},
		})
		return
	}

	// Last write wins: replace in place, moving the category index entry
	// if the category changed.
	old := s.records[idx].std
	if old.Category != std.Category {
		s.byCat[old.Category] = removeID(s.byCat[old.Category], std.ID)
		s.indexCategory(std.Category, std.ID)
	}
	s.records[idx] = e
}

func (s *Store) indexCategory(category, id string) {
	if _, seen := s.byCat[category]; !seen {
		s.catOrder = append(s.catOrder, category)
	}
	s.byCat[category] = append(s.byCat[category], id)
}

func removeID(ids []string, id string) []string {
	for i, v := range ids {
		if v == id {
			return append(ids[:i:i], ids[i+1:]...)
		}
	}
	return ids
}

// FilterQuery selects records by exact field matches. Absent fields are
// unconstrained. Severity matching is case-insensitive; category and
// subcategory are case-sensitive.
type FilterQuery struct {
	Category    string
	Subcategory string
	Severity    string
	Limit       *int
}

// Filter returns matching records in insertion order, capped by the clamped
// limit. An unknown severity value is an InvalidArgument error.
func (s *Store) Filter(q FilterQuery) ([]Standard, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.life.Loaded() {
		return nil, ErrStoreNotLoaded
	}

	var severity Severity
	if q.Severity != "" {
		var err error
		severity, err = ParseSeverity(q.Severity)
		if err != nil {
			return nil, err
		}
	}

	limit := s.cfg.Limits.Clamp(q.Limit)
	results := make([]Standard, 0, limit)
	for _, e := range s.records {
		if q.Category != "" && e.std.Category != q.Category {
			continue
		}
		if q.Subcategory != "" && e.std.Subcategory != q.Subcategory {
			continue
		}
		if severity != "" && e.std.Severity != severity {
			continue
		}
		results = append(results, e.std)
		if len(results) == limit {
			break
		}
	}
	return results, nil
}

// SearchQuery selects records by free-text match over title, description,
// and tags, optionally restricted to categories and tags.
type SearchQuery struct {
	Query      string
	Categories []string
	Tags       []string
	Limit      *int
}

// Search returns matching records in insertion order. A record matches when
// any whitespace-delimited query token is a case-insensitive substring of
// its searchable text. There is no relevance ranking.
func (s *Store) Search(q SearchQuery) ([]Standard, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.life.Loaded() {
		return nil, ErrStoreNotLoaded
	}

	tokens := strings.Fields(strings.ToLower(q.Query))
	if len(tokens) == 0 {
		return nil, fmt.Errorf("%w: search query is required", ErrInvalidArgument)
	}

	var catSet map[string]bool
	if len(q.Categories) > 0 {
		catSet = make(map[string]bool, len(q.Categories))
		for _, c := range q.Categories {
			catSet[c] = true
		}
	}

	tags := make([]string, 0, len(q.Tags))
	for _, t := range q.Tags {
		if t = strings.ToLower(strings.TrimSpace(t)); t != "" {
			tags = append(tags, t)
		}
	}

	limit := s.cfg.Limits.Clamp(q.Limit)
	results := make([]Standard, 0, limit)
	for _, e := range s.records {
		if catSet != nil && !catSet[e.std.Category] {
			continue
		}
		if len(tags) > 0 && !hasAnyTag(&e.std, tags) {
			continue
		}
		if !matchesAnyToken(e.search, tokens) {
			continue
		}
		results = append(results, e.std)
		if len(results) == limit {
			break
		}
	}
	return results, nil
}

func hasAnyTag(std *Standard, tags []string) bool {
	for _, t := range tags {
		if std.HasTag(t) {
			return true
		}
	}
	return false
}

func matchesAnyToken(search string, tokens []string) bool {
	for _, tok := range tokens {
		if strings.Contains(search, tok) {
			return true
		}
	}
	return false
}

// CategoryInfo describes one distinct category present in the store.
type CategoryInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Count       int    `json:"count"`
}

// placeholderDescription is used when no plugin supplied category metadata.
const placeholderDescription = "No description available"

// Categories enumerates distinct categories in first-seen order with member
// counts and plugin-supplied descriptions.
func (s *Store) Categories() ([]CategoryInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.life.Loaded() {
		return nil, ErrStoreNotLoaded
	}

	infos := make([]CategoryInfo, 0, len(s.catOrder))
	for _, name := range s.catOrder {
		if len(s.byCat[name]) == 0 {
			// Every member was replaced into another category.
			continue
		}
		desc := s.cfg.CategoryDescriptions[name]
		if desc == "" {
			desc = placeholderDescription
		}
		infos = append(infos, CategoryInfo{
			Name:        name,
			Description: desc,
			Count:       len(s.byCat[name]),
		})
	}
	return infos, nil
}

// Get returns the record with the given id, or a NotFoundError.
func (s *Store) Get(id string) (Standard, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.life.Loaded() {
		return Standard{}, ErrStoreNotLoaded
	}

	idx, ok := s.byID[id]
	if !ok {
		return Standard{}, &NotFoundError{ID: id}
	}
	return s.records[idx].std, nil
}

// Count returns the number of loaded records.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// Loaded reports whether LoadAll has completed.
func (s *Store) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.life.Loaded()
}

// State returns the lifecycle state name ("empty" or "loaded").
func (s *Store) State() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.life.Current()
}

// Report returns the load report, or nil before the first LoadAll.
func (s *Store) Report() *LoadReport {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.report
}

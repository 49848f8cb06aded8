// Package application orchestrates catalog loading and wraps store queries
// into the response envelopes served to MCP clients and the CLI.
package application

import (
	"github.com/felixgeelhaar/devstandards/pkg/domain/catalog"
	"github.com/felixgeelhaar/devstandards/pkg/domain/standards"
	"github.com/felixgeelhaar/devstandards/pkg/storage"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// StandardsService answers all catalog queries.
type StandardsService struct {
	store      *standards.Store
	registry   *catalog.Registry
	version    string
	instanceID string
	logger     *zap.Logger
}

// NewStandardsService wires a store and registry into a query service.
func NewStandardsService(store *standards.Store, registry *catalog.Registry, version string, logger *zap.Logger) *StandardsService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StandardsService{
		store:      store,
		registry:   registry,
		version:    version,
		instanceID: uuid.New().String(),
		logger:     logger,
	}
}

// LoadAll ingests every registered CSV source into the store. Idempotent:
// a loaded store returns its original report without touching the files.
func (s *StandardsService) LoadAll() (*standards.LoadReport, error) {
	if s.store.Loaded() {
		return s.store.Report(), nil
	}

	report, err := s.store.LoadAll(storage.Sources(s.registry.Sources()))
	if err != nil {
		return nil, err
	}

	for _, src := range report.SkippedSources {
		s.logger.Warn("skipped unreadable source",
			zap.String("source", src.Source),
			zap.String("reason", src.Reason))
	}
	for _, row := range report.SkippedRows {
		s.logger.Warn("skipped invalid row",
			zap.String("source", row.Source),
			zap.String("row_id", row.RowID),
			zap.Strings("reasons", row.Reasons))
	}
	s.logger.Info("standards loaded",
		zap.Int("records", report.Loaded),
		zap.Int("skipped_rows", len(report.SkippedRows)),
		zap.Int("skipped_sources", len(report.SkippedSources)))

	return report, nil
}

// Registry exposes the plugin registry for CLI reporting.
func (s *StandardsService) Registry() *catalog.Registry {
	return s.registry
}

// Store exposes the underlying store for CLI reporting.
func (s *StandardsService) Store() *standards.Store {
	return s.store
}

// StandardsMetadata annotates a filter result.
type StandardsMetadata struct {
	Total      int            `json:"total"`
	Version    string         `json:"version"`
	InstanceID string         `json:"instance_id"`
	Plugins    []catalog.Info `json:"plugins"`
}

// StandardsResult is the get_standards response envelope.
type StandardsResult struct {
	Standards []standards.Standard `json:"standards"`
	Metadata  StandardsMetadata    `json:"metadata"`
}

// GetStandards filters records by category, subcategory, and severity.
func (s *StandardsService) GetStandards(q standards.FilterQuery) (*StandardsResult, error) {
	results, err := s.store.Filter(q)
	if err != nil {
		return nil, err
	}
	return &StandardsResult{
		Standards: results,
		Metadata: StandardsMetadata{
			Total:      len(results),
			Version:    s.version,
			InstanceID: s.instanceID,
			Plugins:    s.registry.Infos(),
		},
	}, nil
}

// SearchMetadata annotates a search result. CategoriesSearched and
// TagsSearched mirror the requested restrictions, or "all".
type SearchMetadata struct {
	Count              int `json:"count"`
	CategoriesSearched any `json:"categories_searched"`
	TagsSearched       any `json:"tags_searched"`
}

// SearchResult is the search_standards response envelope.
type SearchResult struct {
	Query    string               `json:"query"`
	Results  []standards.Standard `json:"results"`
	Metadata SearchMetadata       `json:"metadata"`
}

// SearchStandards runs a free-text search over the catalog.
func (s *StandardsService) SearchStandards(q standards.SearchQuery) (*SearchResult, error) {
	results, err := s.store.Search(q)
	if err != nil {
		return nil, err
	}
	return &SearchResult{
		Query:   q.Query,
		Results: results,
		Metadata: SearchMetadata{
			Count:              len(results),
			CategoriesSearched: searched(q.Categories),
			TagsSearched:       searched(q.Tags),
		},
	}, nil
}

// CategoriesMetadata annotates a category enumeration.
type CategoriesMetadata struct {
	TotalCategories int `json:"total_categories"`
	TotalStandards  int `json:"total_standards"`
}

// CategoriesResult is the get_categories response envelope.
type CategoriesResult struct {
	Categories []standards.CategoryInfo `json:"categories"`
	Metadata   CategoriesMetadata       `json:"metadata"`
}

// GetCategories enumerates distinct categories with counts.
func (s *StandardsService) GetCategories() (*CategoriesResult, error) {
	categories, err := s.store.Categories()
	if err != nil {
		return nil, err
	}
	return &CategoriesResult{
		Categories: categories,
		Metadata: CategoriesMetadata{
			TotalCategories: len(categories),
			TotalStandards:  s.store.Count(),
		},
	}, nil
}

// StandardResult is the get_standard_by_id response envelope.
type StandardResult struct {
	Standard standards.Standard `json:"standard"`
}

// GetStandardByID resolves one record by id.
func (s *StandardsService) GetStandardByID(id string) (*StandardResult, error) {
	std, err := s.store.Get(id)
	if err != nil {
		return nil, err
	}
	return &StandardResult{Standard: std}, nil
}

func searched(values []string) any {
	if len(values) == 0 {
		return "all"
	}
	return values
}

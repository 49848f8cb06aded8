// Package mcp exposes the standards catalog to MCP clients over four tools.
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/felixgeelhaar/devstandards/internal/application"
	"github.com/felixgeelhaar/devstandards/internal/infrastructure/wiring"
	"github.com/felixgeelhaar/devstandards/pkg/domain/standards"
	"github.com/felixgeelhaar/mcp-go"
	"go.uber.org/zap"
)

// Server wraps the MCP dispatcher around the standards service.
type Server struct {
	mcpServer    *mcp.Server
	standardsSvc *application.StandardsService
}

var (
	Version     = "dev"
	BuildCommit = "unknown"
	BuildDate   = "unknown"
)

// mcpErr returns a user-friendly error for MCP clients.
// Internal details are omitted — only the friendly message is returned.
func mcpErr(friendly string) error {
	return fmt.Errorf("%s", friendly)
}

// NewServer builds the services from the given config path and registers
// the catalog tools.
func NewServer(configPath string, logger *zap.Logger) (*Server, error) {
	services, err := wiring.BuildServices(configPath, Version, logger)
	if err != nil {
		return nil, fmt.Errorf("build services: %w", err)
	}

	info := mcp.ServerInfo{
		Name:    "devstandards",
		Version: Version,
	}

	s := &Server{
		mcpServer: mcp.NewServer(info,
			mcp.WithTitle("DevStandards MCP Server"),
			mcp.WithDescription("DevStandards serves coding standards and best practices from pluggable CSV packs to MCP clients."),
			mcp.WithWebsiteURL("https://github.com/felixgeelhaar/devstandards"),
			mcp.WithBuildInfo(BuildCommit, BuildDate),
			mcp.WithInstructions("Use tools to filter standards by category and severity, search by keyword, enumerate categories, and fetch single standards by id."),
		),
		standardsSvc: services.Standards,
	}

	s.registerTools()
	s.registerSchemaResource()
	return s, nil
}

// FlexInt accepts both integer and string JSON values.
// MCP clients sometimes send string values for integer fields.
type FlexInt int

func (fi *FlexInt) UnmarshalJSON(data []byte) error {
	var i int
	if err := json.Unmarshal(data, &i); err == nil {
		*fi = FlexInt(i)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		var n int
		if _, err := fmt.Sscanf(s, "%d", &n); err == nil {
			*fi = FlexInt(n)
			return nil
		}
	}
	return fmt.Errorf("expected integer or string, got %s", string(data))
}

// GetStandardsArgs filters the catalog by exact field matches.
type GetStandardsArgs struct {
	Category    string  `json:"category,omitempty" jsonschema:"description=Filter by category (e.g. 'drupal_security')"`
	Subcategory string  `json:"subcategory,omitempty" jsonschema:"description=Filter by subcategory (e.g. 'sql_injection')"`
	Severity    string   `json:"severity,omitempty" jsonschema:"description=Filter by severity level (critical, high, medium, low, info)"`
	Limit       *FlexInt `json:"limit,omitempty" jsonschema:"description=Maximum number of results (default: 50)"`
}

// SearchStandardsArgs runs a free-text search over the catalog.
type SearchStandardsArgs struct {
	Query      string   `json:"query" jsonschema:"description=Search text matched against titles, descriptions, and tags"`
	Categories []string `json:"categories,omitempty" jsonschema:"description=Restrict results to these categories"`
	Tags       []string `json:"tags,omitempty" jsonschema:"description=Require at least one of these tags"`
	Limit      *FlexInt `json:"limit,omitempty" jsonschema:"description=Maximum number of results (default: 50)"`
}

// GetStandardArgs fetches a single record.
type GetStandardArgs struct {
	StandardID string `json:"standard_id" jsonschema:"description=The unique identifier of the standard (e.g. 'DS001')"`
}

func (s *Server) registerTools() {
	// Tool: get_standards
	s.mcpServer.Tool("get_standards").
		Description("Get coding standards filtered by category, subcategory, and severity").
		Handler(s.handleGetStandards)

	// Tool: search_standards
	s.mcpServer.Tool("search_standards").
		Description("Search standards by text query, categories, and tags").
		Handler(s.handleSearchStandards)

	// Tool: get_categories
	s.mcpServer.Tool("get_categories").
		Description("Get all available categories and their descriptions").
		Handler(s.handleGetCategories)

	// Tool: get_standard_by_id
	s.mcpServer.Tool("get_standard_by_id").
		Description("Get a specific standard by its ID").
		Handler(s.handleGetStandardByID)
}

func (s *Server) handleGetStandards(ctx context.Context, args GetStandardsArgs) (any, error) {
	result, err := s.standardsSvc.GetStandards(standards.FilterQuery{
		Category:    args.Category,
		Subcategory: args.Subcategory,
		Severity:    args.Severity,
		Limit:       limitArg(args.Limit),
	})
	if err != nil {
		if errors.Is(err, standards.ErrInvalidArgument) {
			return nil, mcpErr(err.Error())
		}
		return nil, mcpErr("Failed to query standards. Check the server data configuration.")
	}
	return result, nil
}

func (s *Server) handleSearchStandards(ctx context.Context, args SearchStandardsArgs) (any, error) {
	result, err := s.standardsSvc.SearchStandards(standards.SearchQuery{
		Query:      args.Query,
		Categories: args.Categories,
		Tags:       args.Tags,
		Limit:      limitArg(args.Limit),
	})
	if err != nil {
		if errors.Is(err, standards.ErrInvalidArgument) {
			return nil, mcpErr(err.Error())
		}
		return nil, mcpErr("Failed to search standards. Check the server data configuration.")
	}
	return result, nil
}

func (s *Server) handleGetCategories(ctx context.Context, args struct{}) (any, error) {
	result, err := s.standardsSvc.GetCategories()
	if err != nil {
		return nil, mcpErr("Failed to enumerate categories. Check the server data configuration.")
	}
	return result, nil
}

func (s *Server) handleGetStandardByID(ctx context.Context, args GetStandardArgs) (any, error) {
	if args.StandardID == "" {
		return nil, mcpErr("standard_id is required.")
	}
	result, err := s.standardsSvc.GetStandardByID(args.StandardID)
	if err != nil {
		if errors.Is(err, standards.ErrStandardNotFound) {
			return nil, mcpErr(fmt.Sprintf("Standard '%s' not found.", args.StandardID))
		}
		return nil, mcpErr("Failed to fetch standard. Check the server data configuration.")
	}
	return result, nil
}

// limitArg converts the tolerant wire value into a domain limit. A nil value
// means the client did not constrain the result; an explicit zero is kept and
// clamps to the minimum downstream.
func limitArg(v *FlexInt) *int {
	if v == nil {
		return nil
	}
	n := int(*v)
	return &n
}

func (s *Server) Start() error {
	return s.StartStdio()
}

func (s *Server) StartStdio() error {
	return s.ServeStdio(context.Background())
}

func (s *Server) StartHTTP(addr string) error {
	return s.ServeHTTP(context.Background(), addr)
}

func (s *Server) StartWebSocket(addr string) error {
	return s.ServeWebSocket(context.Background(), addr)
}

func (s *Server) ServeStdio(ctx context.Context) error {
	return mcp.ServeStdio(ctx, s.mcpServer)
}

func (s *Server) ServeHTTP(ctx context.Context, addr string) error {
	return mcp.ServeHTTP(ctx, s.mcpServer, addr, mcp.WithDefaultCORS())
}

func (s *Server) ServeWebSocket(ctx context.Context, addr string) error {
	return mcp.ServeWebSocket(ctx, s.mcpServer, addr)
}

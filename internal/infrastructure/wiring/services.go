// Package wiring constructs the application services from configuration.
package wiring

import (
	"fmt"

	"github.com/felixgeelhaar/devstandards/internal/application"
	"github.com/felixgeelhaar/devstandards/internal/infrastructure/config"
	"github.com/felixgeelhaar/devstandards/pkg/domain/catalog"
	"github.com/felixgeelhaar/devstandards/pkg/domain/standards"
	"go.uber.org/zap"
)

// Services bundles everything the CLI and MCP layers need.
type Services struct {
	Config    *config.Config
	Registry  *catalog.Registry
	Standards *application.StandardsService
}

// BuildServices loads configuration, builds the registry and store, and
// performs the one explicit catalog load. The store is LOADED (possibly
// empty) when this returns without error.
func BuildServices(configPath, version string, logger *zap.Logger) (*Services, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	registry, err := cfg.BuildRegistry()
	if err != nil {
		return nil, fmt.Errorf("build registry: %w", err)
	}

	store, err := standards.NewStore(standards.StoreConfig{
		DuplicatePolicy:      standards.DuplicatePolicy(cfg.DuplicatePolicy),
		Limits:               cfg.Limits,
		CategoryDescriptions: registry.CategoryDescriptions(),
	})
	if err != nil {
		return nil, fmt.Errorf("build store: %w", err)
	}

	svc := application.NewStandardsService(store, registry, version, logger)
	if _, err := svc.LoadAll(); err != nil {
		return nil, fmt.Errorf("load standards: %w", err)
	}

	return &Services{
		Config:    cfg,
		Registry:  registry,
		Standards: svc,
	}, nil
}

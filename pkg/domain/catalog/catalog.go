// Package catalog defines the static plugin registry: which standards packs
// exist, where their CSV sources live, and what their categories mean.
// The registry is built once at startup and injected into the store; there
// is no runtime plugin discovery.
package catalog

// Plugin describes one standards pack.
type Plugin struct {
	// Name is the plugin identifier (e.g. "drupal").
	Name string `yaml:"name" json:"name"`
	// Version is the pack version.
	Version string `yaml:"version" json:"version"`
	// Description is a short human-readable summary.
	Description string `yaml:"description" json:"description"`
	// DataDir is the directory holding the pack's CSV files.
	DataDir string `yaml:"data_dir" json:"data_dir"`
	// Categories maps category names owned by this pack to descriptions.
	Categories map[string]string `yaml:"categories" json:"categories"`
	// Sources are the resolved CSV file paths, in load order.
	Sources []string `yaml:"-" json:"sources"`
}

// Info is the plugin summary reported in query response metadata.
type Info struct {
	Name        string `json:"name"`
	Version     string `json:"version"`
	Description string `json:"description"`
}

// Registry holds all configured plugins in declaration order.
type Registry struct {
	plugins []Plugin
}

// NewRegistry builds a registry from the given plugins, preserving order.
func NewRegistry(plugins ...Plugin) *Registry {
	return &Registry{plugins: plugins}
}

// Plugins returns the plugins in declaration order.
func (r *Registry) Plugins() []Plugin {
	return r.plugins
}

// Get returns the named plugin, or nil if not registered.
func (r *Registry) Get(name string) *Plugin {
	for i := range r.plugins {
		if r.plugins[i].Name == name {
			return &r.plugins[i]
		}
	}
	return nil
}

// Infos returns the metadata summaries in declaration order.
func (r *Registry) Infos() []Info {
	infos := make([]Info, 0, len(r.plugins))
	for _, p := range r.plugins {
		infos = append(infos, Info{
			Name:        p.Name,
			Version:     p.Version,
			Description: p.Description,
		})
	}
	return infos
}

// Sources returns every resolved CSV path across all plugins, in declaration
// then resolution order. Load order decides which record wins on duplicate
// ids under the replace policy.
func (r *Registry) Sources() []string {
	var paths []string
	for _, p := range r.plugins {
		paths = append(paths, p.Sources...)
	}
	return paths
}

// CategoryDescriptions merges every plugin's category metadata. When two
// plugins describe the same category, the first declaration wins.
func (r *Registry) CategoryDescriptions() map[string]string {
	merged := make(map[string]string)
	for _, p := range r.plugins {
		for name, desc := range p.Categories {
			if _, ok := merged[name]; !ok {
				merged[name] = desc
			}
		}
	}
	return merged
}

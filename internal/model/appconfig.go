package model

// AppConfig holds user-level application preferences persisted between runs.
type AppConfig struct {
	Settings       Settings        `json:"settings"`
	Grouping       GroupingOptions `json:"grouping"`
	Targets        []float64       `json:"targets"`
	RecentProjects []string        `json:"recent_projects"`
	LastImportDir  string          `json:"last_import_dir,omitempty"`
	LastExportDir  string          `json:"last_export_dir,omitempty"`
}

// DefaultAppConfig returns the configuration used on first run.
func DefaultAppConfig() AppConfig {
	return AppConfig{
		Settings:       DefaultSettings(),
		Grouping:       DefaultGroupingOptions(),
		Targets:        append([]float64(nil), DefaultTargets...),
		RecentProjects: []string{},
	}
}

// maxRecentProjects bounds the recent-projects list.
const maxRecentProjects = 10

// AddRecentProject prepends a project path to the recent list, dropping
// duplicates and truncating to the configured maximum.
func (c *AppConfig) AddRecentProject(path string) {
	recent := []string{path}
	for _, p := range c.RecentProjects {
		if p != path {
			recent = append(recent, p)
		}
	}
	if len(recent) > maxRecentProjects {
		recent = recent[:maxRecentProjects]
	}
	c.RecentProjects = recent
}

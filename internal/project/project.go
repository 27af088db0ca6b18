package project

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/barcut/barcut/internal/model"
)

// StockpileAssignment binds a set of demanded lengths to one diameter group.
type StockpileAssignment struct {
	Diameter float64                 `json:"diameter"`
	Records  []model.StockpileRecord `json:"records"`
}

// Project is a saved optimization session: the inventory, the commercial
// target lengths, per-diameter stockpile demand and the settings to run with.
type Project struct {
	Version    string                  `json:"version"`
	Name       string                  `json:"name"`
	CreatedAt  string                  `json:"created_at"`
	UpdatedAt  string                  `json:"updated_at"`
	Records    []model.InventoryRecord `json:"records"`
	Targets    []float64               `json:"targets"`
	Stockpiles []StockpileAssignment   `json:"stockpiles,omitempty"`
	Settings   model.Settings          `json:"settings"`
	Grouping   model.GroupingOptions   `json:"grouping"`
}

const projectVersion = "1.0.0"

// NewProject creates an empty project with default settings.
func NewProject(name string) Project {
	now := time.Now().UTC().Format(time.RFC3339)
	return Project{
		Version:   projectVersion,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
		Targets:   append([]float64(nil), model.DefaultTargets...),
		Settings:  model.DefaultSettings(),
		Grouping:  model.DefaultGroupingOptions(),
	}
}

// SaveProject writes the project to the specified JSON file, stamping the
// update time. It creates parent directories if they do not exist.
func SaveProject(path string, p Project) error {
	if p.Version == "" {
		p.Version = projectVersion
	}
	p.UpdatedAt = time.Now().UTC().Format(time.RFC3339)

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadProject reads a project from the specified JSON file.
func LoadProject(path string) (Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Project{}, fmt.Errorf("failed to read project file: %w", err)
	}
	var p Project
	if err := json.Unmarshal(data, &p); err != nil {
		return Project{}, fmt.Errorf("failed to parse project file: %w", err)
	}
	if p.Version == "" {
		return Project{}, errors.New("invalid project file: missing version field")
	}
	if p.Targets == nil {
		p.Targets = append([]float64(nil), model.DefaultTargets...)
	}
	return p, nil
}

// Stockpile returns the stockpile records assigned to a diameter, or nil.
func (p Project) Stockpile(diameter float64) []model.StockpileRecord {
	for _, a := range p.Stockpiles {
		if a.Diameter == diameter {
			return a.Records
		}
	}
	return nil
}

// SetStockpile replaces the stockpile assignment for a diameter.
func (p *Project) SetStockpile(diameter float64, records []model.StockpileRecord) {
	for i, a := range p.Stockpiles {
		if a.Diameter == diameter {
			p.Stockpiles[i].Records = records
			return
		}
	}
	p.Stockpiles = append(p.Stockpiles, StockpileAssignment{Diameter: diameter, Records: records})
}

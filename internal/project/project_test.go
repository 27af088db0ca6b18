package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/barcut/barcut/internal/model"
)

func TestSaveAndLoadAppConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	cfg := model.DefaultAppConfig()
	cfg.Settings.Tolerance = 0.5
	cfg.Settings.Workers = 8
	cfg.Targets = []float64{12, 9}
	cfg.RecentProjects = []string{"/tmp/site-a.json", "/tmp/site-b.json"}

	if err := SaveAppConfig(path, cfg); err != nil {
		t.Fatalf("SaveAppConfig failed: %v", err)
	}

	loaded, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("LoadAppConfig failed: %v", err)
	}

	if loaded.Settings.Tolerance != 0.5 {
		t.Errorf("expected Tolerance=0.5, got %f", loaded.Settings.Tolerance)
	}
	if loaded.Settings.Workers != 8 {
		t.Errorf("expected Workers=8, got %d", loaded.Settings.Workers)
	}
	if len(loaded.Targets) != 2 {
		t.Errorf("expected 2 targets, got %d", len(loaded.Targets))
	}
	if len(loaded.RecentProjects) != 2 {
		t.Errorf("expected 2 recent projects, got %d", len(loaded.RecentProjects))
	}
}

func TestLoadAppConfigMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nonexistent", "config.json")

	cfg, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("expected no error for missing file, got: %v", err)
	}

	defaults := model.DefaultAppConfig()
	if cfg.Settings.ToleranceStep != defaults.Settings.ToleranceStep {
		t.Errorf("expected default tolerance step %f, got %f",
			defaults.Settings.ToleranceStep, cfg.Settings.ToleranceStep)
	}
	if len(cfg.Targets) == 0 {
		t.Error("expected default targets to be populated")
	}
}

func TestLoadAppConfigInvalidJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	if err := os.WriteFile(path, []byte("not valid json{{{"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadAppConfig(path); err == nil {
		t.Fatal("expected error for invalid JSON, got nil")
	}
}

func TestLoadAppConfigNilSlices(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	data := []byte(`{"settings":{"tolerance":0},"recent_projects":null,"targets":null}`)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("LoadAppConfig failed: %v", err)
	}
	if cfg.RecentProjects == nil {
		t.Error("RecentProjects should not be nil after loading")
	}
	if len(cfg.Targets) == 0 {
		t.Error("Targets should fall back to defaults after loading")
	}
}

func TestAddRecentProject(t *testing.T) {
	cfg := model.DefaultAppConfig()
	cfg.AddRecentProject("/tmp/a.json")
	cfg.AddRecentProject("/tmp/b.json")
	cfg.AddRecentProject("/tmp/a.json") // moves to front, no duplicate

	if len(cfg.RecentProjects) != 2 {
		t.Fatalf("expected 2 recent projects, got %d", len(cfg.RecentProjects))
	}
	if cfg.RecentProjects[0] != "/tmp/a.json" {
		t.Errorf("expected most recent first, got %q", cfg.RecentProjects[0])
	}

	for i := 0; i < 20; i++ {
		cfg.AddRecentProject(filepath.Join("/tmp", "p"+string(rune('a'+i))+".json"))
	}
	if len(cfg.RecentProjects) > 10 {
		t.Errorf("recent projects should be capped at 10, got %d", len(cfg.RecentProjects))
	}
}

func buildTestProject() Project {
	p := NewProject("Bridge deck phase 2")
	p.Records = []model.InventoryRecord{
		{Length: 6.0, Pieces: 40, Diameter: 12},
		{Length: 3.5, Pieces: 25, Diameter: 12},
		{Length: 5.0, Pieces: 10, Diameter: 16},
	}
	p.Targets = []float64{12, 10.5}
	p.SetStockpile(12, []model.StockpileRecord{
		{Length: 4.5, Quantity: 3},
	})
	return p
}

func TestSaveAndLoadProject(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bridge.json")

	if err := SaveProject(path, buildTestProject()); err != nil {
		t.Fatalf("SaveProject failed: %v", err)
	}

	loaded, err := LoadProject(path)
	if err != nil {
		t.Fatalf("LoadProject failed: %v", err)
	}

	if loaded.Name != "Bridge deck phase 2" {
		t.Errorf("expected project name to round-trip, got %q", loaded.Name)
	}
	if len(loaded.Records) != 3 {
		t.Errorf("expected 3 records, got %d", len(loaded.Records))
	}
	if len(loaded.Targets) != 2 {
		t.Errorf("expected 2 targets, got %d", len(loaded.Targets))
	}
	sp := loaded.Stockpile(12)
	if len(sp) != 1 || sp[0].Length != 4.5 || sp[0].Quantity != 3 {
		t.Errorf("stockpile assignment did not round-trip: %+v", sp)
	}
	if loaded.Stockpile(16) != nil {
		t.Error("expected no stockpile for diameter 16")
	}
	if loaded.UpdatedAt == "" {
		t.Error("expected UpdatedAt to be stamped on save")
	}
}

func TestSaveProjectCreatesDirectories(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sub", "dir", "proj.json")

	if err := SaveProject(path, NewProject("nested")); err != nil {
		t.Fatalf("SaveProject should create parent dirs: %v", err)
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Fatal("project file was not created")
	}
}

func TestLoadProjectMissingVersion(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.json")

	if err := os.WriteFile(path, []byte(`{"name":"x"}`), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadProject(path); err == nil {
		t.Fatal("expected error for project without version, got nil")
	}
}

func TestLoadProjectMissingFile(t *testing.T) {
	if _, err := LoadProject(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatal("expected error for missing project file, got nil")
	}
}

func TestSetStockpileReplacesExisting(t *testing.T) {
	p := buildTestProject()
	p.SetStockpile(12, []model.StockpileRecord{
		{Length: 2.25, Quantity: 8},
	})

	sp := p.Stockpile(12)
	if len(sp) != 1 || sp[0].Length != 2.25 {
		t.Errorf("expected stockpile to be replaced, got %+v", sp)
	}
	if len(p.Stockpiles) != 1 {
		t.Errorf("expected a single assignment for diameter 12, got %d", len(p.Stockpiles))
	}
}

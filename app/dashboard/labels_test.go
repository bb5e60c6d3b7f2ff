package dashboard

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadLabelsEmptyPath(t *testing.T) {
	labels, err := LoadLabels("")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if labels != DefaultLabels() {
		t.Error("Expected default labels for empty path")
	}
}

func TestLoadLabelsOverrides(t *testing.T) {
	tempDir := t.TempDir()

	content := `
title: "Robot Weekly"
byline: "Strategy team"
no_priority: "Nothing critical"
`

	path := filepath.Join(tempDir, "labels.yml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	labels, err := LoadLabels(path)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if labels.Title != "Robot Weekly" {
		t.Errorf("Expected title 'Robot Weekly', got '%s'", labels.Title)
	}
	if labels.Byline != "Strategy team" {
		t.Errorf("Expected byline 'Strategy team', got '%s'", labels.Byline)
	}
	if labels.NoPriority != "Nothing critical" {
		t.Errorf("Expected no_priority override, got '%s'", labels.NoPriority)
	}
	if labels.NoNormal != DefaultLabels().NoNormal {
		t.Errorf("Expected default no_normal, got '%s'", labels.NoNormal)
	}
	if labels.Warning != DefaultLabels().Warning {
		t.Errorf("Expected default warning, got '%s'", labels.Warning)
	}
}

func TestLoadLabelsMissingFile(t *testing.T) {
	_, err := LoadLabels(filepath.Join(t.TempDir(), "missing.yml"))
	if err == nil {
		t.Error("Expected error for missing labels file")
	}
}

func TestLoadLabelsInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "labels.yml")
	if err := os.WriteFile(path, []byte("title: [unclosed"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadLabels(path)
	if err == nil {
		t.Error("Expected error for invalid YAML")
	}
}

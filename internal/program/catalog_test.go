package program

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCatalogSeedPrograms(t *testing.T) {
	c := NewCatalog()

	p, err := c.Program(GeneralID)
	if err != nil {
		t.Fatalf("general program: %v", err)
	}
	if p.GuidedQuestions.Enabled {
		t.Error("general program should not have guided questions enabled")
	}

	p, err = c.Program("study-skills")
	if err != nil {
		t.Fatalf("study-skills program: %v", err)
	}
	if !p.GuidedQuestions.Enabled {
		t.Error("study-skills should have guided questions enabled")
	}
	if p.GuidedQuestions.FreeAttempts <= 0 {
		t.Error("study-skills should have free attempts")
	}
	if len(p.GuidedQuestions.Questions) <= p.GuidedQuestions.FreeAttempts {
		t.Error("study-skills should have locked questions past the free threshold")
	}
}

func TestCatalogUnknownProgram(t *testing.T) {
	c := NewCatalog()
	if _, err := c.Program("no-such-program"); err == nil {
		t.Fatal("expected error for unknown program")
	}
}

func TestCatalogExtraOverridesSeed(t *testing.T) {
	override := Program{
		ID:   "study-skills",
		Name: "Custom Study Skills",
	}
	c := NewCatalog(override)

	p, err := c.Program("study-skills")
	if err != nil {
		t.Fatalf("program: %v", err)
	}
	if p.Name != "Custom Study Skills" {
		t.Errorf("name = %q, want override", p.Name)
	}

	// Order is preserved: overriding must not duplicate the entry.
	seen := 0
	for _, p := range c.All() {
		if p.ID == "study-skills" {
			seen++
		}
	}
	if seen != 1 {
		t.Errorf("study-skills appears %d times, want 1", seen)
	}
}

func TestLoadFileValid(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.json")
	content := `{
		"id": "custom",
		"name": "Custom Program",
		"description": "test",
		"guided_questions": {
			"enabled": true,
			"free_attempts": 1,
			"questions": [
				{"question": "Q1?", "answer": "A1"},
				{"question": "Q2?", "answer": "A2"}
			]
		}
	}`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	p, err := LoadFile(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if p.ID != "custom" {
		t.Errorf("id = %q, want custom", p.ID)
	}
	if len(p.GuidedQuestions.Questions) != 2 {
		t.Errorf("questions = %d, want 2", len(p.GuidedQuestions.Questions))
	}
}

func TestLoadFileRejectsInvalid(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		content string
	}{
		{"missing id", `{"name": "X"}`},
		{"missing name", `{"id": "x"}`},
		{"enabled without questions", `{"id": "x", "name": "X", "guided_questions": {"enabled": true}}`},
		{"empty answer", `{"id": "x", "name": "X", "guided_questions": {"enabled": true, "questions": [{"question": "Q?", "answer": " "}]}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, "bad.json")
			if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
				t.Fatal(err)
			}
			if _, err := LoadFile(path); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestLoadDirMissingIsNotError(t *testing.T) {
	programs, err := LoadDir(filepath.Join(t.TempDir(), "nope"))
	if err != nil {
		t.Fatalf("missing dir: %v", err)
	}
	if programs != nil {
		t.Error("expected nil programs for missing dir")
	}
}

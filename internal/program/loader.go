package program

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// LoadFile reads a single program definition from a JSON file.
func LoadFile(path string) (*Program, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read program file: %w", err)
	}

	var p Program
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse program file %s: %w", filepath.Base(path), err)
	}

	if err := validate(&p); err != nil {
		return nil, fmt.Errorf("program file %s: %w", filepath.Base(path), err)
	}
	return &p, nil
}

// LoadDir loads every *.json program file in dir, sorted by filename.
// A missing directory is not an error — local programs are optional.
func LoadDir(dir string) ([]Program, error) {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read program dir: %w", err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	var programs []Program
	for _, name := range names {
		p, err := LoadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		programs = append(programs, *p)
	}
	return programs, nil
}

func validate(p *Program) error {
	if p.ID == "" {
		return fmt.Errorf("missing id")
	}
	if p.Name == "" {
		return fmt.Errorf("missing name")
	}
	gq := p.GuidedQuestions
	if gq.FreeAttempts < 0 {
		return fmt.Errorf("free_attempts must be >= 0")
	}
	if gq.Enabled && len(gq.Questions) == 0 {
		return fmt.Errorf("guided questions enabled but none defined")
	}
	for i, q := range gq.Questions {
		if strings.TrimSpace(q.Question) == "" {
			return fmt.Errorf("question %d: empty question text", i)
		}
		if strings.TrimSpace(q.Answer) == "" {
			return fmt.Errorf("question %d: empty answer text", i)
		}
	}
	return nil
}

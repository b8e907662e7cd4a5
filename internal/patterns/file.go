package patterns

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/framelife/internal/core"
)

// fileSpec is the on-disk form of a pattern. Shapes are given either as
// rows of text, where 'O', '#' or '*' mark live cells, or as [x, y] pairs.
type fileSpec struct {
	Name  string   `yaml:"name"`
	Title string   `yaml:"title"`
	Rows  []string `yaml:"rows"`
	Cells [][]int  `yaml:"cells"`
}

// Parse decodes a YAML pattern document.
func Parse(data []byte) (Pattern, error) {
	var doc fileSpec
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Pattern{}, fmt.Errorf("patterns: cannot parse pattern: %w", err)
	}
	if doc.Name == "" {
		return Pattern{}, errors.New("patterns: pattern has no name")
	}

	p := Pattern{Name: doc.Name, Title: doc.Title}
	for y, row := range doc.Rows {
		// x counts characters, not bytes
		for x, r := range []rune(row) {
			switch r {
			case 'O', 'o', '#', '*':
				p.Cells = append(p.Cells, core.P(x, y))
			}
		}
	}
	for i, xy := range doc.Cells {
		if len(xy) != 2 || xy[0] < 0 || xy[1] < 0 {
			return Pattern{}, fmt.Errorf("patterns: %s: cell %d must be a non-negative [x, y] pair", doc.Name, i)
		}
		p.Cells = append(p.Cells, core.P(xy[0], xy[1]))
	}
	if len(p.Cells) == 0 {
		return Pattern{}, fmt.Errorf("patterns: %s: no live cells", doc.Name)
	}
	if p.Title == "" {
		p.Title = p.Name
	}
	return p, nil
}

// LoadFile reads and parses a single pattern file.
func LoadFile(path string) (Pattern, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Pattern{}, fmt.Errorf("patterns: cannot read %s: %w", path, err)
	}
	p, err := Parse(data)
	if err != nil {
		return Pattern{}, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// LoadDir loads every .yaml or .yml file below root.
func LoadDir(root string) ([]Pattern, error) {
	var out []Pattern
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		if ext != ".yaml" && ext != ".yml" {
			return nil
		}
		p, err := LoadFile(path)
		if err != nil {
			return err
		}
		out = append(out, p)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// RegisterDir loads the patterns below root and adds them to the catalog.
// It stops at the first file that fails to load or clashes with a registered
// name, returning how many patterns were added before that.
func RegisterDir(root string) (int, error) {
	loaded, err := LoadDir(root)
	if err != nil {
		return 0, err
	}
	for i, p := range loaded {
		if err := add(p); err != nil {
			return i, err
		}
	}
	return len(loaded), nil
}

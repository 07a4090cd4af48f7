package socialimages

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/root4loot/goutils/log"
	"gopkg.in/yaml.v2"
)

// Page describes the preview image of a single page.
type Page struct {
	Title    string    `json:"title" yaml:"title"`       // Inserted as HTML
	Cover    string    `json:"cover" yaml:"cover"`       // Background image URL
	ImgName  string    `json:"imgName" yaml:"imgName"`   // Output file name without extension
	BhkSpecs []Feature `json:"bhkSpecs" yaml:"bhkSpecs"` // Optional feature list
}

// Feature is one icon and label entry of a page's feature grid.
type Feature struct {
	Icon string `json:"icon" yaml:"icon"`
	Size string `json:"size" yaml:"size"`
	Unit string `json:"unit" yaml:"unit"`
	Key  string `json:"key" yaml:"key"`
}

// UnmarshalJSON accepts numbers as well as strings for size, unit and key.
func (f *Feature) UnmarshalJSON(data []byte) error {
	var raw struct {
		Icon string          `json:"icon"`
		Size json.RawMessage `json:"size"`
		Unit json.RawMessage `json:"unit"`
		Key  json.RawMessage `json:"key"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	f.Icon = raw.Icon
	for _, field := range []struct {
		dst *string
		src json.RawMessage
	}{{&f.Size, raw.Size}, {&f.Unit, raw.Unit}, {&f.Key, raw.Key}} {
		s, err := scalarString(field.src)
		if err != nil {
			return err
		}
		*field.dst = s
	}
	return nil
}

// scalarString renders a JSON scalar as text. Absent and null become "".
func scalarString(raw json.RawMessage) (string, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return "", nil
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, nil
	}

	var v interface{}
	if err := json.Unmarshal(raw, &v); err != nil {
		return "", err
	}
	switch v.(type) {
	case float64, bool:
		return strings.TrimSpace(string(raw)), nil
	}
	return "", fmt.Errorf("expected a string or number, got %s", raw)
}

// LoadPages reads the page list at path. Files ending in .yaml or .yml are
// decoded as YAML, everything else as JSON.
func LoadPages(path string) ([]Page, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDataFile, err)
	}

	var pages []Page
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &pages)
	default:
		err = json.Unmarshal(data, &pages)
	}
	if err != nil {
		return nil, fmt.Errorf("error parsing %s: %w", path, err)
	}

	log.Debugf("Loaded %d pages from %s", len(pages), path)
	return pages, nil
}

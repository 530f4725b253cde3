package importer

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alexanderramin/cyclesync/internal/domain"
	yaml "go.yaml.in/yaml/v3"
)

//go:embed default_catalog.yaml
var defaultCatalog []byte

// Catalog is the top-level structure of an activity catalog file.
type Catalog struct {
	Version    int              `json:"version,omitempty"`
	Activities []ActivityImport `json:"activities"`
}

// ActivityImport is one catalog entry as written in the file.
type ActivityImport struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Type            string   `json:"type"`
	Phases          []string `json:"phases"`
	DurationMinutes *int     `json:"duration_minutes,omitempty"`
	Description     string   `json:"description,omitempty"`
	Emoji           string   `json:"emoji,omitempty"`
	ArticleURL      string   `json:"article_url,omitempty"`
	Benefits        []string `json:"benefits,omitempty"`
}

// LoadCatalog reads a catalog from a .yaml, .yml or .json file.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog: %w", err)
	}
	format := "json"
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		format = "yaml"
	}
	return ParseCatalog(data, format)
}

// DefaultCatalog returns the catalog shipped with the binary.
func DefaultCatalog() (*Catalog, error) {
	return ParseCatalog(defaultCatalog, "yaml")
}

// ParseCatalog decodes data in the given format ("yaml" or "json").
// Unknown fields are rejected in both formats.
func ParseCatalog(data []byte, format string) (*Catalog, error) {
	if format == "yaml" {
		var err error
		if data, err = yamlToJSON(data); err != nil {
			return nil, err
		}
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	var c Catalog
	if err := dec.Decode(&c); err != nil {
		return nil, fmt.Errorf("decoding catalog: %w", err)
	}
	return &c, nil
}

// yamlToJSON lets YAML share the strict JSON decoder.
func yamlToJSON(data []byte) ([]byte, error) {
	var v any
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("yaml unmarshal: %w", err)
	}
	j, err := json.Marshal(normalizeYAML(v))
	if err != nil {
		return nil, fmt.Errorf("yaml->json marshal: %w", err)
	}
	return j, nil
}

// normalizeYAML turns every map key into a string so the tree is JSON-safe.
func normalizeYAML(in any) any {
	switch x := in.(type) {
	case map[any]any:
		m := make(map[string]any, len(x))
		for k, v := range x {
			m[fmt.Sprint(k)] = normalizeYAML(v)
		}
		return m
	case map[string]any:
		for k, v := range x {
			x[k] = normalizeYAML(v)
		}
		return x
	case []any:
		for i := range x {
			x[i] = normalizeYAML(x[i])
		}
		return x
	default:
		return in
	}
}

// ToActivities converts a validated catalog into domain activities.
func (c *Catalog) ToActivities() ([]*domain.Activity, error) {
	out := make([]*domain.Activity, 0, len(c.Activities))
	for i, ai := range c.Activities {
		typ, err := domain.ParseActivityType(ai.Type)
		if err != nil {
			return nil, fmt.Errorf("activities[%d]: %w", i, err)
		}
		phases := make([]domain.Phase, 0, len(ai.Phases))
		for _, p := range ai.Phases {
			ph, err := domain.ParsePhase(p)
			if err != nil {
				return nil, fmt.Errorf("activities[%d]: %w", i, err)
			}
			phases = append(phases, ph)
		}
		out = append(out, &domain.Activity{
			ID:              strings.TrimSpace(ai.ID),
			Name:            strings.TrimSpace(ai.Name),
			Type:            typ,
			Phases:          phases,
			DurationMinutes: domain.IntFromPtrWithDefault(0, ai.DurationMinutes),
			Description:     ai.Description,
			Emoji:           ai.Emoji,
			ArticleURL:      ai.ArticleURL,
			Benefits:        ai.Benefits,
		})
	}
	return out, nil
}

// Package voices holds the catalog of narration voices offered to the user.
package voices

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Voice describes one selectable narration voice. ProviderID is the backend
// identifier the synthesis service expects; ID is the stable catalog handle
// exposed to the presentation layer.
type Voice struct {
	ID         string `yaml:"id" json:"id"`
	Name       string `yaml:"name" json:"name"`
	Gender     string `yaml:"gender,omitempty" json:"gender,omitempty"`
	Language   string `yaml:"language,omitempty" json:"language,omitempty"`
	PreviewURL string `yaml:"preview_url,omitempty" json:"preview_url,omitempty"`
	ProviderID string `yaml:"provider_id,omitempty" json:"-"`
}

// Catalog is the loaded voice list.
type Catalog struct {
	Voices []Voice `yaml:"voices"`
}

// Load reads a catalog from the YAML file at path. An empty path yields the
// built-in default catalog.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default(), nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("voices: read catalog: %w", err)
	}
	var c Catalog
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("voices: parse catalog: %w", err)
	}
	if len(c.Voices) == 0 {
		return nil, fmt.Errorf("voices: catalog %s lists no voices", path)
	}
	for i, v := range c.Voices {
		if v.ID == "" {
			return nil, fmt.Errorf("voices: catalog entry %d has no id", i)
		}
	}
	return &c, nil
}

// Default returns the built-in catalog used when no file is configured.
func Default() *Catalog {
	return &Catalog{Voices: []Voice{
		{ID: "rachel", Name: "Rachel", Gender: "female", Language: "en-US", ProviderID: "21m00Tcm4TlvDq8ikWAM"},
		{ID: "adam", Name: "Adam", Gender: "male", Language: "en-US", ProviderID: "ErXwobaYiN019PkySvjV"},
		{ID: "bella", Name: "Bella", Gender: "female", Language: "en-GB", ProviderID: "EXAVITQu4vr4xnSDxMaL"},
	}}
}

// Find returns the voice with the given catalog ID.
func (c *Catalog) Find(id string) (Voice, bool) {
	for _, v := range c.Voices {
		if v.ID == id {
			return v, true
		}
	}
	return Voice{}, false
}

// Resolve maps a catalog ID onto the backend voice identifier, satisfying the
// gateway's voice resolver contract. Unknown IDs pass through unchanged.
func (c *Catalog) Resolve(id string) (string, bool) {
	v, ok := c.Find(id)
	if !ok || v.ProviderID == "" {
		return "", false
	}
	return v.ProviderID, true
}

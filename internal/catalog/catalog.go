// Package catalog loads the calm room list from a YAML document.
package catalog

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed rooms.yaml
var defaultDocument []byte

// Noise and light labels accepted in room documents.
var (
	NoiseLevels = []string{"CALMO", "MODERADO", "MÁXIMO"}
	LightLevels = []string{"BAIXA", "MÉDIA", "ALTA"}
)

// Room is one catalog entry as written in the document.
type Room struct {
	ID       string `yaml:"id"`
	Name     string `yaml:"name"`
	Noise    string `yaml:"ruido"`
	Light    string `yaml:"luz"`
	Location string `yaml:"local"`
	Reserved bool   `yaml:"reserved"`
}

type document struct {
	Rooms []Room `yaml:"rooms"`
}

// Default returns the embedded catalog.
func Default() ([]Room, error) {
	return Parse(defaultDocument)
}

// Load reads the catalog at path. An empty path selects the embedded catalog.
func Load(path string) ([]Room, error) {
	if strings.TrimSpace(path) == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes and validates a catalog document.
func Parse(data []byte) ([]Room, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("catalog: decode: %w", err)
	}

	seen := make(map[string]bool, len(doc.Rooms))
	for i, room := range doc.Rooms {
		switch {
		case strings.TrimSpace(room.ID) == "":
			return nil, fmt.Errorf("catalog: room %d has no id", i)
		case seen[room.ID]:
			return nil, fmt.Errorf("catalog: duplicate room id %q", room.ID)
		case strings.TrimSpace(room.Name) == "":
			return nil, fmt.Errorf("catalog: room %q has no name", room.ID)
		case !oneOf(room.Noise, NoiseLevels):
			return nil, fmt.Errorf("catalog: room %q has unknown ruido %q", room.ID, room.Noise)
		case !oneOf(room.Light, LightLevels):
			return nil, fmt.Errorf("catalog: room %q has unknown luz %q", room.ID, room.Light)
		}
		seen[room.ID] = true
	}
	return doc.Rooms, nil
}

func oneOf(value string, allowed []string) bool {
	for _, candidate := range allowed {
		if value == candidate {
			return true
		}
	}
	return false
}

package main

import (
	"fmt"
	"io"
	"os"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"closures/backend/internal/service/closures"
	"closures/backend/internal/store"
)

// presetFile is the YAML document exchanged by `apply` and `presets import`.
// closureDetails use the same keys as the JSON API. Files without a
// schemaVersion run through every upgrade step, which leaves current-shape
// details unchanged and converts legacy keys such as roundUpTo.
type presetFile struct {
	SchemaVersion int           `yaml:"schemaVersion"`
	Presets       []presetEntry `yaml:"presets"`
}

type presetEntry struct {
	Name           string    `yaml:"name"`
	Description    string    `yaml:"description"`
	ClosureDetails yaml.Node `yaml:"closureDetails"`
}

func readPresetFile(path string) ([]closures.PresetInput, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return decodePresetFile(f)
}

func decodePresetFile(r io.Reader) ([]closures.PresetInput, error) {
	var doc presetFile
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode preset file: %w", err)
	}
	version := doc.SchemaVersion
	if version == 0 {
		version = 1
	}

	out := make([]closures.PresetInput, 0, len(doc.Presets))
	for i, entry := range doc.Presets {
		var raw map[string]any
		if err := entry.ClosureDetails.Decode(&raw); err != nil {
			return nil, fmt.Errorf("preset %d (%s): %w", i, entry.Name, err)
		}
		b, err := json.Marshal(raw)
		if err != nil {
			return nil, fmt.Errorf("preset %d (%s): %w", i, entry.Name, err)
		}
		details, err := store.DecodeClosureDetails(version, b)
		if err != nil {
			return nil, fmt.Errorf("preset %d (%s): %w", i, entry.Name, err)
		}
		out = append(out, closures.PresetInput{
			Name:           entry.Name,
			Description:    entry.Description,
			ClosureDetails: details,
		})
	}
	return out, nil
}

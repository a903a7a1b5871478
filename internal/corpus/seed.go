package corpus

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed data/seed.yaml
var defaultSeed []byte

// SeedTable is the static description the corpus is expanded from.
type SeedTable struct {
	Version    int             `yaml:"version"`
	Archetypes []ArchetypeSeed `yaml:"archetypes"`
	Contexts   []ContextSeed   `yaml:"contexts"`
}

// ArchetypeSeed frames every scenario of one archetype.
type ArchetypeSeed struct {
	ID      string `yaml:"id"`
	Framing string `yaml:"framing"`
}

// ContextSeed groups the situations of one situational context.
type ContextSeed struct {
	ID         string          `yaml:"id"`
	Label      string          `yaml:"label"`
	Situations []SituationSeed `yaml:"situations"`
}

// SituationSeed is one concrete situation with one option text per function code.
type SituationSeed struct {
	Domain  string            `yaml:"domain"`
	Prompt  string            `yaml:"prompt"`
	Options map[string]string `yaml:"options"`
}

// DecodeSeedTable strictly decodes a YAML seed table.
func DecodeSeedTable(r io.Reader) (*SeedTable, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var table SeedTable
	if err := dec.Decode(&table); err != nil {
		return nil, fmt.Errorf("failed to decode seed table: %w", err)
	}
	return &table, nil
}

// DefaultSeedTable returns the embedded seed table.
func DefaultSeedTable() (*SeedTable, error) {
	return DecodeSeedTable(bytes.NewReader(defaultSeed))
}

// LoadSeedTable reads a seed table from disk.
func LoadSeedTable(path string) (*SeedTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open seed table: %w", err)
	}
	defer f.Close()

	return DecodeSeedTable(f)
}

// Load builds a corpus from path, or from the embedded table when path is empty.
func Load(path string) (*Corpus, error) {
	var (
		table *SeedTable
		err   error
	)
	if path == "" {
		table, err = DefaultSeedTable()
	} else {
		table, err = LoadSeedTable(path)
	}
	if err != nil {
		return nil, err
	}
	return Build(table)
}

// Default builds the embedded corpus.
func Default() (*Corpus, error) {
	return Load("")
}

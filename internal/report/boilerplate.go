package report

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed boilerplate.yaml
var defaultBoilerplate []byte

// Boilerplate holds the static narrative text woven into every report.
type Boilerplate struct {
	Preamble   string         `yaml:"preamble"`
	Disclaimer string         `yaml:"disclaimer"`
	Sections   map[int]string `yaml:"sections"`
}

// DefaultBoilerplate parses the embedded boilerplate file.
func DefaultBoilerplate() (*Boilerplate, error) {
	return parseBoilerplate(defaultBoilerplate)
}

// LoadBoilerplate reads a boilerplate override from disk. Used when a
// deployment wants to rebrand the report text without rebuilding.
func LoadBoilerplate(path string) (*Boilerplate, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading boilerplate %s: %w", path, err)
	}
	return parseBoilerplate(data)
}

func parseBoilerplate(data []byte) (*Boilerplate, error) {
	var b Boilerplate
	if err := yaml.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("parsing boilerplate: %w", err)
	}
	if b.Preamble == "" {
		return nil, fmt.Errorf("boilerplate has no preamble")
	}
	return &b, nil
}

// SectionIntro returns the boilerplate paragraph for a section, or ""
// when none is configured.
func (b *Boilerplate) SectionIntro(sectionNumber int) string {
	return b.Sections[sectionNumber]
}

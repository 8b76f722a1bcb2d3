package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Scenario is a set of filter cases evaluated against one record set.
type Scenario struct {
	// Name uniquely identifies this scenario.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Entity is the path of the entity definition, relative to the
	// scenario file.
	Entity string `yaml:"entity"`

	// Records are loaded in order; cases refer to them by position.
	Records []map[string]any `yaml:"records"`

	Cases []Case `yaml:"cases"`
}

// Case is one filter expression and what it must produce.
type Case struct {
	Expression string `yaml:"expression"`

	// Matches, when set, lists the positions both paths must select.
	Matches []int `yaml:"matches,omitempty"`

	// MySQL and Postgres, when set, are the expected finalized predicate
	// chains.
	MySQL    string `yaml:"mysql,omitempty"`
	Postgres string `yaml:"postgres,omitempty"`

	// Error, when set, must appear in the message of the error the case
	// fails with.
	Error string `yaml:"error,omitempty"`
}

// LoadScenario reads and parses a scenario YAML file. Unknown fields are
// rejected and the entity path is resolved against the file's directory.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if scenario.Entity != "" && !filepath.IsAbs(scenario.Entity) {
		scenario.Entity = filepath.Join(filepath.Dir(path), scenario.Entity)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &scenario, nil
}

func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if s.Entity == "" {
		return fmt.Errorf("entity is required")
	}
	if _, err := os.Stat(s.Entity); os.IsNotExist(err) {
		return fmt.Errorf("entity file not found: %s", s.Entity)
	}
	if len(s.Cases) == 0 {
		return fmt.Errorf("cases list is required and must be non-empty")
	}

	for i, c := range s.Cases {
		if c.Error != "" && (c.Matches != nil || c.MySQL != "" || c.Postgres != "") {
			return fmt.Errorf("cases[%d]: error cannot be combined with other expectations", i)
		}
		for _, m := range c.Matches {
			if m < 0 || m >= len(s.Records) {
				return fmt.Errorf("cases[%d]: match %d is not a record position", i, m)
			}
		}
	}
	return nil
}

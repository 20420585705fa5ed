// Package copies decides how many printed duplicates of a document a batch
// export needs for a workflow category.
package copies

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-fosterdocs/pkg/document"
)

//go:embed policy.yaml
var embeddedPolicy []byte

// CategoryPolicy maps document titles to copy counts within one category.
type CategoryPolicy struct {
	Default   int            `yaml:"default" json:"default"`
	Documents map[string]int `yaml:"documents" json:"documents,omitempty"`
}

// Table is the static category → title → copies lookup.
type Table struct {
	Default    int                       `yaml:"default" json:"default"`
	Categories map[string]CategoryPolicy `yaml:"categories" json:"categories"`
}

// Embedded returns the policy table bundled with the module.
func Embedded() (Table, error) {
	return LoadYAML(embeddedPolicy)
}

// MustEmbedded panics when the bundled table is malformed.
func MustEmbedded() Table {
	table, err := Embedded()
	if err != nil {
		panic(err)
	}
	return table
}

// LoadYAML parses and validates a policy table. Missing defaults become 1;
// counts below 1 are rejected.
func LoadYAML(data []byte) (Table, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return Table{}, fmt.Errorf("copies: policy document is empty")
	}
	var table Table
	if err := yaml.Unmarshal(data, &table); err != nil {
		return Table{}, fmt.Errorf("copies: parse policy: %w", err)
	}
	if err := table.normalise(); err != nil {
		return Table{}, err
	}
	return table, nil
}

func (t *Table) normalise() error {
	if t.Default == 0 {
		t.Default = 1
	}
	if t.Default < 1 {
		return fmt.Errorf("copies: global default must be at least 1, got %d", t.Default)
	}
	clean := make(map[string]CategoryPolicy, len(t.Categories))
	for name, policy := range t.Categories {
		key := strings.TrimSpace(name)
		if key == "" {
			return fmt.Errorf("copies: category name is required")
		}
		if key == string(document.CategoryAllDocuments) {
			return fmt.Errorf("copies: %q is reserved and cannot be configured", key)
		}
		if policy.Default == 0 {
			policy.Default = 1
		}
		if policy.Default < 1 {
			return fmt.Errorf("copies: category %q default must be at least 1, got %d", key, policy.Default)
		}
		docs := make(map[string]int, len(policy.Documents))
		for title, count := range policy.Documents {
			if count < 1 {
				return fmt.Errorf("copies: category %q document %q must have at least 1 copy, got %d", key, title, count)
			}
			docs[strings.TrimSpace(title)] = count
		}
		policy.Documents = docs
		clean[key] = policy
	}
	t.Categories = clean
	return nil
}

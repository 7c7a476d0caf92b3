package autocomplete

import (
	"io"

	"gopkg.in/yaml.v3"
)

// Tables holds the alias and synonym dictionaries used to normalize
// query tokens before matching, per SPEC_FULL §4.3. Alias is a 1-to-1
// rewrite ("st" -> "street"); Synonyms is 1-to-many expansion on top of
// the (possibly aliased) token ("street" -> ["st", "str"]).
type Tables struct {
	Alias    map[string]string   `yaml:"alias"`
	Synonyms map[string][]string `yaml:"synonyms"`
}

// LoadTables reads a Tables from YAML shaped like:
//
//	alias:
//	  st: street
//	  ave: avenue
//	synonyms:
//	  street: [st, str]
//	  avenue: [ave, av]
func LoadTables(r io.Reader) (*Tables, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	var t Tables
	if err := yaml.Unmarshal(raw, &t); err != nil {
		return nil, err
	}
	if t.Alias == nil {
		t.Alias = map[string]string{}
	}
	if t.Synonyms == nil {
		t.Synonyms = map[string][]string{}
	}
	return &t, nil
}

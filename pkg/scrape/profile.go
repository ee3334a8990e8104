package scrape

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed profiles/*.yaml
var embedded embed.FS

// Field extracts one column from every matched item.
type Field struct {
	Column   string `yaml:"column"`
	Selector string `yaml:"selector"` // relative to the item; empty means the item itself
	Default  string `yaml:"default"`  // used when the selector matches nothing
	Required bool   `yaml:"required"` // items without this field are dropped
}

// Profile describes how to turn one kind of page into a table.
type Profile struct {
	Name        string  `yaml:"name"`
	Description string  `yaml:"description"`
	Container   string  `yaml:"container"` // optional; the first match scopes Item
	Item        string  `yaml:"item"`
	Output      string  `yaml:"output"` // default output workbook
	Fields      []Field `yaml:"fields"`
}

// Columns returns the header produced by the profile.
func (p Profile) Columns() []string {
	out := make([]string, len(p.Fields))
	for i, f := range p.Fields {
		out[i] = f.Column
	}
	return out
}

// Validate checks that the profile can be applied.
func (p Profile) Validate() error {
	if strings.TrimSpace(p.Item) == "" {
		return fmt.Errorf("%w: %s: item selector is required", ErrInvalidProfile, p.Name)
	}
	if len(p.Fields) == 0 {
		return fmt.Errorf("%w: %s: at least one field is required", ErrInvalidProfile, p.Name)
	}
	seen := make(map[string]bool, len(p.Fields))
	for _, f := range p.Fields {
		if f.Column == "" {
			return fmt.Errorf("%w: %s: field without column name", ErrInvalidProfile, p.Name)
		}
		if seen[f.Column] {
			return fmt.Errorf("%w: %s: duplicate column %q", ErrInvalidProfile, p.Name, f.Column)
		}
		seen[f.Column] = true
	}
	return nil
}

// ParseProfile decodes a YAML profile definition.
func ParseProfile(data []byte) (Profile, error) {
	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Profile{}, fmt.Errorf("%w: %v", ErrInvalidProfile, err)
	}
	if err := p.Validate(); err != nil {
		return Profile{}, err
	}
	return p, nil
}

// LoadProfile returns the embedded profile called name.
func LoadProfile(name string) (Profile, error) {
	unknown := fmt.Errorf("%w: %q (available: %s)", ErrUnknownProfile, name, strings.Join(ProfileNames(), ", "))
	if name == "" || strings.ContainsAny(name, "/.") {
		return Profile{}, unknown
	}
	data, err := fs.ReadFile(embedded, path.Join("profiles", name+".yaml"))
	if err != nil {
		return Profile{}, unknown
	}
	return ParseProfile(data)
}

// ProfileNames lists the embedded profiles in alphabetical order.
func ProfileNames() []string {
	entries, _ := fs.ReadDir(embedded, "profiles")
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), path.Ext(e.Name())))
	}
	slices.Sort(names)
	return names
}

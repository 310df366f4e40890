package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// MaxFieldWidth is the widest field a layout may declare.
const MaxFieldWidth = 64

// Field is one named, fixed-width unsigned field.
type Field struct {
	Name  string `yaml:"name"`
	Width int    `yaml:"width"`
}

// Layout is the ordered list of fields a bit file is made of. The file
// itself carries no description of its layout; readers need it out of band.
type Layout struct {
	Fields []Field `yaml:"fields"`
}

// ParseLayout decodes and validates a YAML layout:
//
//	fields:
//	  - name: sync
//	    width: 12
//	  - name: flags
//	    width: 4
func ParseLayout(data []byte) (*Layout, error) {
	var l Layout
	if err := yaml.Unmarshal(data, &l); err != nil {
		return nil, fmt.Errorf("failed to parse layout: %w", err)
	}
	if err := l.Validate(); err != nil {
		return nil, err
	}
	return &l, nil
}

// LoadLayout reads a layout from the named YAML file.
func LoadLayout(name string) (*Layout, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("failed to read layout: %w", err)
	}
	return ParseLayout(data)
}

func (l *Layout) Validate() error {
	if len(l.Fields) == 0 {
		return errors.New("invalid layout; expected: at least one field")
	}

	seen := make(map[string]struct{}, len(l.Fields))
	for i, f := range l.Fields {
		if f.Name == "" {
			return fmt.Errorf("invalid layout field #%d; expected: a name", i)
		}
		if _, ok := seen[f.Name]; ok {
			return fmt.Errorf("invalid layout field `%s`; expected: a unique name", f.Name)
		}
		seen[f.Name] = struct{}{}

		if f.Width < 0 || f.Width > MaxFieldWidth {
			return fmt.Errorf("invalid layout field `%s` width; expected: [0, %d], given: %d", f.Name, MaxFieldWidth, f.Width)
		}
	}

	return nil
}

// TotalBits returns the sum of the field widths.
func (l *Layout) TotalBits() int {
	var n int
	for _, f := range l.Fields {
		n += f.Width
	}
	return n
}

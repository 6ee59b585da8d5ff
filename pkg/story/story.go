// Package story defines the project records calendar events are derived from.
package story

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Story is a root record: a user story with optional nested features.
type Story struct {
	ID          int       `json:"id" yaml:"id"`
	Title       string    `json:"title" yaml:"title"`
	Description string    `json:"description,omitempty" yaml:"description,omitempty"`
	DueDate     string    `json:"dueDate,omitempty" yaml:"dueDate,omitempty"`
	Priority    string    `json:"priority,omitempty" yaml:"priority,omitempty"`
	Features    []Feature `json:"features,omitempty" yaml:"features,omitempty"`
}

// Feature is a sub-record of a story with its own due date.
type Feature struct {
	ID          int    `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	DueDate     string `json:"dueDate,omitempty" yaml:"dueDate,omitempty"`
	Priority    string `json:"priority,omitempty" yaml:"priority,omitempty"`
	Assignee    string `json:"assignee,omitempty" yaml:"assignee,omitempty"`
	Progress    int    `json:"progress,omitempty" yaml:"progress,omitempty"`
}

// Format names an on-disk encoding for story files.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFor guesses the format from a file name; unknown extensions are JSON.
func FormatFor(name string) Format {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Decode reads one story or a list of stories.
func Decode(data []byte, format Format) ([]*Story, error) {
	unmarshal := json.Unmarshal
	if format == FormatYAML {
		unmarshal = yaml.Unmarshal
	}

	var list []*Story
	if err := unmarshal(data, &list); err == nil {
		return compact(list), nil
	}
	one := &Story{}
	if err := unmarshal(data, one); err != nil {
		return nil, fmt.Errorf("story: decode %s: %w", format, err)
	}
	return []*Story{one}, nil
}

func compact(list []*Story) []*Story {
	out := list[:0]
	for _, s := range list {
		if s != nil {
			out = append(out, s)
		}
	}
	return out
}

// Validate checks the fields the store keys on.
func (s *Story) Validate() error {
	if s == nil {
		return errors.New("story: nil record")
	}
	var problems []string
	if s.ID <= 0 {
		problems = append(problems, "id must be positive")
	}
	if strings.TrimSpace(s.Title) == "" {
		problems = append(problems, "title is required")
	}
	seen := make(map[int]bool, len(s.Features))
	for i, f := range s.Features {
		if f.ID <= 0 {
			problems = append(problems, fmt.Sprintf("feature %d: id must be positive", i))
			continue
		}
		if seen[f.ID] {
			problems = append(problems, fmt.Sprintf("feature %d: duplicate id %d", i, f.ID))
		}
		seen[f.ID] = true
	}
	if len(problems) > 0 {
		return fmt.Errorf("story %d: %s", s.ID, strings.Join(problems, "; "))
	}
	return nil
}

// Feature returns the feature with the given id.
func (s *Story) Feature(id int) (Feature, bool) {
	if s == nil {
		return Feature{}, false
	}
	for _, f := range s.Features {
		if f.ID == id {
			return f, true
		}
	}
	return Feature{}, false
}

// Clone returns a deep copy of s.
func (s *Story) Clone() *Story {
	if s == nil {
		return nil
	}
	out := *s
	out.Features = append([]Feature(nil), s.Features...)
	return &out
}

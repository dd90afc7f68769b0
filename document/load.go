package document

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
	yaml "gopkg.in/yaml.v3"

	"bylaws/common"
)

// ErrMissingType is returned by Decode for a section record without type.
// Zero value of common.SectionType is a preamble and must never be implied.
var ErrMissingType = errors.New("section type is missing")

// record mirrors Section with optional type to tell absent type apart.
type record struct {
	ID       string              `yaml:"id" json:"id"`
	Type     *common.SectionType `yaml:"type" json:"type"`
	Title    string              `yaml:"title,omitempty" json:"title,omitempty"`
	Content  string              `yaml:"content,omitempty" json:"content,omitempty"`
	Order    *float64            `yaml:"order,omitempty" json:"order,omitempty"`
	ParentID string              `yaml:"parent_id,omitempty" json:"parentId,omitempty"`
}

type records struct {
	Title    string   `yaml:"title" json:"title"`
	Sections []record `yaml:"sections" json:"sections"`
}

// Load reads document source from file. Format is selected by extension:
// ".json" and ".jsonc" (comments and trailing commas allowed), everything
// else is treated as YAML.
func Load(path string) (*Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read document source: %w", err)
	}
	src, err := Decode(data, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("unable to decode document source '%s': %w", filepath.Base(path), err)
	}
	return src, nil
}

// Decode parses document source data, ext selects format the same way Load does.
func Decode(data []byte, ext string) (*Source, error) {
	raw := &records{}
	switch strings.ToLower(ext) {
	case ".json", ".jsonc":
		dec := json.NewDecoder(bytes.NewReader(jsonc.ToJSON(data)))
		dec.DisallowUnknownFields()
		if err := dec.Decode(raw); err != nil {
			return nil, err
		}
	default:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		// empty document is valid input, it simply has no sections
		if err := dec.Decode(raw); err != nil && !errors.Is(err, io.EOF) {
			return nil, err
		}
	}

	src := &Source{Title: raw.Title}
	if len(raw.Sections) > 0 {
		src.Sections = make([]Section, 0, len(raw.Sections))
	}
	for i, r := range raw.Sections {
		if r.Type == nil {
			return nil, fmt.Errorf("section %d (id '%s'): %w", i+1, r.ID, ErrMissingType)
		}
		src.Sections = append(src.Sections, Section{
			ID:       r.ID,
			Type:     *r.Type,
			Title:    r.Title,
			Content:  r.Content,
			Order:    r.Order,
			ParentID: r.ParentID,
		})
	}
	return src, nil
}

package document

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"bylaws/common"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name      string
		ext       string
		data      string
		wantTitle string
		wantIDs   []string
	}{
		{
			name: "yaml",
			ext:  ".yaml",
			data: `title: Rules
sections:
  - id: a
    type: article
    order: 1
  - id: s
    type: section
    parent_id: a
`,
			wantTitle: "Rules",
			wantIDs:   []string{"a", "s"},
		},
		{
			name:      "json",
			ext:       ".json",
			data:      `{"title":"Rules","sections":[{"id":"a","type":"article"},{"id":"s","type":"section","parentId":"a"}]}`,
			wantTitle: "Rules",
			wantIDs:   []string{"a", "s"},
		},
		{
			name: "jsonc",
			ext:  ".JSONC",
			data: `{
  // comment
  "title": "Rules",
  "sections": [
    {"id": "a", "type": "amendment",},
  ],
}`,
			wantTitle: "Rules",
			wantIDs:   []string{"a"},
		},
		{
			name:    "empty yaml",
			ext:     ".yaml",
			data:    "",
			wantIDs: nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src, err := Decode([]byte(tt.data), tt.ext)
			if err != nil {
				t.Fatalf("Decode() error = %v", err)
			}
			if src.Title != tt.wantTitle {
				t.Errorf("Title = %q, want %q", src.Title, tt.wantTitle)
			}
			if len(src.Sections) != len(tt.wantIDs) {
				t.Fatalf("got %d sections, want %d", len(src.Sections), len(tt.wantIDs))
			}
			for i, id := range tt.wantIDs {
				if src.Sections[i].ID != id {
					t.Errorf("section %d id = %q, want %q", i, src.Sections[i].ID, id)
				}
			}
		})
	}
}

func TestDecode_Fields(t *testing.T) {
	src, err := Decode([]byte(`sections:
  - id: s
    type: subsection
    title: Quorum
    content: "Half of members."
    order: 1.5
    parent_id: p
`), ".yml")
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	s := src.Sections[0]
	if s.Type != common.SectionTypeSubsection {
		t.Errorf("Type = %v", s.Type)
	}
	if s.Title != "Quorum" || s.Content != "Half of members." || s.ParentID != "p" {
		t.Errorf("unexpected section %+v", s)
	}
	if s.Order == nil || *s.Order != 1.5 {
		t.Errorf("Order = %v, want 1.5", s.Order)
	}
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name string
		ext  string
		data string
	}{
		{"yaml unknown field", ".yaml", "sections:\n  - id: a\n    kind: article\n"},
		{"yaml bad type", ".yaml", "sections:\n  - id: a\n    type: chapter\n"},
		{"yaml malformed", ".yaml", "sections: [\n"},
		{"json unknown field", ".json", `{"sections":[],"extra":1}`},
		{"json bad type", ".json", `{"sections":[{"id":"a","type":"chapter"}]}`},
		{"json malformed", ".json", `{"sections":`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Decode([]byte(tt.data), tt.ext); err == nil {
				t.Error("Decode() expected error")
			}
		})
	}
}

func TestDecode_MissingType(t *testing.T) {
	tests := []struct {
		name string
		ext  string
		data string
	}{
		{"yaml absent", ".yaml", "sections:\n  - id: x\n    title: Forgot type\n  - id: pre\n    type: preamble\n"},
		{"yaml null", ".yaml", "sections:\n  - id: x\n    type:\n"},
		{"json absent", ".json", `{"sections":[{"id":"a","type":"article"},{"id":"x"}]}`},
		{"json null", ".json", `{"sections":[{"id":"x","type":null}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src, err := Decode([]byte(tt.data), tt.ext)
			if !errors.Is(err, ErrMissingType) {
				t.Fatalf("Decode() = %+v, %v, want ErrMissingType", src, err)
			}
			if !strings.Contains(err.Error(), "'x'") {
				t.Errorf("error does not name the section: %v", err)
			}
		})
	}

	if _, err := Decode([]byte("sections:\n  - id: x\n    type: \"\"\n"), ".yaml"); err == nil || errors.Is(err, ErrMissingType) {
		t.Errorf("empty type must fail as invalid value, got %v", err)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bylaws.yaml")
	if err := os.WriteFile(path, []byte("title: T\nsections:\n  - id: a\n    type: article\n"), 0644); err != nil {
		t.Fatal(err)
	}
	src, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if src.Title != "T" || len(src.Sections) != 1 {
		t.Errorf("unexpected source %+v", src)
	}

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("Load() of missing file expected error")
	}

	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte("{"), 0644); err != nil {
		t.Fatal(err)
	}
	_, err = Load(bad)
	if err == nil || !strings.Contains(err.Error(), "bad.json") {
		t.Errorf("Load() error = %v, want it to name the file", err)
	}
}

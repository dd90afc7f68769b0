package convert

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"text/template"
	"time"

	sprig "github.com/go-task/slim-sprig/v3"

	"bylaws/config"
	"bylaws/render"
)

// Values is a struct that holds variables we make available for template expansion
type Values struct {
	Context    string
	Title      string
	Format     string
	SourceFile string
	Pages      int
	Sections   int
	Date       string
}

func expandTemplate(d *Document, name config.TemplateFieldName, field string, now time.Time) (string, error) {
	funcMap := sprig.FuncMap()

	tmpl, err := template.New(string(name)).Funcs(funcMap).Parse(field)
	if err != nil {
		return "", fmt.Errorf("unable to parse template field %s: %w", name, err)
	}

	values := Values{
		Context:    string(name),
		Title:      render.DocumentTitle(d.Layout.Title),
		Format:     d.Format.String(),
		SourceFile: strings.TrimSuffix(filepath.Base(d.SrcName), filepath.Ext(d.SrcName)),
		Pages:      d.Layout.TotalPages,
		Sections:   len(d.Source.Sections),
		Date:       now.Format("2006-01-02"),
	}

	buf := new(bytes.Buffer)
	if err := tmpl.Execute(buf, values); err != nil {
		return "", err
	}
	return buf.String(), nil
}

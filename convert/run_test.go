package convert

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"bylaws/common"
	"bylaws/config"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}

func TestProcessDocument_HTML(t *testing.T) {
	ctx, env := setupTestEnv(t)
	env.NoDirs = true
	dst := t.TempDir()

	if err := processDocument(ctx, []byte(sampleSource), "sample.yaml", dst, common.OutputFmtHtml, env.Log); err != nil {
		t.Fatalf("processDocument() error = %v", err)
	}

	out := readFile(t, filepath.Join(dst, "sample.html"))
	for _, want := range []string{
		"<title>Bylaws of the Example Society</title>",
		`data-section-id="sec-1-1"`,
		"<strong>Example Society</strong>",
		"Table of Contents",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output does not contain %q", want)
		}
	}
}

func TestProcessDocument_Markdown(t *testing.T) {
	ctx, env := setupTestEnv(t)
	env.NoDirs = true
	dst := t.TempDir()

	if err := processDocument(ctx, []byte(sampleSource), "sample.yaml", dst, common.OutputFmtMarkdown, env.Log); err != nil {
		t.Fatalf("processDocument() error = %v", err)
	}

	out := readFile(t, filepath.Join(dst, "sample.md"))
	if !strings.Contains(out, "**Example Society**") {
		t.Errorf("markdown lost emphasis:\n%s", out)
	}
	if strings.Contains(out, "<style") || strings.Contains(out, "font-family") {
		t.Errorf("markdown contains stylesheet:\n%s", out)
	}
}

func TestProcessDocument_Overwrite(t *testing.T) {
	ctx, env := setupTestEnv(t)
	env.NoDirs = true
	dst := t.TempDir()
	target := filepath.Join(dst, "sample.html")
	writeFile(t, target, "old")

	err := processDocument(ctx, []byte(sampleSource), "sample.yaml", dst, common.OutputFmtHtml, env.Log)
	if err == nil || !strings.Contains(err.Error(), "already exists") {
		t.Fatalf("processDocument() error = %v, want already exists", err)
	}
	if readFile(t, target) != "old" {
		t.Error("existing file was modified")
	}

	env.Overwrite = true
	if err := processDocument(ctx, []byte(sampleSource), "sample.yaml", dst, common.OutputFmtHtml, env.Log); err != nil {
		t.Fatalf("processDocument() with overwrite error = %v", err)
	}
	if readFile(t, target) == "old" {
		t.Error("existing file was not replaced")
	}
}

func TestProcessDocument_InvalidSource(t *testing.T) {
	ctx, env := setupTestEnv(t)
	err := processDocument(ctx, []byte("sections: [ {id: x, type: chapter} ]"), "bad.yaml", t.TempDir(), common.OutputFmtHtml, env.Log)
	if err == nil {
		t.Error("expected error for unknown section type")
	}
}

func TestProcessDocument_TitleFallback(t *testing.T) {
	ctx, env := setupTestEnv(t)
	env.NoDirs = true
	env.Cfg.Document.Title = "Configured Title"
	dst := t.TempDir()

	src := "sections:\n  - id: a\n    type: article\n    title: Only\n"
	if err := processDocument(ctx, []byte(src), "untitled.yaml", dst, common.OutputFmtHtml, env.Log); err != nil {
		t.Fatalf("processDocument() error = %v", err)
	}
	if out := readFile(t, filepath.Join(dst, "untitled.html")); !strings.Contains(out, "<title>Configured Title</title>") {
		t.Error("configured title was not used")
	}
}

func TestProcessDocument_Report(t *testing.T) {
	ctx, env := setupTestEnv(t)
	env.NoDirs = true
	env.Overwrite = true

	rpt, err := (&config.ReporterConfig{Destination: filepath.Join(t.TempDir(), "report.zip")}).Prepare()
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}
	env.Rpt = rpt

	dst := t.TempDir()
	for range 2 {
		if err := processDocument(ctx, []byte(sampleSource), "rules.yaml", dst, common.OutputFmtHtml, env.Log); err != nil {
			t.Fatalf("processDocument() error = %v", err)
		}
	}
	name := rpt.Name()
	if err := rpt.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	zr, err := zip.OpenReader(name)
	if err != nil {
		t.Fatalf("unable to open report: %v", err)
	}
	defer zr.Close()
	got := make(map[string]bool)
	for _, f := range zr.File {
		got[f.Name] = true
	}
	for _, want := range []string{"source-rules.yaml", "source-rules~2.yaml", "layout-rules.txt", "layout-rules~2.txt", "result-rules.html"} {
		if !got[want] {
			t.Errorf("report has no %s, entries: %v", want, got)
		}
	}
}

func TestProcessDocument_RemoteWithoutEndpoint(t *testing.T) {
	ctx, env := setupTestEnv(t)
	env.NoDirs = true

	err := processDocument(ctx, []byte(sampleSource), "sample.yaml", t.TempDir(), common.OutputFmtPdf, env.Log)
	if err == nil || !strings.Contains(err.Error(), "not configured") {
		t.Errorf("processDocument() error = %v, want endpoint not configured", err)
	}
}

func TestProcessDocument_Remote(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			http.Error(w, "busy", http.StatusServiceUnavailable)
			return
		}
		var req struct {
			Content string `json:"content"`
			Options struct {
				Format string `json:"format"`
			} `json:"options"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if req.Options.Format != "pdf" || !strings.Contains(req.Content, "Example Society") {
			http.Error(w, "unexpected request", http.StatusBadRequest)
			return
		}
		if r.Header.Get("Authorization") != "Bearer secret" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/pdf")
		_, _ = w.Write([]byte("%PDF-1.7\n%fake document\n%%EOF\n"))
	}))
	defer srv.Close()

	ctx, env := setupTestEnv(t)
	env.NoDirs = true
	env.Cfg.Document.Export.Endpoint = srv.URL
	env.Cfg.Document.Export.Token = "secret"
	env.Cfg.Document.Export.Retry.Backoff = time.Millisecond
	env.Cfg.Document.Export.Retry.MaxBackoff = time.Millisecond
	dst := t.TempDir()

	if err := processDocument(ctx, []byte(sampleSource), "sample.yaml", dst, common.OutputFmtPdf, env.Log); err != nil {
		t.Fatalf("processDocument() error = %v", err)
	}
	if out := readFile(t, filepath.Join(dst, "sample.pdf")); !strings.HasPrefix(out, "%PDF") {
		t.Errorf("unexpected output %q", out)
	}
	if got := calls.Load(); got != 2 {
		t.Errorf("service called %d times, want 2", got)
	}
}

func TestProcess_Directory(t *testing.T) {
	ctx, env := setupTestEnv(t)
	src, dst := t.TempDir(), t.TempDir()

	writeFile(t, filepath.Join(src, "one.yaml"), sampleSource)
	writeFile(t, filepath.Join(src, "nested", "two.json"), `{"title": "Two", "sections": [{"id": "a", "type": "article", "title": "A", "order": 1,}]}`)
	writeFile(t, filepath.Join(src, "notes.txt"), "ignored")

	if err := process(ctx, src, dst, common.OutputFmtHtml, env.Log); err != nil {
		t.Fatalf("process() error = %v", err)
	}
	for _, p := range []string{"one.html", filepath.Join("nested", "two.html")} {
		if _, err := os.Stat(filepath.Join(dst, p)); err != nil {
			t.Errorf("expected output %s: %v", p, err)
		}
	}
	if _, err := os.Stat(filepath.Join(dst, "notes.html")); err == nil {
		t.Error("non source file was converted")
	}
}

func createArchive(t *testing.T, path string, entries map[string]string) {
	t.Helper()
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for name, content := range entries {
		fw, err := w.Create(name)
		if err != nil {
			t.Fatalf("zip create: %v", err)
		}
		if _, err := fw.Write([]byte(content)); err != nil {
			t.Fatalf("zip write: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("zip close: %v", err)
	}
	writeFile(t, path, buf.String())
}

func TestProcess_Archive(t *testing.T) {
	ctx, env := setupTestEnv(t)
	src, dst := t.TempDir(), t.TempDir()
	arc := filepath.Join(src, "sources.zip")
	createArchive(t, arc, map[string]string{
		"current/bylaws.yaml": sampleSource,
		"old/bylaws.yaml":     sampleSource,
		"current/readme.txt":  "ignored",
	})

	t.Run("path inside archive", func(t *testing.T) {
		if err := process(ctx, filepath.Join(arc, "current"), dst, common.OutputFmtHtml, env.Log); err != nil {
			t.Fatalf("process() error = %v", err)
		}
		if _, err := os.Stat(filepath.Join(dst, "current", "bylaws.html")); err != nil {
			t.Errorf("expected output: %v", err)
		}
		if _, err := os.Stat(filepath.Join(dst, "old", "bylaws.html")); err == nil {
			t.Error("file outside of requested archive path was converted")
		}
	})

	t.Run("archive in directory", func(t *testing.T) {
		out := t.TempDir()
		if err := process(ctx, src, out, common.OutputFmtHtml, env.Log); err != nil {
			t.Fatalf("process() error = %v", err)
		}
		for _, p := range []string{filepath.Join("current", "bylaws.html"), filepath.Join("old", "bylaws.html")} {
			if _, err := os.Stat(filepath.Join(out, p)); err != nil {
				t.Errorf("expected output %s: %v", p, err)
			}
		}
	})
}

func TestProcess_Errors(t *testing.T) {
	ctx, env := setupTestEnv(t)
	src := t.TempDir()
	writeFile(t, filepath.Join(src, "notes.txt"), "plain")
	writeFile(t, filepath.Join(src, "doc.yaml"), sampleSource)

	tests := []struct {
		name string
		path string
	}{
		{name: "missing", path: filepath.Join(src, "missing.yaml")},
		{name: "not recognized", path: filepath.Join(src, "notes.txt")},
		{name: "tail after source", path: filepath.Join(src, "doc.yaml", "inner")},
		{name: "tail after directory", path: filepath.Join(src, "nothing", "here")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := process(ctx, tt.path, t.TempDir(), common.OutputFmtHtml, env.Log); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestProcess_Cancelled(t *testing.T) {
	ctx, env := setupTestEnv(t)
	ctx, cancel := context.WithCancel(ctx)
	cancel()

	if err := process(ctx, t.TempDir(), t.TempDir(), common.OutputFmtHtml, env.Log); err == nil {
		t.Error("expected context error")
	}
}

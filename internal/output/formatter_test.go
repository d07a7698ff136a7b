package output

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func sampleSegmentReport() *SegmentReport {
	return &SegmentReport{
		RepoPath:     "/repo",
		Module:       "example.com/app/store",
		GeneratedAt:  time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		TotalCommits: 4,
		Segments: []SegmentInfo{
			{
				Boundary: "refs/heads/main",
				Commits: []CommitInfo{
					{ID: "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", Title: "store feature"},
				},
			},
			{
				Boundary: "store-v1.0.0",
				Tagged:   true,
				Commits: []CommitInfo{
					{ID: "bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb", Title: "store fix"},
					{ID: "cccccccccccccccccccccccccccccccccccccccc", Title: "init store"},
				},
			},
		},
	}
}

func TestNewSegmentWriter(t *testing.T) {
	tests := []struct {
		format OutputFormat
		want   SegmentReportWriter
	}{
		{format: FormatConsole, want: &ConsoleSegmentWriter{}},
		{format: FormatJSON, want: &JSONSegmentWriter{}},
		{format: FormatMarkdown, want: &MarkdownSegmentWriter{}},
		{format: OutputFormat("bogus"), want: &ConsoleSegmentWriter{}},
	}
	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			got := NewSegmentWriter(tt.format)
			if gotType, wantType := typeName(got), typeName(tt.want); gotType != wantType {
				t.Fatalf("writer = %s, want %s", gotType, wantType)
			}
		})
	}
}

func typeName(v any) string {
	switch v.(type) {
	case *ConsoleSegmentWriter:
		return "console"
	case *JSONSegmentWriter:
		return "json"
	case *MarkdownSegmentWriter:
		return "markdown"
	default:
		return "unknown"
	}
}

func TestJSONSegmentWriter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.json")
	writer := &JSONSegmentWriter{}
	if err := writer.Write(sampleSegmentReport(), OutputOptions{Format: FormatJSON, OutputPath: path}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read output: %v", err)
	}
	var decoded JSONSegmentReport
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded.Module != "example.com/app/store" {
		t.Fatalf("module = %q", decoded.Module)
	}
	if len(decoded.Segments) != 2 {
		t.Fatalf("segments = %d, want 2", len(decoded.Segments))
	}
	if !decoded.Segments[1].Tagged || decoded.Segments[1].Boundary != "store-v1.0.0" {
		t.Fatalf("second segment = %+v", decoded.Segments[1])
	}
	if decoded.Segments[1].Commits[0].Title != "store fix" {
		t.Fatalf("commit title = %q", decoded.Segments[1].Commits[0].Title)
	}
}

func TestMarkdownSegmentWriter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.md")
	writer := &MarkdownSegmentWriter{}
	report := sampleSegmentReport()
	report.DroppedCommits = 1
	if err := writer.Write(report, OutputOptions{Format: FormatMarkdown, OutputPath: path}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read output: %v", err)
	}
	text := string(data)
	for _, want := range []string{
		"# Release Segments: example.com/app/store",
		"## Unreleased (refs/heads/main)",
		"## store-v1.0.0",
		"- bbbbbbbb store fix",
		"**Commits dropped (undecodable message):** 1",
	} {
		if !strings.Contains(text, want) {
			t.Fatalf("markdown output missing %q:\n%s", want, text)
		}
	}
}

func TestJSONModuleWriter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "modules.json")
	report := &ModuleReport{
		RepoPath:    "/repo",
		GeneratedAt: time.Now(),
		Modules: []ModuleInfo{
			{Name: "example.com/app", Dir: ""},
			{Name: "example.com/app/store", Dir: "store", TagPrefix: "store"},
		},
	}
	if err := (&JSONModuleWriter{}).Write(report, OutputOptions{OutputPath: path}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read output: %v", err)
	}
	var decoded JSONModuleReport
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if len(decoded.Modules) != 2 || decoded.Modules[1].TagPrefix != "store" {
		t.Fatalf("modules = %+v", decoded.Modules)
	}
}

func TestShortID(t *testing.T) {
	if got := shortID("abcdefghij"); got != "abcdefgh" {
		t.Fatalf("shortID = %q", got)
	}
	if got := shortID("abc"); got != "abc" {
		t.Fatalf("shortID = %q", got)
	}
}

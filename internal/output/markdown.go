package output

import (
	"fmt"
)

// MarkdownSegmentWriter writes segment reports as Markdown, one section per
// release window.
type MarkdownSegmentWriter struct{}

// Write outputs the segment report as Markdown.
func (w *MarkdownSegmentWriter) Write(report *SegmentReport, options OutputOptions) error {
	out, file, err := createWriter(options.OutputPath)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}

	fmt.Fprintf(out, "# Release Segments: %s\n\n", report.Module)
	fmt.Fprintf(out, "**Repository:** %s\n\n", report.RepoPath)
	fmt.Fprintf(out, "**Commits traversed:** %d\n\n", report.TotalCommits)
	if report.DroppedCommits > 0 {
		fmt.Fprintf(out, "**Commits dropped (undecodable message):** %d\n\n", report.DroppedCommits)
	}

	for _, segment := range report.Segments {
		if segment.Tagged {
			fmt.Fprintf(out, "## %s\n\n", segment.Boundary)
		} else {
			fmt.Fprintf(out, "## Unreleased (%s)\n\n", segment.Boundary)
		}
		if len(segment.Commits) == 0 {
			fmt.Fprintln(out, "_No changes._")
			fmt.Fprintln(out)
			continue
		}
		for _, commit := range segment.Commits {
			fmt.Fprintf(out, "- %s %s\n", shortID(commit.ID), commit.Title)
		}
		fmt.Fprintln(out)
	}
	return nil
}

package output

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/fatih/color"
)

// ConsoleSegmentWriter writes segment reports to the console.
type ConsoleSegmentWriter struct{}

// Write outputs the segment report to the console.
func (w *ConsoleSegmentWriter) Write(report *SegmentReport, options OutputOptions) error {
	color.Green("Release Segments: %s", report.Module)
	fmt.Printf("Repository: %s\n", report.RepoPath)
	fmt.Printf("Commits traversed: %d\n", report.TotalCommits)
	if report.DroppedCommits > 0 {
		color.Yellow("Commits dropped (undecodable message): %d", report.DroppedCommits)
	}
	fmt.Println()

	for _, segment := range report.Segments {
		if segment.Tagged {
			color.Cyan("== %s (%d commits)", segment.Boundary, len(segment.Commits))
		} else {
			color.Cyan("== HEAD -> %s (%d commits)", segment.Boundary, len(segment.Commits))
		}
		tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		for _, commit := range segment.Commits {
			fmt.Fprintf(tw, "%s\t%s\n", shortID(commit.ID), commit.Title)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
		fmt.Println()
	}
	return nil
}

// ConsoleTagWriter writes tag index reports to the console.
type ConsoleTagWriter struct{}

// Write outputs the tag report to the console.
func (w *ConsoleTagWriter) Write(report *TagReport, options OutputOptions) error {
	color.Green("Release Tags: %s", report.Module)
	fmt.Printf("Repository: %s\n", report.RepoPath)
	fmt.Printf("Tags matched: %d\n\n", len(report.Tags))

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Tag\tTarget")
	for _, tag := range report.Tags {
		fmt.Fprintf(tw, "%s\t%s\n", tag.Name, shortID(tag.Target))
	}
	return tw.Flush()
}

// ConsoleModuleWriter writes workspace module reports to the console.
type ConsoleModuleWriter struct{}

// Write outputs the module report to the console.
func (w *ConsoleModuleWriter) Write(report *ModuleReport, options OutputOptions) error {
	color.Green("Workspace Modules")
	fmt.Printf("Repository: %s\n", report.RepoPath)
	fmt.Printf("Modules: %d\n\n", len(report.Modules))

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Module\tDirectory\tTag Prefix")
	for _, mod := range report.Modules {
		dir := mod.Dir
		if dir == "" {
			dir = "."
		}
		prefix := mod.TagPrefix
		if prefix == "" {
			prefix = "(global)"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", mod.Name, dir, prefix)
	}
	return tw.Flush()
}

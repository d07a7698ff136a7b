package output

import "time"

// Compile-time interface conformance checks.
var (
	_ SegmentReportWriter = (*ConsoleSegmentWriter)(nil)
	_ SegmentReportWriter = (*JSONSegmentWriter)(nil)
	_ SegmentReportWriter = (*MarkdownSegmentWriter)(nil)

	_ TagReportWriter = (*ConsoleTagWriter)(nil)
	_ TagReportWriter = (*JSONTagWriter)(nil)

	_ ModuleReportWriter = (*ConsoleModuleWriter)(nil)
	_ ModuleReportWriter = (*JSONModuleWriter)(nil)
)

// OutputFormat represents the output format type.
type OutputFormat string

const (
	FormatConsole  OutputFormat = "console"
	FormatJSON     OutputFormat = "json"
	FormatMarkdown OutputFormat = "markdown"
)

// OutputOptions controls output behavior.
type OutputOptions struct {
	Format     OutputFormat
	OutputPath string
}

// SegmentReport holds the release segments produced for one module.
type SegmentReport struct {
	RepoPath       string
	Module         string
	GeneratedAt    time.Time
	TotalCommits   int
	DroppedCommits int
	Segments       []SegmentInfo
}

// SegmentInfo is one release window in a report.
type SegmentInfo struct {
	Boundary string
	Tagged   bool
	Commits  []CommitInfo
}

// CommitInfo identifies one relevant commit.
type CommitInfo struct {
	ID    string
	Title string
}

// TagReport holds the tag index built for one module.
type TagReport struct {
	RepoPath    string
	Module      string
	GeneratedAt time.Time
	Tags        []TagInfo
}

// TagInfo is one release tag with its peeled target commit.
type TagInfo struct {
	Name   string
	Target string
}

// ModuleReport holds the discovered workspace modules.
type ModuleReport struct {
	RepoPath    string
	GeneratedAt time.Time
	Modules     []ModuleInfo
}

// ModuleInfo is one workspace member.
type ModuleInfo struct {
	Name      string
	Dir       string
	TagPrefix string
}

// SegmentReportWriter writes segment reports.
type SegmentReportWriter interface {
	Write(report *SegmentReport, options OutputOptions) error
}

// TagReportWriter writes tag index reports.
type TagReportWriter interface {
	Write(report *TagReport, options OutputOptions) error
}

// ModuleReportWriter writes workspace module reports.
type ModuleReportWriter interface {
	Write(report *ModuleReport, options OutputOptions) error
}

// NewSegmentWriter returns the segment writer for the given format.
func NewSegmentWriter(format OutputFormat) SegmentReportWriter {
	switch format {
	case FormatJSON:
		return &JSONSegmentWriter{}
	case FormatMarkdown:
		return &MarkdownSegmentWriter{}
	default:
		return &ConsoleSegmentWriter{}
	}
}

// NewTagWriter returns the tag writer for the given format.
func NewTagWriter(format OutputFormat) TagReportWriter {
	if format == FormatJSON {
		return &JSONTagWriter{}
	}
	return &ConsoleTagWriter{}
}

// NewModuleWriter returns the module writer for the given format.
func NewModuleWriter(format OutputFormat) ModuleReportWriter {
	if format == FormatJSON {
		return &JSONModuleWriter{}
	}
	return &ConsoleModuleWriter{}
}

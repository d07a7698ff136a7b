package output

import (
	"encoding/json"
)

// JSONSegmentWriter writes segment reports as JSON.
type JSONSegmentWriter struct{}

// JSONSegmentReport is the JSON output structure for segment reports.
type JSONSegmentReport struct {
	RepoPath       string            `json:"repo"`
	Module         string            `json:"module"`
	GeneratedAt    string            `json:"generatedAt"`
	TotalCommits   int               `json:"totalCommits"`
	DroppedCommits int               `json:"droppedCommits"`
	Segments       []JSONSegmentInfo `json:"segments"`
}

// JSONSegmentInfo is the JSON output structure for a single segment.
type JSONSegmentInfo struct {
	Boundary string           `json:"boundary"`
	Tagged   bool             `json:"tagged"`
	Commits  []JSONCommitInfo `json:"commits"`
}

// JSONCommitInfo is the JSON output structure for a single commit.
type JSONCommitInfo struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// Write outputs the segment report as JSON.
func (w *JSONSegmentWriter) Write(report *SegmentReport, options OutputOptions) error {
	out := JSONSegmentReport{
		RepoPath:       report.RepoPath,
		Module:         report.Module,
		GeneratedAt:    report.GeneratedAt.Format(reportDateTimeLayout),
		TotalCommits:   report.TotalCommits,
		DroppedCommits: report.DroppedCommits,
		Segments:       make([]JSONSegmentInfo, 0, len(report.Segments)),
	}
	for _, segment := range report.Segments {
		info := JSONSegmentInfo{
			Boundary: segment.Boundary,
			Tagged:   segment.Tagged,
			Commits:  make([]JSONCommitInfo, 0, len(segment.Commits)),
		}
		for _, commit := range segment.Commits {
			info.Commits = append(info.Commits, JSONCommitInfo{ID: commit.ID, Title: commit.Title})
		}
		out.Segments = append(out.Segments, info)
	}
	return writeJSON(out, options)
}

// JSONTagWriter writes tag index reports as JSON.
type JSONTagWriter struct{}

// JSONTagReport is the JSON output structure for tag reports.
type JSONTagReport struct {
	RepoPath    string        `json:"repo"`
	Module      string        `json:"module"`
	GeneratedAt string        `json:"generatedAt"`
	Tags        []JSONTagInfo `json:"tags"`
}

// JSONTagInfo is the JSON output structure for a single tag.
type JSONTagInfo struct {
	Name   string `json:"name"`
	Target string `json:"target"`
}

// Write outputs the tag report as JSON.
func (w *JSONTagWriter) Write(report *TagReport, options OutputOptions) error {
	out := JSONTagReport{
		RepoPath:    report.RepoPath,
		Module:      report.Module,
		GeneratedAt: report.GeneratedAt.Format(reportDateTimeLayout),
		Tags:        make([]JSONTagInfo, 0, len(report.Tags)),
	}
	for _, tag := range report.Tags {
		out.Tags = append(out.Tags, JSONTagInfo{Name: tag.Name, Target: tag.Target})
	}
	return writeJSON(out, options)
}

// JSONModuleWriter writes workspace module reports as JSON.
type JSONModuleWriter struct{}

// JSONModuleReport is the JSON output structure for module reports.
type JSONModuleReport struct {
	RepoPath    string           `json:"repo"`
	GeneratedAt string           `json:"generatedAt"`
	Modules     []JSONModuleInfo `json:"modules"`
}

// JSONModuleInfo is the JSON output structure for a single module.
type JSONModuleInfo struct {
	Name      string `json:"name"`
	Dir       string `json:"dir"`
	TagPrefix string `json:"tagPrefix,omitempty"`
}

// Write outputs the module report as JSON.
func (w *JSONModuleWriter) Write(report *ModuleReport, options OutputOptions) error {
	out := JSONModuleReport{
		RepoPath:    report.RepoPath,
		GeneratedAt: report.GeneratedAt.Format(reportDateTimeLayout),
		Modules:     make([]JSONModuleInfo, 0, len(report.Modules)),
	}
	for _, mod := range report.Modules {
		out.Modules = append(out.Modules, JSONModuleInfo{Name: mod.Name, Dir: mod.Dir, TagPrefix: mod.TagPrefix})
	}
	return writeJSON(out, options)
}

func writeJSON(v any, options OutputOptions) error {
	out, file, err := createWriter(options.OutputPath)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

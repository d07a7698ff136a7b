package cmd

import (
	"time"

	"github.com/relscope/relscope/internal/history"
	"github.com/relscope/relscope/internal/output"
	"github.com/urfave/cli/v2"
)

// SegmentsCmd returns the segments command.
func SegmentsCmd() *cli.Command {
	flags := append(commonFlags(),
		&cli.StringFlag{
			Name:    "module",
			Aliases: []string{"m"},
			Usage:   "Module to segment (default: every workspace module)",
		},
	)

	return &cli.Command{
		Name:    "segments",
		Aliases: []string{"s"},
		Usage:   "Split commit history into per-release segments scoped to a module",
		Flags:   flags,
		Action:  segmentsAction,
	}
}

func segmentsAction(c *cli.Context) error {
	ctx, err := NewCommandContext(c)
	if err != nil {
		return err
	}
	if !ctx.HasHistory() {
		ctx.PrintNoHistoryMessage()
		return nil
	}

	modules, err := ctx.TargetModules(c)
	if err != nil {
		return err
	}

	opts := OutputOptions(c, ctx.Config)
	writer := output.NewSegmentWriter(opts.Format)
	for _, mod := range modules {
		segments, err := history.Segments(ctx.Repo, ctx.History, mod)
		if err != nil {
			return err
		}
		report := &output.SegmentReport{
			RepoPath:       ctx.RepoPath,
			Module:         mod.Name,
			GeneratedAt:    time.Now(),
			TotalCommits:   len(ctx.History.Commits),
			DroppedCommits: ctx.History.Dropped,
			Segments:       segmentInfos(segments),
		}
		if err := writer.Write(report, opts); err != nil {
			return err
		}
	}
	return nil
}

func segmentInfos(segments []history.Segment) []output.SegmentInfo {
	infos := make([]output.SegmentInfo, 0, len(segments))
	for _, segment := range segments {
		info := output.SegmentInfo{
			Boundary: segment.Boundary.Ref,
			Tagged:   !segment.Boundary.IsHead(),
			Commits:  make([]output.CommitInfo, 0, len(segment.Commits)),
		}
		for _, commit := range segment.Commits {
			info.Commits = append(info.Commits, output.CommitInfo{
				ID:    commit.ID.String(),
				Title: commit.Title(),
			})
		}
		infos = append(infos, info)
	}
	return infos
}

package cmd

import (
	"sort"
	"time"

	"github.com/relscope/relscope/internal/history"
	"github.com/relscope/relscope/internal/output"
	"github.com/urfave/cli/v2"
)

// TagsCmd returns the tags command.
func TagsCmd() *cli.Command {
	flags := append(commonFlags(),
		&cli.StringFlag{
			Name:     "module",
			Aliases:  []string{"m"},
			Usage:    "Module whose tag index to show",
			Required: true,
		},
	)

	return &cli.Command{
		Name:   "tags",
		Usage:  "Show the release tags mapped for a module",
		Flags:  flags,
		Action: tagsAction,
	}
}

func tagsAction(c *cli.Context) error {
	ctx, err := NewCommandContext(c)
	if err != nil {
		return err
	}

	mod, err := ctx.Workspace.ModuleByName(c.String("module"))
	if err != nil {
		return err
	}

	index, err := history.BuildTagIndex(ctx.Repo, mod)
	if err != nil {
		return err
	}

	report := &output.TagReport{
		RepoPath:    ctx.RepoPath,
		Module:      mod.Name,
		GeneratedAt: time.Now(),
		Tags:        make([]output.TagInfo, 0, len(index)),
	}
	for _, tag := range index {
		report.Tags = append(report.Tags, output.TagInfo{
			Name:   tag.Name,
			Target: tag.Target.String(),
		})
	}
	sort.Slice(report.Tags, func(i, j int) bool { return report.Tags[i].Name < report.Tags[j].Name })

	opts := OutputOptions(c, ctx.Config)
	return output.NewTagWriter(opts.Format).Write(report, opts)
}

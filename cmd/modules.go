package cmd

import (
	"time"

	"github.com/relscope/relscope/internal/output"
	"github.com/urfave/cli/v2"
)

// ModulesCmd returns the modules command.
func ModulesCmd() *cli.Command {
	return &cli.Command{
		Name:   "modules",
		Usage:  "List the discovered workspace modules",
		Flags:  commonFlags(),
		Action: modulesAction,
	}
}

func modulesAction(c *cli.Context) error {
	ctx, err := NewCommandContext(c)
	if err != nil {
		return err
	}

	report := &output.ModuleReport{
		RepoPath:    ctx.RepoPath,
		GeneratedAt: time.Now(),
		Modules:     make([]output.ModuleInfo, 0, len(ctx.Workspace.Modules)),
	}
	for _, mod := range ctx.Workspace.Modules {
		report.Modules = append(report.Modules, output.ModuleInfo{
			Name:      mod.Name,
			Dir:       mod.Dir,
			TagPrefix: mod.TagPrefix,
		})
	}

	opts := OutputOptions(c, ctx.Config)
	return output.NewModuleWriter(opts.Format).Write(report, opts)
}

package cmd

import (
	"fmt"

	"github.com/relscope/relscope/config"
	"github.com/relscope/relscope/internal/gitrepo"
	"github.com/relscope/relscope/internal/history"
	"github.com/relscope/relscope/internal/output"
	"github.com/relscope/relscope/internal/workspace"
	"github.com/urfave/cli/v2"
)

// CommandContext holds common state for command execution: loaded
// configuration, the open repository, the discovered workspace, and the
// commit history built once for all modules.
type CommandContext struct {
	Config    *config.Config
	RepoPath  string
	Repo      *gitrepo.Repository
	Workspace *workspace.Workspace
	// History is nil when the repository has no commits yet.
	History *history.History
}

// NewCommandContext creates a context from CLI flags. It performs
// configuration loading, repository opening, workspace discovery, and the
// single ancestry walk.
func NewCommandContext(c *cli.Context) (*CommandContext, error) {
	cfg, err := loadConfig(c)
	if err != nil {
		return nil, err
	}

	repoPath := c.String("repo")
	repo, err := gitrepo.Open(repoPath)
	if err != nil {
		return nil, err
	}

	ws, err := workspace.Discover(workspace.DiscoverOptions{
		RootDir:     repoPath,
		Exclude:     cfg.Discovery.Exclude,
		TagPrefixes: cfg.Tags.Prefixes,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to discover workspace: %w", err)
	}

	h, err := history.Build(repo)
	if err != nil {
		return nil, err
	}

	return &CommandContext{
		Config:    cfg,
		RepoPath:  repoPath,
		Repo:      repo,
		Workspace: ws,
		History:   h,
	}, nil
}

// HasHistory returns true if the repository has any commits.
func (ctx *CommandContext) HasHistory() bool {
	return ctx.History != nil
}

// PrintNoHistoryMessage prints a notice for repositories without commits.
func (ctx *CommandContext) PrintNoHistoryMessage() {
	fmt.Println("Repository has no commits yet.")
}

// TargetModules resolves the --module flag: one named module, or every
// workspace module when the flag is absent.
func (ctx *CommandContext) TargetModules(c *cli.Context) ([]workspace.Module, error) {
	name := c.String("module")
	if name == "" {
		return ctx.Workspace.Modules, nil
	}
	mod, err := ctx.Workspace.ModuleByName(name)
	if err != nil {
		return nil, err
	}
	return []workspace.Module{mod}, nil
}

// OutputOptions creates OutputOptions from CLI flags.
func OutputOptions(c *cli.Context, cfg *config.Config) output.OutputOptions {
	return output.OutputOptions{
		Format:     getOutputFormat(c, cfg),
		OutputPath: c.String("output"),
	}
}

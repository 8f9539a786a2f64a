package cli

import (
	"context"

	"github.com/spf13/cobra"

	"resume-review/internal/bootstrap"
	"resume-review/internal/report"
	"resume-review/internal/shared/config"
)

// AppBuilder constructs the wired application for a command run.
type AppBuilder func(ctx context.Context) (*bootstrap.App, error)

// Options controls how the command tree reaches the application.
type Options struct {
	Build  AppBuilder
	Config func() config.Config
	Styles report.Styles
}

// DefaultOptions loads configuration from the environment and builds the full app.
func DefaultOptions() Options {
	return Options{
		Build: func(ctx context.Context) (*bootstrap.App, error) {
			return bootstrap.Build(ctx, config.Load())
		},
		Config: config.Load,
		Styles: report.DefaultStyles(),
	}
}

// NewRootCommand returns the resumectl command tree.
func NewRootCommand(opts Options) *cobra.Command {
	root := &cobra.Command{
		Use:   "resumectl",
		Short: "Analyze resumes and browse analysis history",
		Long: `resumectl recovers text from resume documents, sends it to the
language model for a structured ATS-style review and keeps every
successful analysis in the configured history backend.`,
		SilenceUsage: true,
	}

	root.AddCommand(newAnalyzeCmd(opts))
	root.AddCommand(newExtractCmd(opts))
	root.AddCommand(newHistoryCmd(opts))
	root.AddCommand(newServeCmd(opts))
	return root
}

// Execute runs the command tree with default options.
func Execute(ctx context.Context) error {
	return NewRootCommand(DefaultOptions()).ExecuteContext(ctx)
}

func withApp(cmd *cobra.Command, opts Options, fn func(app *bootstrap.App) error) error {
	app, err := opts.Build(cmd.Context())
	if err != nil {
		return err
	}
	defer app.Close()
	return fn(app)
}

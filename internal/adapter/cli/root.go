// Package cli wires the cobra command tree for reviewd.
package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/bkyoung/review-assistant/internal/adapter/output/markdown"
	"github.com/bkyoung/review-assistant/internal/domain"
)

// ErrVersionRequested indicates the user requested the version and no
// further work should be done.
var ErrVersionRequested = errors.New("version requested")

// CodeReviewer runs the review pipeline over raw diff text.
type CodeReviewer interface {
	ReviewCode(ctx context.Context, code string) domain.Result
}

// DiffEngine produces local diffs for the review command.
type DiffEngine interface {
	Diff(ctx context.Context, baseRef string) (string, error)
	CurrentBranch(ctx context.Context) (string, error)
}

// Arguments encapsulates IO writers injected from the host process.
type Arguments struct {
	OutWriter io.Writer
	ErrWriter io.Writer
}

// Dependencies captures the collaborators for the CLI.
type Dependencies struct {
	Reviewer      CodeReviewer
	Git           DiffEngine
	Serve         func(ctx context.Context) error
	Args          Arguments
	DefaultOutput string
	DefaultRepo   string
	Version       string
}

// NewRootCommand constructs the root cobra command.
func NewRootCommand(deps Dependencies) *cobra.Command {
	versionString := deps.Version
	if versionString == "" {
		versionString = "v0.0.0"
	}

	root := &cobra.Command{
		Use:   "reviewd",
		Short: "AI pull request review service",
	}
	root.SilenceUsage = true
	root.SilenceErrors = true

	outWriter := deps.Args.OutWriter
	if outWriter == nil {
		outWriter = os.Stdout
	}
	errWriter := deps.Args.ErrWriter
	if errWriter == nil {
		errWriter = os.Stderr
	}
	root.SetOut(outWriter)
	root.SetErr(errWriter)

	root.AddCommand(serveCommand(deps.Serve))
	root.AddCommand(reviewCommand(deps.Reviewer, deps.Git, deps.DefaultOutput, deps.DefaultRepo))

	var showVersion bool
	root.PersistentFlags().BoolVarP(&showVersion, "version", "v", false, "Show version and exit")
	versionHandler := func(cmd *cobra.Command, args []string) error {
		if showVersion {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), versionString)
			return ErrVersionRequested
		}
		return nil
	}
	root.PersistentPreRunE = versionHandler
	root.PreRunE = versionHandler
	root.RunE = func(cmd *cobra.Command, args []string) error {
		if err := versionHandler(cmd, args); err != nil {
			return err
		}
		return cmd.Help()
	}

	return root
}

func serveCommand(serve func(ctx context.Context) error) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the webhook HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			if serve == nil {
				return errors.New("server is not configured")
			}
			return serve(cmd.Context())
		},
	}
}

func reviewCommand(reviewer CodeReviewer, gitEngine DiffEngine, defaultOutput, defaultRepo string) *cobra.Command {
	var baseRef string
	var outputDir string
	var save bool
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "review",
		Short: "Review the local branch against a base ref",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			diff, err := gitEngine.Diff(ctx, baseRef)
			if err != nil {
				return fmt.Errorf("compute diff: %w", err)
			}
			if diff == "" {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No changes to review.")
				return nil
			}

			result := reviewer.ReviewCode(ctx, diff)

			if save && outputDir == "" {
				outputDir = defaultOutput
			}

			report := markdown.Report{
				OutputDir:  outputDir,
				Repository: defaultRepo,
				BaseRef:    baseRef,
				Result:     result,
			}

			if outputDir != "" {
				writer := markdown.NewWriter(func() string {
					return time.Now().UTC().Format("20060102T150405Z")
				})
				path, err := writer.Write(ctx, report)
				if err != nil {
					return fmt.Errorf("write report: %w", err)
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), path)
				return nil
			}

			if asJSON || !isOutputTerminal() {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(result)
			}

			_, _ = fmt.Fprint(cmd.OutOrStdout(), markdown.Render(report))
			return nil
		},
	}

	cmd.Flags().StringVar(&baseRef, "base", "main", "Base ref to diff against")
	cmd.Flags().StringVar(&outputDir, "output", "", "Directory for a Markdown report (default: print to stdout)")
	cmd.Flags().BoolVar(&save, "save", false, "Write a Markdown report to the configured output directory")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the result as JSON")

	return cmd
}

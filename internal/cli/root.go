package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jimdowning-cyclops/versioning-go/internal/config"
	"github.com/jimdowning-cyclops/versioning-go/internal/git"
	"github.com/jimdowning-cyclops/versioning-go/internal/log"
	"github.com/jimdowning-cyclops/versioning-go/internal/store"
	"github.com/jimdowning-cyclops/versioning-go/internal/version"
)

var ErrLogHandlerFailed = errors.New("log handler failed")

const longDesc = `Bump the version stored in a VERSION file.

The file holds a single version in the form vMAJOR.MINOR.RELEASE.
A missing file is treated as v0.0.0.

  major     vX.Y.Z -> v(X+1).0.0
  minor     vX.Y.Z -> vX.(Y+1).0
  release   vX.Y.Z -> vX.Y.(Z+1)
`

// NewRootCmd returns the root command. Run without arguments it prints usage.
func NewRootCmd(name string) *cobra.Command {
	var cfg *config.Config

	cmd := &cobra.Command{
		Use:           name + " [major|minor|release]",
		Short:         "Bump the version stored in a VERSION file",
		Long:          longDesc,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       GetVersionString(),
		ValidArgs:     kindNames(),
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) > 1 {
				return &UsageError{Err: fmt.Errorf("expected at most one argument, got %d", len(args))}
			}
			return nil
		},
	}

	config.AddFlags(cmd.Flags())

	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &UsageError{Err: err}
	})

	cmd.PreRunE = func(cc *cobra.Command, _ []string) error {
		var err error
		cfg, err = config.Load(cc.Flags())
		if err != nil {
			return &UsageError{Err: err}
		}

		h, err := log.CreateHandler(cc.ErrOrStderr(), cfg.LogLevel, cfg.LogFormat)
		if err != nil {
			return &UsageError{Err: fmt.Errorf("%w: %w", ErrLogHandlerFailed, err)}
		}
		slog.SetDefault(slog.New(h))

		return nil
	}

	cmd.RunE = func(cc *cobra.Command, args []string) error {
		if len(args) == 0 {
			return cc.Help()
		}

		kind, err := version.ParseKind(args[0])
		if err != nil {
			return &UsageError{Err: err}
		}

		res, err := bump(cc.Context(), cfg, kind)
		if err != nil {
			return err
		}

		return writeResult(cc.OutOrStdout(), cfg.Output, res)
	}

	return cmd
}

// bump performs load, bump and save against the configured version file,
// then commits and tags it when requested.
func bump(ctx context.Context, cfg *config.Config, kind version.Kind) (Result, error) {
	st := store.New(cfg.Path)

	current, err := st.Load()
	if err != nil {
		return Result{}, err
	}

	next, err := current.Bump(kind)
	if err != nil {
		return Result{}, err
	}

	res := Result{
		File:    st.Path(),
		Bump:    kind.String(),
		Current: current.String(),
		Next:    next.String(),
		DryRun:  cfg.DryRun,
	}

	dir := filepath.Dir(st.Path())

	if cfg.Tag {
		res.Tag = git.TagName(next)
		// Fail before touching the file if the tag cannot be created.
		if err := git.CheckTag(ctx, dir, res.Tag); err != nil {
			return Result{}, err
		}
	}

	if cfg.DryRun {
		slog.Info("dry run, version file not written", "path", st.Path(), "current", res.Current, "next", res.Next)
		return res, nil
	}

	if err := st.Save(next); err != nil {
		return Result{}, err
	}
	slog.Info("bumped version", "path", st.Path(), "bump", res.Bump, "current", res.Current, "next", res.Next)

	if cfg.Tag {
		msg := fmt.Sprintf("Bump version: %s → %s", res.Current, res.Next)
		if err := git.CommitFile(ctx, dir, filepath.Base(st.Path()), msg); err != nil {
			return Result{}, err
		}
		if err := git.CreateTag(ctx, dir, res.Tag, "Release "+res.Next); err != nil {
			return Result{}, err
		}
		slog.Info("created tag", "tag", res.Tag)
	}

	return res, nil
}

func kindNames() []string {
	kinds := version.Kinds()
	names := make([]string, 0, len(kinds))
	for _, k := range kinds {
		names = append(names, k.String())
	}
	return names
}

// Execute runs the root command with args and returns the process exit code.
// Errors go to stderr; usage errors are followed by the usage text.
func Execute(ctx context.Context, name string, args []string, stdout, stderr io.Writer) int {
	cmd := NewRootCmd(name)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return ExitOK
	}

	fmt.Fprintf(stderr, "error: %v\n", err)

	var ue *UsageError
	if errors.As(err, &ue) {
		fmt.Fprintln(stderr)
		fmt.Fprint(stderr, strings.TrimLeft(cmd.UsageString(), "\n"))
	}

	return ExitCode(err)
}

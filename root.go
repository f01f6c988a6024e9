package main

import (
	"errors"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"gitree/internal/config"
	"gitree/internal/gitrepo"
	"gitree/internal/logging"
)

type rootOptions struct {
	repo    string
	config  string
	logFile string
	verbose bool
}

func newRootCmd() *cobra.Command {
	var opts rootOptions
	cmd := &cobra.Command{
		Use:           "gitree [path]",
		Short:         "Browse and stage the changed files of a git working copy",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "."
			if len(args) > 0 {
				path = args[0]
			}
			if opts.repo != "" {
				path = opts.repo
			}
			return run(path, opts)
		},
	}
	cmd.Flags().StringVarP(&opts.repo, "repo", "r", "", "path inside the repository to browse")
	cmd.Flags().StringVarP(&opts.config, "config", "c", "", "config file (default <repo>/.gitree.toml)")
	cmd.Flags().StringVar(&opts.logFile, "log-file", "", `log file, "-" to disable`)
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "debug logging")

	cmd.AddCommand(newVersionCmd())
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "gitree %s\n", version)
		},
	}
}

// setup resolves the repository, configuration and logger for path. A path
// outside any repository is not an error: the returned repo is nil and the
// caller asks for another path.
func setup(path string, opts rootOptions) (*gitrepo.Repo, config.Config, *logrus.Logger, io.Closer, error) {
	configDir := path
	probe, err := gitrepo.Open(path, gitrepo.Options{})
	switch {
	case err == nil:
		configDir = probe.Root()
	case !errors.Is(err, gitrepo.ErrNotRepository):
		return nil, config.Config{}, nil, nil, err
	}

	cfg, err := config.Load(opts.config, configDir)
	if err != nil {
		return nil, config.Config{}, nil, nil, err
	}
	if opts.logFile != "" {
		cfg.LogFile = opts.logFile
	}
	if opts.verbose {
		cfg.LogLevel = "debug"
	}

	logger, closer, err := logging.New(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return nil, config.Config{}, nil, nil, err
	}
	if probe == nil {
		logger.WithField("path", path).Info("not inside a repository")
		return nil, cfg, logger, closer, nil
	}

	repo, err := openRepo(probe.Root(), cfg, logger)
	if err != nil {
		closer.Close()
		return nil, config.Config{}, nil, nil, err
	}
	return repo, cfg, logger, closer, nil
}

func openRepo(path string, cfg config.Config, log logrus.FieldLogger) (*gitrepo.Repo, error) {
	return gitrepo.Open(path, gitrepo.Options{Exclude: cfg.Git.Exclude, Logger: log})
}

func run(path string, opts rootOptions) error {
	repo, cfg, logger, closer, err := setup(path, opts)
	if err != nil {
		return err
	}
	defer closer.Close()

	var m tea.Model
	if repo == nil {
		m = newPathPrompt(cfg, logger)
	} else {
		logger.WithField("repo", repo.Root()).Info("starting browser")
		m = newBrowser(repo, cfg, logger)
	}

	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}

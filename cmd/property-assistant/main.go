// Package main provides the property-assistant CLI.
package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	configpkg "github.com/minhyannv/property-assistant-go/pkg/config"
	loggerpkg "github.com/minhyannv/property-assistant-go/pkg/logger"
)

// main is the program entry point.
func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newRootCmd creates the root command with its flags and subcommands.
func newRootCmd() *cobra.Command {
	flags := defaultFlags()

	root := &cobra.Command{
		Use:   "property-assistant",
		Short: "Ask questions about a Zillow listing",
		Long: "Fetch the property record for an address and zpid, upload it to an assistant " +
			"with the code interpreter tool, and answer questions about it interactively.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runAssistant(cmd, flags)
		},
	}

	root.PersistentFlags().StringVar(&flags.configFile, "config", flags.configFile, "proxy configuration file (ini)")
	root.Flags().StringVar(&flags.profileFile, "profile", "", "assistant profile file (YAML or Markdown with front matter)")
	root.Flags().StringVar(&flags.outputPath, "output", flags.outputPath, "where the property record is written")
	root.Flags().DurationVar(&flags.pollInterval, "poll-interval", flags.pollInterval, "delay between run status checks")
	root.Flags().DurationVar(&flags.pollTimeout, "poll-timeout", 0, "give up waiting for an answer after this long (0 waits forever)")
	root.Flags().IntVar(&flags.maxPolls, "max-polls", 0, "give up after this many status checks (0 means no limit)")
	root.Flags().BoolVar(&flags.verbose, "verbose", false, "print diagnostic logs to stderr")
	root.Flags().BoolVar(&flags.skipFetch, "skip-fetch", false, "reuse the existing output file instead of fetching")

	root.AddCommand(newInitConfigCmd(&flags))
	return root
}

func runAssistant(cmd *cobra.Command, flags cliFlags) error {
	_ = godotenv.Load()

	cfg, err := buildConfig(flags, os.Getenv)
	if err != nil {
		return err
	}

	var logger loggerpkg.Logger = loggerpkg.NopLogger{}
	if cfg.Verbose {
		logger = loggerpkg.NewWriterLogger(cmd.ErrOrStderr())
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	a := &app{
		cfg:         cfg,
		logger:      logger,
		in:          cmd.InOrStdin(),
		out:         cmd.OutOrStdout(),
		interactive: isTerminal(cmd.InOrStdin()),
	}
	return a.run(ctx)
}

// isTerminal reports whether r is a file attached to a terminal.
func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func newInitConfigCmd(flags *cliFlags) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init-config",
		Short: "Write an empty proxy configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := configpkg.WriteProxyTemplate(flags.configFile, force); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", flags.configFile)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	return cmd
}

package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/sangamparmar/MovieFrenz/config"
	"github.com/sangamparmar/MovieFrenz/service"
)

const appName = "moviefrenz"

// session is what every subcommand shares once flags and config are resolved.
type session struct {
	cfg    *config.Config
	logger *slog.Logger
	client *service.Client
	closer io.Closer
}

func (s *session) credential() service.Credential {
	return service.Credential{Token: s.cfg.Token}
}

// batchClient is the client for one-shot commands, which may retry.
func (s *session) batchClient() *service.Client {
	return s.client.WithRetries(s.cfg.Retries)
}

func (s *session) logFetchError(msg string, err error) {
	switch {
	case service.IsUnauthorized(err):
		s.logger.Warn(msg, "reason", "unauthorized", "error", err)
	case service.IsNotFound(err):
		s.logger.Error(msg, "reason", "endpoint not found", "api_url", s.cfg.APIBaseURL, "error", err)
	default:
		s.logger.Error(msg, "error", err)
	}
}

func newRootCmd(version, commit string) *cobra.Command {
	var flags config.Flags
	current := &session{}

	root := &cobra.Command{
		Use:           appName,
		Short:         "Your movie tickets from the terminal",
		Long:          "MovieFrenz lists the tickets you bought, exports them as PDF and takes payment for a seat selection.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "version" {
				return nil
			}
			cfg, err := flags.Resolve(cmd.Flags())
			if err != nil {
				return err
			}
			logger, closer, err := newLogger(cfg)
			if err != nil {
				return err
			}
			current.cfg = cfg
			current.logger = logger
			current.closer = closer
			current.client = service.NewClient(cfg.APIBaseURL, &http.Client{Timeout: cfg.RequestTimeout}, logger)
			logger.Debug("starting", "command", cmd.Name(), "version", version, "api_url", cfg.APIBaseURL)
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if current.closer != nil {
				return current.closer.Close()
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTickets(current)
		},
	}
	flags.Register(root.PersistentFlags())

	root.AddCommand(
		newTicketsCmd(current),
		newPayCmd(current),
		newListCmd(current),
		newExportCmd(current),
		newLastCmd(current),
		newVersionCmd(version, commit),
	)
	return root
}

func Execute(version, commit string) {
	if err := newRootCmd(version, commit).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newVersionCmd(version, commit string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of MovieFrenz",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s %s", appName, version)
			if commit != "none" && commit != "" {
				fmt.Fprintf(out, " (%s)", commit)
			}
			fmt.Fprintln(out)
		},
	}
}

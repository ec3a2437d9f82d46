package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"campus-helpdesk/internal/backend"
	"campus-helpdesk/internal/config"
	"campus-helpdesk/internal/export"
	"campus-helpdesk/internal/logging"
	"campus-helpdesk/internal/ui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "helpdesk",
		Short: "Terminal front-end for the campus student helpdesk",
		Long: `helpdesk is a terminal client for the college helpdesk service.

It shows the college landing page, a chat panel that forwards questions to the
helpdesk backend, and an admin console that uploads documents or website URLs
into the chatbot's knowledge base.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), cmd)
		},
	}
	config.AddFlags(rootCmd.Flags())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, cmd *cobra.Command) error {
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return err
	}

	logger, closer, err := logging.New(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return err
	}
	defer closer.Close()

	exporter, err := export.New(cfg.ExportDir)
	if err != nil {
		return errors.Wrap(err, "prepare export directory")
	}

	client := backend.New(cfg.BackendURL,
		backend.WithHTTPClient(&http.Client{Timeout: cfg.RequestTimeout}),
		backend.WithLogger(logger),
	)

	model := ui.NewModel(ctx, cfg, client, exporter, logger)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		logger.Error().Err(err).Msg("program exited with error")
		return errors.Wrap(err, "run helpdesk")
	}
	return nil
}

package cmd

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/sangamparmar/MovieFrenz/model"
	"github.com/sangamparmar/MovieFrenz/store"
	"github.com/sangamparmar/MovieFrenz/tui"
)

func newTicketsCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "tickets",
		Short: "Browse your tickets and download them as PDF",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTickets(s)
		},
	}
}

func newPayCmd(s *session) *cobra.Command {
	var bookingPath string
	cmd := &cobra.Command{
		Use:   "pay",
		Short: "Pay for a seat selection",
		Long:  "Opens the payment form for the showtime and seats in the --booking JSON file.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			selection, err := store.LoadBookingSelection(bookingPath)
			if err != nil {
				if errors.Is(err, store.ErrNoSelection) {
					return fmt.Errorf("%s: %w", bookingPath, err)
				}
				return err
			}
			return runProgram(s, &selection)
		},
	}
	cmd.Flags().StringVar(&bookingPath, "booking", "", "JSON file with the showtime and selected seats")
	_ = cmd.MarkFlagRequired("booking")
	return cmd
}

func runTickets(s *session) error {
	return runProgram(s, nil)
}

func runProgram(s *session, selection *model.BookingSelection) error {
	app := tui.New(tui.Options{
		Client:      s.client,
		Credential:  s.credential(),
		Logger:      s.logger,
		DownloadDir: s.cfg.DownloadDir,
		Timeout:     s.cfg.RequestTimeout,
		Selection:   selection,
	})
	if _, err := tea.NewProgram(app, tea.WithAltScreen()).Run(); err != nil {
		return err
	}
	return nil
}

package cmd

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/sangamparmar/MovieFrenz/model"
	"github.com/sangamparmar/MovieFrenz/store"
)

const noBookingMessage = "No booking has been confirmed yet"

func newLastCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "last",
		Short: "Show the most recently confirmed booking",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			booking, ok, err := store.LoadLastBooking()
			if err != nil {
				s.logger.Error("load last booking failed", "error", err)
				return err
			}
			out := cmd.OutOrStdout()
			if !ok {
				_, err := fmt.Fprintln(out, noBookingMessage)
				return err
			}
			renderBooking(out, booking)
			return nil
		},
	}
}

func renderBooking(out io.Writer, booking model.Booking) {
	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.AppendRows([]table.Row{
		{"Movie", orNA(booking.Showtime.Title)},
		{"Showtime", orNA(booking.Showtime.Showtime)},
		{"Seats", orNA(model.FormatSeats(booking.SelectedSeats))},
		{"Paid with", booking.PaymentMethod.Label()},
	})
	t.Render()
}

package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/sangamparmar/MovieFrenz/document"
	"github.com/sangamparmar/MovieFrenz/model"
)

func newExportCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "export [ticket-id]",
		Short: "Save a ticket as ticket.pdf in the download directory",
		Long:  "Saves the ticket as ticket.pdf, replacing any earlier export. Without an id you pick the ticket from a list.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), s.cfg.RequestTimeout)
			defer cancel()

			var ticket model.Ticket
			var err error
			if len(args) == 1 {
				ticket, err = s.batchClient().GetTicket(ctx, s.credential(), args[0])
			} else {
				ticket, err = promptTicket(ctx, s)
			}
			if err != nil {
				s.logFetchError("find ticket failed", err)
				return err
			}

			path, err := document.Save(ticket, s.cfg.DownloadDir)
			if err != nil {
				s.logger.Error("export ticket failed", "ticket_id", ticket.Id, "error", err)
				return err
			}
			s.logger.Info("ticket exported", "ticket_id", ticket.Id, "path", path)
			fmt.Fprintln(cmd.OutOrStdout(), "Saved", path)
			return nil
		},
	}
}

func promptTicket(ctx context.Context, s *session) (model.Ticket, error) {
	tickets, err := s.batchClient().GetTickets(ctx, s.credential())
	if err != nil {
		return model.Ticket{}, err
	}
	if len(tickets) == 0 {
		return model.Ticket{}, errors.New(model.NoTicketsMessage)
	}

	labels := make([]string, 0, len(tickets))
	for _, ticket := range tickets {
		labels = append(labels, ticketLabel(ticket))
	}
	prompt := promptui.Select{
		Label: "Ticket",
		Items: labels,
		Size:  10,
		Searcher: func(input string, index int) bool {
			return strings.Contains(strings.ToLower(labels[index]), strings.ToLower(input))
		},
	}
	index, _, err := prompt.Run()
	if err != nil {
		return model.Ticket{}, err
	}
	return tickets[index], nil
}

func ticketLabel(ticket model.Ticket) string {
	return fmt.Sprintf("%s • %s • %s (%d seats)",
		orNA(ticket.Showtime.Title),
		orNA(ticket.Showtime.Showtime),
		orNA(model.FormatSeats(ticket.Seats)),
		len(ticket.Seats),
	)
}

package cmd

import (
	"context"
	"io"
	"slices"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"golang.org/x/exp/maps"

	"github.com/sangamparmar/MovieFrenz/model"
)

func newListCmd(s *session) *cobra.Command {
	var summary bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print your tickets as a table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), s.cfg.RequestTimeout)
			defer cancel()
			tickets, err := s.batchClient().GetTickets(ctx, s.credential())
			if err != nil {
				s.logFetchError("fetch tickets failed", err)
				return err
			}
			out := cmd.OutOrStdout()
			if len(tickets) == 0 {
				_, err := io.WriteString(out, model.NoTicketsMessage+"\n")
				return err
			}
			renderTickets(out, tickets)
			if summary {
				renderSummary(out, tickets)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&summary, "summary", false, "also print seat totals per movie")
	return cmd
}

func renderTickets(out io.Writer, tickets []model.Ticket) {
	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.AppendHeader(table.Row{"Movie", "Showtime", "Seats", "#", "Ticket ID"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, AutoMerge: true, WidthMax: 30},
		{Number: 3, WidthMax: 40},
	})
	for _, ticket := range tickets {
		t.AppendRow(table.Row{
			orNA(ticket.Showtime.Title),
			orNA(ticket.Showtime.Showtime),
			orNA(model.FormatSeats(ticket.Seats)),
			len(ticket.Seats),
			ticket.Id,
		})
	}
	t.Render()
}

func renderSummary(out io.Writer, tickets []model.Ticket) {
	seats := map[string]int{}
	for _, ticket := range tickets {
		seats[orNA(ticket.Showtime.Title)] += len(ticket.Seats)
	}
	titles := maps.Keys(seats)
	slices.Sort(titles)

	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.AppendHeader(table.Row{"Movie", "Seats"})
	total := 0
	for _, title := range titles {
		t.AppendRow(table.Row{title, seats[title]})
		total += seats[title]
	}
	t.AppendFooter(table.Row{"Total", strconv.Itoa(total)})
	t.Render()
}

func orNA(v string) string {
	if v == "" {
		return "N/A"
	}
	return v
}

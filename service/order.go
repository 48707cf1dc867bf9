package service

import (
	"slices"

	"github.com/sangamparmar/MovieFrenz/model"
)

// SortTickets orders tickets by showtime string, ascending. Timestamps are
// compared as received, without parsing.
func SortTickets(tickets []model.Ticket) {
	slices.SortStableFunc(tickets, compareShowtimes)
}

// compareShowtimes never reports equality: equal showtimes compare as
// "a before b". The result is ordered but not antisymmetric on ties.
func compareShowtimes(a, b model.Ticket) int {
	if a.Showtime.Showtime > b.Showtime.Showtime {
		return 1
	}
	return -1
}

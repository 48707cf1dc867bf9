package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// NoTicketsMessage is shown wherever a user has no tickets to list.
const NoTicketsMessage = "You have not purchased any tickets yet"

type Ticket struct {
	Id       string   `json:"id"`
	Showtime Showtime `json:"showtime"`
	Seats    []Seat   `json:"seats"`
}

// UnmarshalJSON accepts "_id" when the backend does not send "id".
func (t *Ticket) UnmarshalJSON(data []byte) error {
	type ticketAlias Ticket
	var raw struct {
		ticketAlias
		MongoId string `json:"_id"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*t = Ticket(raw.ticketAlias)
	if t.Id == "" {
		t.Id = raw.MongoId
	}
	return nil
}

type Showtime struct {
	Title    string `json:"title"`
	Showtime string `json:"showtime"`
}

type Seat struct {
	Row    SeatLabel `json:"row"`
	Number SeatLabel `json:"number"`
}

func (s Seat) String() string {
	return fmt.Sprintf("Row %s, Seat %s", s.Row, s.Number)
}

// SeatLabel holds a seat row or number that the API may send either as a
// JSON string or as a JSON number.
type SeatLabel string

func (l *SeatLabel) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*l = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*l = SeatLabel(s)
		return nil
	}
	n, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return fmt.Errorf("seat label must be a string or a number, got %s", data)
	}
	*l = SeatLabel(strconv.FormatFloat(n, 'f', -1, 64))
	return nil
}

// FormatSeats renders seats as "Row R, Seat N" joined with ", ".
func FormatSeats(seats []Seat) string {
	parts := make([]string, 0, len(seats))
	for _, seat := range seats {
		parts = append(parts, seat.String())
	}
	return strings.Join(parts, ", ")
}

package model

import (
	"encoding/json"
	"testing"
)

func TestTicketUnmarshal_SeatLabelsFromStringsAndNumbers(t *testing.T) {
	var ticket Ticket
	payload := `{"id":"t1","showtime":{"title":"Dune","showtime":"2024-05-01T18:00:00Z"},"seats":[{"row":"A","number":7},{"row":3,"number":"12"},{"row":null,"number":1.0}]}`
	if err := json.Unmarshal([]byte(payload), &ticket); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if ticket.Id != "t1" {
		t.Fatalf("unexpected id: %q", ticket.Id)
	}
	got := FormatSeats(ticket.Seats)
	want := "Row A, Seat 7, Row 3, Seat 12, Row , Seat 1"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestTicketUnmarshal_FallsBackToMongoId(t *testing.T) {
	var ticket Ticket
	if err := json.Unmarshal([]byte(`{"_id":"abc","seats":[]}`), &ticket); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if ticket.Id != "abc" {
		t.Fatalf("expected id from _id, got %q", ticket.Id)
	}

	if err := json.Unmarshal([]byte(`{"id":"primary","_id":"abc"}`), &ticket); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if ticket.Id != "primary" {
		t.Fatalf("expected id to win over _id, got %q", ticket.Id)
	}
}

func TestSeatLabel_RejectsObjects(t *testing.T) {
	var seat Seat
	if err := json.Unmarshal([]byte(`{"row":{"x":1},"number":1}`), &seat); err == nil {
		t.Fatal("expected error for object seat row")
	}
}

func TestFormatSeats_Empty(t *testing.T) {
	if got := FormatSeats(nil); got != "" {
		t.Fatalf("expected empty string, got %q", got)
	}
}

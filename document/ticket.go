package document

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/phpdave11/gofpdf"
	"github.com/sangamparmar/MovieFrenz/model"
)

// FileName is the name every exported ticket is saved under.
const FileName = "ticket.pdf"

const fallback = "N/A"

// Line is one line of text placed on the ticket page.
type Line struct {
	Text     string
	FontSize float64
	Y        float64
}

// TicketLines returns the fixed ticket layout. Missing text fields are
// rendered as "N/A"; the ticket id line is only present when the id is set.
func TicketLines(ticket model.Ticket) []Line {
	lines := []Line{
		{Text: "Movie Ticket", FontSize: 18, Y: 10},
		{Text: "Showtime: " + safe(ticket.Showtime.Title), FontSize: 14, Y: 20},
		{Text: "Date and Time: " + safe(ticket.Showtime.Showtime), FontSize: 14, Y: 30},
		{Text: "Seats:", FontSize: 14, Y: 40},
		{Text: safe(model.FormatSeats(ticket.Seats)), FontSize: 14, Y: 50},
		{Text: "Number of Seats: " + strconv.Itoa(len(ticket.Seats)), FontSize: 14, Y: 60},
	}
	if ticket.Id != "" {
		lines = append(lines, Line{Text: "Ticket ID: " + ticket.Id, FontSize: 14, Y: 70})
	}
	return lines
}

// Render builds the ticket PDF in memory.
func Render(ticket model.Ticket) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Movie Ticket", false)
	pdf.AddPage()
	for _, line := range TicketLines(ticket) {
		pdf.SetFont("Helvetica", "", line.FontSize)
		pdf.Text(10, line.Y, line.Text)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render ticket pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// Save renders the ticket and writes it to dir/ticket.pdf, replacing any
// previous export. It returns the written path.
func Save(ticket model.Ticket, dir string) (string, error) {
	data, err := Render(ticket)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create download dir: %w", err)
	}
	path := filepath.Join(dir, FileName)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}

func safe(v string) string {
	if v == "" {
		return fallback
	}
	return v
}

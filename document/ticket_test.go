package document

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/sangamparmar/MovieFrenz/model"
)

func lineTexts(lines []Line) []string {
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		out = append(out, line.Text)
	}
	return out
}

func TestTicketLines_AllFields(t *testing.T) {
	ticket := model.Ticket{
		Id:       "665f1c",
		Showtime: model.Showtime{Title: "Oppenheimer", Showtime: "2024-05-01T18:00:00.000Z"},
		Seats: []model.Seat{
			{Row: "C", Number: "7"},
			{Row: "C", Number: "8"},
		},
	}
	want := []string{
		"Movie Ticket",
		"Showtime: Oppenheimer",
		"Date and Time: 2024-05-01T18:00:00.000Z",
		"Seats:",
		"Row C, Seat 7, Row C, Seat 8",
		"Number of Seats: 2",
		"Ticket ID: 665f1c",
	}
	got := lineTexts(TicketLines(ticket))
	if len(got) != len(want) {
		t.Fatalf("expected %d lines, got %d: %q", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("line %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestTicketLines_Fallbacks(t *testing.T) {
	got := lineTexts(TicketLines(model.Ticket{}))
	want := []string{
		"Movie Ticket",
		"Showtime: N/A",
		"Date and Time: N/A",
		"Seats:",
		"N/A",
		"Number of Seats: 0",
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d lines without ticket id, got %d: %q", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("line %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestTicketLines_BlankValuesKeptVerbatim(t *testing.T) {
	got := lineTexts(TicketLines(model.Ticket{
		Showtime: model.Showtime{Title: " ", Showtime: "\t"},
	}))
	if got[1] != "Showtime:  " || got[2] != "Date and Time: \t" {
		t.Fatalf("whitespace values must not fall back: %q", got[1:3])
	}
}

func TestTicketLines_LayoutIsTopDown(t *testing.T) {
	lines := TicketLines(model.Ticket{Id: "x"})
	for i := 1; i < len(lines); i++ {
		if lines[i].Y <= lines[i-1].Y {
			t.Fatalf("line %d is not below line %d", i, i-1)
		}
	}
	if lines[0].FontSize <= lines[1].FontSize {
		t.Fatal("title should use the largest font")
	}
}

func TestRender_ProducesPDF(t *testing.T) {
	data, err := Render(model.Ticket{Id: "1", Showtime: model.Showtime{Title: "Dune"}})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Fatalf("output is not a pdf: %q", data[:min(len(data), 8)])
	}
}

func TestSave_WritesFixedFileName(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "downloads")

	path, err := Save(model.Ticket{Id: "1"}, dir)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if path != filepath.Join(dir, "ticket.pdf") {
		t.Fatalf("unexpected path: %s", path)
	}
	first, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read exported file: %v", err)
	}

	if _, err := Save(model.Ticket{Id: "2", Showtime: model.Showtime{Title: "Another"}}, dir); err != nil {
		t.Fatalf("expected nil error on overwrite, got %v", err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected a single exported file, got %d", len(entries))
	}
	second, _ := os.ReadFile(path)
	if bytes.Equal(first, second) {
		t.Fatal("expected second export to replace the first")
	}
}

func TestSave_FailsWhenDirIsAFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "not-a-dir")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}
	if _, err := Save(model.Ticket{}, file); err == nil {
		t.Fatal("expected error when the download dir is a file")
	}
}

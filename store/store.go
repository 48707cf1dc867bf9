package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sangamparmar/MovieFrenz/model"
)

const (
	appDir          = "moviefrenz"
	lastBookingFile = "last_booking.json"
	logFile         = "moviefrenz.log"
)

var ErrNoSelection = errors.New("booking selection has no showtime or seats")

type lastBooking struct {
	SavedAt time.Time     `json:"saved_at"`
	Booking model.Booking `json:"booking"`
}

// LoadBookingSelection reads the selection handed over by the seat picker.
func LoadBookingSelection(path string) (model.BookingSelection, error) {
	var selection model.BookingSelection
	data, err := os.ReadFile(path)
	if err != nil {
		return selection, err
	}
	if err := json.Unmarshal(data, &selection); err != nil {
		return selection, fmt.Errorf("invalid booking selection %s: %w", path, err)
	}
	if selection.Showtime == (model.Showtime{}) && len(selection.SelectedSeats) == 0 {
		return selection, ErrNoSelection
	}
	return selection, nil
}

func SaveLastBooking(booking model.Booking) (string, error) {
	path, err := configPath(lastBookingFile)
	if err != nil {
		return "", err
	}
	if err := writeJSON(path, lastBooking{SavedAt: time.Now(), Booking: booking}); err != nil {
		return "", err
	}
	return path, nil
}

// LoadLastBooking returns the most recently confirmed booking. ok is false
// when nothing has been confirmed yet.
func LoadLastBooking() (model.Booking, bool, error) {
	path, err := configPath(lastBookingFile)
	if err != nil {
		return model.Booking{}, false, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return model.Booking{}, false, nil
		}
		return model.Booking{}, false, err
	}
	var saved lastBooking
	if err := json.Unmarshal(data, &saved); err != nil {
		return model.Booking{}, false, errors.New("invalid last booking format")
	}
	return saved.Booking, true, nil
}

func DefaultLogPath() (string, error) {
	return cachePath(logFile)
}

// DefaultDownloadDir prefers ~/Downloads and falls back to the working
// directory when the home directory is unknown.
func DefaultDownloadDir() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(home, "Downloads")
}

func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	payload, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, payload, 0o644)
}

func configPath(name string) (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, appDir, name), nil
}

func cachePath(name string) (string, error) {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, appDir, name), nil
}

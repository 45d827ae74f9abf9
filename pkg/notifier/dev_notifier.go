package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

// DevNotifier implements Notifier for local development. It saves
// messages as JSON files to a directory instead of delivering them.
type DevNotifier struct {
	dir string
}

// NewDevNotifier creates a development notifier that writes messages to
// disk. The directory is created on first send if it doesn't exist.
func NewDevNotifier(dir string) *DevNotifier {
	return &DevNotifier{dir: dir}
}

// Send saves the message as a timestamped JSON file.
func (d *DevNotifier) Send(_ context.Context, msg Message) error {
	if err := msg.Validate(); err != nil {
		return err
	}

	if err := os.MkdirAll(d.dir, 0755); err != nil {
		return fmt.Errorf("%w: failed to create directory: %v", ErrFailedToSend, err)
	}

	data, err := json.MarshalIndent(msg, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: failed to encode message: %v", ErrFailedToSend, err)
	}

	filename := fmt.Sprintf("%s_%s.json", time.Now().Format("2006_01_02_150405"), sanitizeFilename(msg.To))
	if err := os.WriteFile(filepath.Join(d.dir, filename), data, 0644); err != nil {
		return fmt.Errorf("%w: failed to write message file: %v", ErrFailedToSend, err)
	}

	return nil
}

// sanitizeRegex matches characters that are not alphanumeric, dash, underscore, or dot
var sanitizeRegex = regexp.MustCompile(`[^a-zA-Z0-9\-_.]`)

// sanitizeFilename converts a string into a safe filename.
// It replaces spaces with underscores, removes special characters,
// and truncates to a reasonable length.
func sanitizeFilename(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = sanitizeRegex.ReplaceAllString(s, "")

	const maxLength = 100
	if len(s) > maxLength {
		s = s[:maxLength]
	}
	return s
}

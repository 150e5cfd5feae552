// Package desktop implements the stopwatch's user-facing outputs with native
// dialogs: a blocking notice and a file "download".
package desktop

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/ncruces/zenity"
)

const dialogTitle = "Stopwatch"

// Notifier shows a blocking warning dialog.
type Notifier struct {
	logger *log.Logger
}

func NewNotifier(logger *log.Logger) *Notifier {
	if logger == nil {
		logger = log.Default()
	}
	return &Notifier{logger: logger}
}

func (n *Notifier) Notify(message string) {
	err := zenity.Info(message,
		zenity.Title(dialogTitle),
		zenity.WarningIcon,
	)
	if err != nil && !errors.Is(err, zenity.ErrCanceled) {
		n.logger.Printf("notice %q: %v", message, err)
	}
}

// Downloader saves exported files, either through a save dialog or straight
// into a directory.
type Downloader struct {
	prompt bool
	dir    string
	logger *log.Logger

	// selectFile is zenity.SelectFileSave, swapped out in tests.
	selectFile func(options ...zenity.Option) (string, error)
}

func NewDownloader(prompt bool, dir string, logger *log.Logger) *Downloader {
	if logger == nil {
		logger = log.Default()
	}
	return &Downloader{
		prompt:     prompt,
		dir:        dir,
		logger:     logger,
		selectFile: zenity.SelectFileSave,
	}
}

// Download writes data under name. Cancelling the save dialog is not an
// error; nothing is written.
func (d *Downloader) Download(name, mimeType string, data []byte) error {
	path := filepath.Join(d.dir, name)

	if d.prompt {
		chosen, err := d.selectFile(
			zenity.Title("Export Laps"),
			zenity.Filename(path),
			zenity.ConfirmOverwrite(),
			zenity.FileFilters{{
				Name:     filterName(mimeType),
				Patterns: []string{"*" + filepath.Ext(name)},
			}},
		)
		if err != nil {
			if errors.Is(err, zenity.ErrCanceled) {
				return nil
			}
			return fmt.Errorf("save dialog: %w", err)
		}
		path = chosen
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	d.logger.Printf("saved %s (%d bytes)", path, len(data))
	return nil
}

func filterName(mimeType string) string {
	switch mimeType {
	case "text/csv":
		return "CSV"
	default:
		return "Text"
	}
}

package mock

import (
	"os"
	"path/filepath"

	"github.com/mcostanzo/cmdmock/errors"
	"github.com/mcostanzo/cmdmock/logging"
	"github.com/sirupsen/logrus"
)

// Writer persists rendered mock scripts as executable files.
type Writer struct {
	logger *logrus.Entry
}

// NewWriter creates a Writer.
func NewWriter() *Writer {
	return &Writer{logger: logging.NewLogger("writer")}
}

// Write places text at dir/name with execute permission and returns the
// final path. The write is atomic: the script is staged in a temp file in
// the target directory and renamed into place, so a failure at any step
// leaves no partial artifact behind. An existing mock is replaced wholesale.
func (w *Writer) Write(dir, name, text string) (string, error) {
	if dir == "" {
		dir = "."
	}
	target := filepath.Join(dir, name)

	tmp, err := os.CreateTemp(dir, name+"-*.tmp")
	if err != nil {
		return "", errors.WriteFailure(target, err)
	}
	tmpPath := tmp.Name()

	cleanup := func(cause error) (string, error) {
		tmp.Close()
		os.Remove(tmpPath)
		return "", errors.WriteFailure(target, cause)
	}

	if _, err := tmp.WriteString(text); err != nil {
		return cleanup(err)
	}
	if err := tmp.Chmod(0755); err != nil {
		return cleanup(err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return "", errors.WriteFailure(target, err)
	}
	if err := os.Rename(tmpPath, target); err != nil {
		os.Remove(tmpPath)
		return "", errors.WriteFailure(target, err)
	}

	w.logger.WithField("path", target).Debug("Mock script written")
	return target, nil
}

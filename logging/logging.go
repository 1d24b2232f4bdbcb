package logging

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Setup configures the process logger: timestamped text output on stderr plus
// a flat append-only activity log, so every line is dual-written the way the
// bot has always logged. Returns a closer for the activity file.
func Setup(activityPath string) (func() error, error) {
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	logrus.SetLevel(logrus.InfoLevel)

	hook, err := NewActivityHook(activityPath)
	if err != nil {
		return nil, err
	}
	logrus.AddHook(hook)
	return hook.Close, nil
}

// ActivityHook appends every log entry to a flat text file as
// "[2006-01-02 15:04:05] LEVEL: message" lines.
type ActivityHook struct {
	mu   sync.Mutex
	file *os.File
}

func NewActivityHook(path string) (*ActivityHook, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, errors.Wrapf(err, "open activity log %s", path)
	}
	return &ActivityHook{file: f}, nil
}

func (h *ActivityHook) Levels() []logrus.Level {
	return []logrus.Level{
		logrus.InfoLevel,
		logrus.WarnLevel,
		logrus.ErrorLevel,
		logrus.FatalLevel,
		logrus.PanicLevel,
	}
}

func (h *ActivityHook) Fire(entry *logrus.Entry) error {
	line := FormatEntry(entry.Time.Format("2006-01-02 15:04:05"), entry.Level.String(), entry.Message)

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := h.file.WriteString(line + "\n")
	return err
}

func (h *ActivityHook) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.file.Close()
}

// FormatEntry renders one activity log line.
func FormatEntry(timestamp, level, message string) string {
	return fmt.Sprintf("[%s] %s: %s", timestamp, strings.ToUpper(level), message)
}

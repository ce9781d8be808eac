package logger

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
)

// ConsoleHook mirrors entries to w using the logger's own formatter. The CLI
// subcommands use it to keep human output and logs on the same stream.
type ConsoleHook struct {
	out io.Writer
}

func NewConsoleHook(out io.Writer) *ConsoleHook {
	return &ConsoleHook{out: out}
}

func (h *ConsoleHook) Fire(entry *logrus.Entry) error {
	line, err := entry.Logger.Formatter.Format(entry)
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(h.out, string(line))
	return err
}

func (h *ConsoleHook) Levels() []logrus.Level {
	return []logrus.Level{logrus.PanicLevel, logrus.FatalLevel, logrus.ErrorLevel, logrus.WarnLevel}
}

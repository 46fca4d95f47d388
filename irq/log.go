package irq

import (
	"sync/atomic"

	"github.com/sirupsen/logrus"
)

var log atomic.Pointer[logrus.Logger]

// SetLogger replaces the logger used for spurious interrupt reports.
// A nil logger restores the logrus standard logger.
func SetLogger(l *logrus.Logger) {
	log.Store(l)
}

func logger() *logrus.Logger {
	if l := log.Load(); l != nil {
		return l
	}
	return logrus.StandardLogger()
}

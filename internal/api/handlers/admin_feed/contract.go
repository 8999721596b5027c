package admin_feed

import (
	"github.com/m04kA/SMC-SalonBooking/internal/service/livefeed"
)

type Feed interface {
	Subscribe() (<-chan livefeed.Message, func())
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

package uploads

import (
	"context"
	"time"
)

// ObjectStorage хранилище файлов; возвращает публичный URL объекта
type ObjectStorage interface {
	Put(ctx context.Context, objectName string, data []byte) (string, error)
}

// TimeProvider интерфейс для получения текущего времени
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

package booking

import (
	"github.com/m04kA/SMC-SalonBooking/pkg/dbmetrics"
)

// DBExecutor интерфейс из dbmetrics для работы с БД и транзакцией из контекста
type DBExecutor = dbmetrics.DBExecutor

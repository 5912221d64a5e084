package slot

import "github.com/m04kA/SMC-ServiceDesk/pkg/dbmetrics"

// Переиспользуем интерфейсы из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor

package generate_slots

import (
	"time"

	"github.com/m04kA/SMC-ServiceDesk/pkg/types"
)

// Request параметры генерации слотов
type Request struct {
	TechnicianID    int64
	DateFrom        time.Time        // первый день (включительно)
	DateTo          time.Time        // последний день (включительно)
	HourStart       types.TimeString // начало рабочего окна дня, например "08:00"
	HourEnd         types.TimeString // конец рабочего окна дня (не включительно)
	DurationMinutes int
}

// Response результат генерации
type Response struct {
	Created int // создано новых слотов
	Skipped int // пропущено: такой интервал уже есть или пересекается с существующим
}

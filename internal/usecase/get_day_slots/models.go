package get_day_slots

import "github.com/m04kA/SMC-AvailabilityService/internal/domain"

// Request модель запроса на получение слотов дня
type Request struct {
	SitterID    int64              // ID ситтера
	Service     domain.ServiceType // Услуга
	Date        string             // Дата YYYY-MM-DD в часовом поясе сервиса
	DurationMin int                // Длительность слота; 0 - минимальная длительность услуги
}

// Response модель ответа со слотами дня
type Response struct {
	SitterID    int64
	Service     domain.ServiceType
	Date        string
	DurationMin int               // Фактически использованная длительность
	DayStatus   domain.SlotStatus // Сводный статус дня
	Slots       []domain.DaySlot
}

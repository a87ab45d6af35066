package get_day_slots

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInvalidDate возвращается при некорректной дате
	ErrInvalidDate = errors.New("invalid date")

	// ErrUnknownService возвращается для неизвестной услуги
	ErrUnknownService = errors.New("unknown service")

	// ErrInvalidDuration возвращается, когда длительность вне допустимых границ услуги
	ErrInvalidDuration = errors.New("invalid duration")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)

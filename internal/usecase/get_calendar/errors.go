package get_calendar

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInvalidDateRange возвращается при некорректном или перевёрнутом диапазоне дат
	ErrInvalidDateRange = errors.New("invalid date range")

	// ErrRangeTooLong возвращается, если диапазон длиннее допустимого
	ErrRangeTooLong = errors.New("date range too long")

	// ErrUnknownService возвращается для неизвестной услуги
	ErrUnknownService = errors.New("unknown service")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)

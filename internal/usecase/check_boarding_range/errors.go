package check_boarding_range

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInvalidDateRange возвращается при некорректных датах заезда/выезда
	ErrInvalidDateRange = errors.New("invalid date range")

	// ErrRangeTooLong возвращается, если передержка длиннее допустимой
	ErrRangeTooLong = errors.New("stay too long")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)

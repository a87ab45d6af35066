package serviceconfig

import "errors"

var (
	// ErrConfigNotFound возвращается, когда у ситтера нет сохранённой конфигурации услуги
	ErrConfigNotFound = errors.New("serviceconfig.repository: config not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("serviceconfig.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("serviceconfig.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("serviceconfig.repository: failed to scan row")
)

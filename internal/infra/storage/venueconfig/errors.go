package venueconfig

import "errors"

var (
	// ErrConfigNotFound возвращается, когда конфигурация заведения не найдена
	ErrConfigNotFound = errors.New("venueconfig.repository: config not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("venueconfig.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("venueconfig.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("venueconfig.repository: failed to scan row")

	// ErrEncode возвращается при ошибке сериализации JSONB-полей конфигурации
	ErrEncode = errors.New("venueconfig.repository: failed to encode config")
)

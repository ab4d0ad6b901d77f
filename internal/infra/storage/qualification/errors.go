package qualification

import "errors"

var (
	// ErrQualificationNotFound возвращается, когда квалификация не найдена
	ErrQualificationNotFound = errors.New("qualification.repository: qualification not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("qualification.repository: failed to build query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("qualification.repository: failed to scan row")
)

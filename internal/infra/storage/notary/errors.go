package notary

import "errors"

var (
	// ErrNotaryNotFound возвращается, когда нотариус не найден
	ErrNotaryNotFound = errors.New("notary.repository: notary not found")

	// ErrVersionConflict возвращается, когда расписание было изменено другой записью
	ErrVersionConflict = errors.New("notary.repository: schedule version conflict")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("notary.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("notary.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("notary.repository: failed to scan row")

	// ErrEncodeSchedule возвращается, если расписание нельзя сохранить
	ErrEncodeSchedule = errors.New("notary.repository: failed to encode schedule")
)

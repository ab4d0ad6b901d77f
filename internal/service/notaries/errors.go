package notaries

import "errors"

var (
	// ErrNotaryNotFound возвращается, когда нотариус не найден
	ErrNotaryNotFound = errors.New("notary not found")

	// ErrQualificationNotFound возвращается, когда указанная квалификация не существует
	ErrQualificationNotFound = errors.New("qualification not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrScheduleCorrupted возвращается, когда сохранённое расписание не разбирается
	ErrScheduleCorrupted = errors.New("stored schedule is corrupted")

	// ErrBookingOutOfRange возвращается, когда бронирование попадает вне приёмных часов сетки
	ErrBookingOutOfRange = errors.New("booking falls outside schedule hours")

	// ErrScheduleStale возвращается, когда бронирования изменились с момента открытия редактора
	ErrScheduleStale = errors.New("bookings changed since the schedule was opened")

	// ErrVersionConflict возвращается, когда расписание уже изменено другим редактором
	ErrVersionConflict = errors.New("schedule was modified concurrently")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)

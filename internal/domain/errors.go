package domain

import "errors"

var (
	// ErrFormat возвращается, когда сохранённое расписание не раскладывается в сетку 7×H
	ErrFormat = errors.New("schedule: invalid format")

	// ErrRange возвращается при обращении к дню или часу за пределами сетки
	ErrRange = errors.New("schedule: index out of range")

	// ErrInvalidBounds возвращается при некорректной настройке диапазона часов
	ErrInvalidBounds = errors.New("schedule: invalid hour bounds")
)

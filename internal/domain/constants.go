package domain

// Размеры сетки расписания по умолчанию
const (
	DaysPerWeek        = 7
	DefaultMinHour     = 9 // первый приёмный час, 09:00
	DefaultHoursPerDay = 8 // последний приёмный час начинается в 16:00
)

// Business validation constants
const (
	MaxFIOLength           = 255
	MaxDescriptionLength   = 4000
	MaxOfficeAddressLength = 500
	MaxPhotoPathLength     = 1024
)

// DefaultTimeZone часовой пояс, в котором трактуется время консультаций
const DefaultTimeZone = "Europe/Moscow"

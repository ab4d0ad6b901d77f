package projector

import "errors"

var (
	// ErrStaleSnapshot возвращается, когда набор актуальных бронирований изменился
	// с момента построения расписания для редактора
	ErrStaleSnapshot = errors.New("projector: bookings changed since schedule was opened")

	// ErrInvalidSnapshot возвращается при нераспознаваемом токене снимка
	ErrInvalidSnapshot = errors.New("projector: invalid snapshot token")

	// ErrBoundsMismatch возвращается, если сетка построена для другого диапазона часов
	ErrBoundsMismatch = errors.New("projector: schedule bounds do not match configuration")
)

package domain

import "fmt"

// HourState состояние часовой ячейки расписания, которое хранится в БД
type HourState int

const (
	HourInactive HourState = 0 // приём не ведётся
	HourActive   HourState = 1 // приём ведётся
)

// IsValid true для значений, допустимых в хранилище
func (s HourState) IsValid() bool {
	return s == HourInactive || s == HourActive
}

func (s HourState) String() string {
	switch s {
	case HourInactive:
		return "inactive"
	case HourActive:
		return "active"
	default:
		return fmt.Sprintf("HourState(%d)", int(s))
	}
}

// EditorState код ячейки в редакторе расписания.
// EditorForceActive означает занятый бронированием час, который нельзя снять в редакторе.
// Это производное значение: в хранилище оно не попадает.
type EditorState int

const (
	EditorInactive    EditorState = 0
	EditorActive      EditorState = 1
	EditorForceActive EditorState = 2
)

// IsValid true для кодов, которые понимает редактор
func (s EditorState) IsValid() bool {
	return s >= EditorInactive && s <= EditorForceActive
}

// ToHourState снимает признак занятости: EditorForceActive становится HourActive
func (s EditorState) ToHourState() (HourState, bool) {
	switch s {
	case EditorInactive:
		return HourInactive, true
	case EditorActive, EditorForceActive:
		return HourActive, true
	default:
		return HourInactive, false
	}
}

// EditorStateOf код редактора для сохранённого состояния
func EditorStateOf(s HourState, forced bool) EditorState {
	if forced {
		return EditorForceActive
	}
	if s == HourActive {
		return EditorActive
	}
	return EditorInactive
}

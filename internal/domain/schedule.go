package domain

import (
	"encoding/json"
	"fmt"
)

// Bounds диапазон приёмных часов [MinHour, MinHour+Hours)
type Bounds struct {
	MinHour int
	Hours   int
}

// DefaultBounds диапазон часов по умолчанию (09:00–16:59)
func DefaultBounds() Bounds {
	return Bounds{MinHour: DefaultMinHour, Hours: DefaultHoursPerDay}
}

// Validate проверяет, что диапазон помещается в сутки
func (b Bounds) Validate() error {
	if b.MinHour < 0 || b.Hours < 1 || b.MinHour+b.Hours > 24 {
		return fmt.Errorf("%w: min_hour=%d, hours=%d", ErrInvalidBounds, b.MinHour, b.Hours)
	}
	return nil
}

// MaxHour последний приёмный час (включительно)
func (b Bounds) MaxHour() int {
	return b.MinHour + b.Hours - 1
}

// HourIndex переводит час суток в индекс столбца сетки
func (b Bounds) HourIndex(hour int) (int, error) {
	if hour < b.MinHour || hour > b.MaxHour() {
		return 0, fmt.Errorf("%w: hour %d outside [%d, %d]", ErrRange, hour, b.MinHour, b.MaxHour())
	}
	return hour - b.MinHour, nil
}

// Slot координаты ячейки: день (0 = понедельник) и индекс часа
type Slot struct {
	Day  int `json:"day"`
	Hour int `json:"hour"`
}

// Schedule недельная сетка приёмных часов нотариуса: 7 дней × Hours ячеек.
// Ячейки хранят только HourInactive или HourActive.
type Schedule struct {
	bounds Bounds
	cells  [DaysPerWeek][]HourState
}

// NewSchedule создает сетку, заполненную одним состоянием
func NewSchedule(b Bounds, fill HourState) (*Schedule, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}
	if !fill.IsValid() {
		return nil, fmt.Errorf("%w: invalid fill state %d", ErrFormat, int(fill))
	}

	s := &Schedule{bounds: b}
	for d := range s.cells {
		s.cells[d] = make([]HourState, b.Hours)
		for h := range s.cells[d] {
			s.cells[d][h] = fill
		}
	}
	return s, nil
}

// ScheduleFromCodes собирает сетку из массива кодов [день][час].
// Допускаются только коды хранилища (0 и 1).
func ScheduleFromCodes(codes [][]int, b Bounds) (*Schedule, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}
	if len(codes) != DaysPerWeek {
		return nil, fmt.Errorf("%w: expected %d days, got %d", ErrFormat, DaysPerWeek, len(codes))
	}

	s := &Schedule{bounds: b}
	for d, row := range codes {
		if len(row) != b.Hours {
			return nil, fmt.Errorf("%w: day %d: expected %d hours, got %d", ErrFormat, d, b.Hours, len(row))
		}
		s.cells[d] = make([]HourState, b.Hours)
		for h, code := range row {
			state := HourState(code)
			if !state.IsValid() {
				return nil, fmt.Errorf("%w: day %d, hour %d: invalid state code %d", ErrFormat, d, h, code)
			}
			s.cells[d][h] = state
		}
	}
	return s, nil
}

// DecodeSchedule разбирает сохранённое представление (JSON-массив массивов)
func DecodeSchedule(raw []byte, b Bounds) (*Schedule, error) {
	var codes [][]int
	if err := json.Unmarshal(raw, &codes); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFormat, err)
	}
	return ScheduleFromCodes(codes, b)
}

// Encode сериализует сетку для хранения
func (s *Schedule) Encode() ([]byte, error) {
	for d, row := range s.cells {
		for h, state := range row {
			if !state.IsValid() {
				return nil, fmt.Errorf("%w: day %d, hour %d: invalid state code %d", ErrFormat, d, h, int(state))
			}
		}
	}
	return json.Marshal(s.Codes())
}

// Codes возвращает сетку как массив кодов [день][час]
func (s *Schedule) Codes() [][]int {
	codes := make([][]int, DaysPerWeek)
	for d, row := range s.cells {
		codes[d] = make([]int, len(row))
		for h, state := range row {
			codes[d][h] = int(state)
		}
	}
	return codes
}

// Bounds диапазон часов сетки
func (s *Schedule) Bounds() Bounds {
	return s.bounds
}

// Cell состояние ячейки по дню (0..6) и часу суток (MinHour..MaxHour)
func (s *Schedule) Cell(day, hour int) (HourState, error) {
	slot, err := s.SlotFor(day, hour)
	if err != nil {
		return HourInactive, err
	}
	return s.cells[slot.Day][slot.Hour], nil
}

// SlotFor переводит день и час суток в координаты ячейки
func (s *Schedule) SlotFor(day, hour int) (Slot, error) {
	if day < 0 || day >= DaysPerWeek {
		return Slot{}, fmt.Errorf("%w: day %d outside [0, %d)", ErrRange, day, DaysPerWeek)
	}
	idx, err := s.bounds.HourIndex(hour)
	if err != nil {
		return Slot{}, err
	}
	return Slot{Day: day, Hour: idx}, nil
}

// At состояние ячейки по координатам
func (s *Schedule) At(slot Slot) (HourState, error) {
	if err := s.checkSlot(slot); err != nil {
		return HourInactive, err
	}
	return s.cells[slot.Day][slot.Hour], nil
}

// Set меняет состояние ячейки по координатам
func (s *Schedule) Set(slot Slot, state HourState) error {
	if err := s.checkSlot(slot); err != nil {
		return err
	}
	if !state.IsValid() {
		return fmt.Errorf("%w: invalid state code %d", ErrFormat, int(state))
	}
	s.cells[slot.Day][slot.Hour] = state
	return nil
}

// Clone глубокая копия сетки
func (s *Schedule) Clone() *Schedule {
	c := &Schedule{bounds: s.bounds}
	for d, row := range s.cells {
		c.cells[d] = append([]HourState(nil), row...)
	}
	return c
}

// WithActive копия сетки, в которой ячейки slots активны.
// Координаты должны лежать внутри сетки; координата вне сетки приводит к панике.
func (s *Schedule) WithActive(slots []Slot) *Schedule {
	c := s.Clone()
	for _, slot := range slots {
		c.cells[slot.Day][slot.Hour] = HourActive
	}
	return c
}

// Equal сравнивает размеры и содержимое двух сеток
func (s *Schedule) Equal(other *Schedule) bool {
	if s == nil || other == nil {
		return s == other
	}
	if s.bounds != other.bounds {
		return false
	}
	for d := range s.cells {
		if len(s.cells[d]) != len(other.cells[d]) {
			return false
		}
		for h := range s.cells[d] {
			if s.cells[d][h] != other.cells[d][h] {
				return false
			}
		}
	}
	return true
}

func (s *Schedule) checkSlot(slot Slot) error {
	if slot.Day < 0 || slot.Day >= DaysPerWeek {
		return fmt.Errorf("%w: day %d outside [0, %d)", ErrRange, slot.Day, DaysPerWeek)
	}
	if slot.Hour < 0 || slot.Hour >= s.bounds.Hours {
		return fmt.Errorf("%w: hour index %d outside [0, %d)", ErrRange, slot.Hour, s.bounds.Hours)
	}
	return nil
}

package projector

import (
	"sort"

	"github.com/m04kA/SMC-NotaryService/internal/domain"
)

// SkippedFact бронирование, которое не удалось наложить на сетку
type SkippedFact struct {
	OrderID int64
	Err     error
}

// Overlay расписание для редактора: сохранённая сетка плюс набор занятых ячеек.
// Base не изменяется; признак занятости живёт только здесь.
type Overlay struct {
	Base     *domain.Schedule
	Snapshot string
	Skipped  []SkippedFact

	forced map[domain.Slot]struct{}
}

func newOverlay(base *domain.Schedule) *Overlay {
	return &Overlay{
		Base:   base,
		forced: make(map[domain.Slot]struct{}),
	}
}

// IsForced занята ли ячейка актуальным бронированием
func (o *Overlay) IsForced(slot domain.Slot) bool {
	_, ok := o.forced[slot]
	return ok
}

// Forced занятые ячейки в порядке (день, час)
func (o *Overlay) Forced() []domain.Slot {
	slots := make([]domain.Slot, 0, len(o.forced))
	for s := range o.forced {
		slots = append(slots, s)
	}
	sortSlots(slots)
	return slots
}

// Inconsistent занятые ячейки, которые в сохранённой сетке отмечены неактивными
func (o *Overlay) Inconsistent() []domain.Slot {
	slots := make([]domain.Slot, 0)
	for s := range o.forced {
		if state, err := o.Base.At(s); err == nil && state == domain.HourInactive {
			slots = append(slots, s)
		}
	}
	sortSlots(slots)
	return slots
}

// State код редактора для ячейки
func (o *Overlay) State(slot domain.Slot) (domain.EditorState, error) {
	state, err := o.Base.At(slot)
	if err != nil {
		return domain.EditorInactive, err
	}
	return domain.EditorStateOf(state, o.IsForced(slot)), nil
}

// EditorCodes сетка кодов редактора [день][час] со значениями 0, 1, 2
func (o *Overlay) EditorCodes() [][]int {
	codes := o.Base.Codes()
	for s := range o.forced {
		codes[s.Day][s.Hour] = int(domain.EditorForceActive)
	}
	return codes
}

// Strip сетка для хранения: занятые ячейки становятся активными, остальные не меняются
func (o *Overlay) Strip() *domain.Schedule {
	return o.Base.WithActive(o.Forced())
}

func sortSlots(slots []domain.Slot) {
	sort.Slice(slots, func(i, j int) bool {
		if slots[i].Day != slots[j].Day {
			return slots[i].Day < slots[j].Day
		}
		return slots[i].Hour < slots[j].Hour
	})
}

package projector

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-NotaryService/internal/domain"
)

// Decompose раскладывает момент времени в календарь указанного часового пояса.
// isoWeekday: 1 = понедельник ... 7 = воскресенье; hour: 0..23 по местному времени.
func Decompose(instant time.Time, loc *time.Location) (isoWeekday int, hour int) {
	if loc == nil {
		loc = time.UTC
	}
	local := instant.In(loc)

	isoWeekday = int(local.Weekday())
	if isoWeekday == 0 {
		isoWeekday = 7
	}
	return isoWeekday, local.Hour()
}

// SlotOf ячейка сетки, которой соответствует момент консультации
func SlotOf(instant time.Time, loc *time.Location, b domain.Bounds) (domain.Slot, error) {
	isoWeekday, hour := Decompose(instant, loc)

	idx, err := b.HourIndex(hour)
	if err != nil {
		return domain.Slot{}, fmt.Errorf("%w: consultation at %s", err, instant.In(locOrUTC(loc)).Format(time.RFC3339))
	}
	return domain.Slot{Day: isoWeekday - 1, Hour: idx}, nil
}

func locOrUTC(loc *time.Location) *time.Location {
	if loc == nil {
		return time.UTC
	}
	return loc
}

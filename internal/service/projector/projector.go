package projector

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-NotaryService/internal/domain"
)

// Policy поведение при бронировании, которое не попадает в сетку
type Policy string

const (
	// PolicyStrict прерывает построение расписания с ошибкой domain.ErrRange
	PolicyStrict Policy = "strict"
	// PolicySkip пропускает такое бронирование и сохраняет его в Overlay.Skipped
	PolicySkip Policy = "skip"
)

// ParsePolicy разбирает политику из конфигурации
func ParsePolicy(s string) (Policy, error) {
	switch p := Policy(strings.ToLower(strings.TrimSpace(s))); p {
	case PolicyStrict, PolicySkip:
		return p, nil
	case "":
		return PolicyStrict, nil
	default:
		return "", fmt.Errorf("unknown projection policy %q", s)
	}
}

// Projector накладывает актуальные бронирования на расписание нотариуса (для редактора)
// и снимает эти пометки перед сохранением. Не выполняет ввод-вывод.
type Projector struct {
	bounds domain.Bounds
	loc    *time.Location
	policy Policy
}

// New создает проектор для диапазона часов и часового пояса
func New(bounds domain.Bounds, loc *time.Location, policy Policy) (*Projector, error) {
	if err := bounds.Validate(); err != nil {
		return nil, err
	}
	if loc == nil {
		loc = time.UTC
	}
	if policy == "" {
		policy = PolicyStrict
	}
	if policy != PolicyStrict && policy != PolicySkip {
		return nil, fmt.Errorf("unknown projection policy %q", policy)
	}
	return &Projector{bounds: bounds, loc: loc, policy: policy}, nil
}

// Bounds диапазон часов, с которым работает проектор
func (p *Projector) Bounds() domain.Bounds {
	return p.bounds
}

// Location часовой пояс консультаций
func (p *Projector) Location() *time.Location {
	return p.loc
}

// Policy политика обработки бронирований вне сетки
func (p *Projector) Policy() Policy {
	return p.policy
}

// ForEditing строит расписание для редактора.
// orders может содержать любые заказы: учитываются только актуальные бронирования notaryID (см. IsLive).
// Каждое такое бронирование помечает свою ячейку как занятую, даже если она неактивна в сетке.
func (p *Projector) ForEditing(schedule *domain.Schedule, notaryID int64, orders []*domain.Order, now time.Time) (*Overlay, error) {
	if schedule.Bounds() != p.bounds {
		return nil, fmt.Errorf("%w: got %+v, want %+v", ErrBoundsMismatch, schedule.Bounds(), p.bounds)
	}

	overlay := newOverlay(schedule.Clone())

	for _, order := range LiveOrders(orders, notaryID, now) {
		slot, err := SlotOf(order.ConsultationAt, p.loc, p.bounds)
		if err != nil {
			if p.policy == PolicyStrict {
				return nil, fmt.Errorf("order id=%d: %w", order.ID, err)
			}
			overlay.Skipped = append(overlay.Skipped, SkippedFact{OrderID: order.ID, Err: err})
			continue
		}
		overlay.forced[slot] = struct{}{}
	}

	overlay.Snapshot = Snapshot(orders, notaryID, now)

	return overlay, nil
}

// ForStorage расписание для записи в хранилище: без пометок занятости
func (p *Projector) ForStorage(overlay *Overlay) *domain.Schedule {
	return overlay.Strip()
}

// FromEditor принимает сетку из редактора (коды 0, 1, 2) и возвращает сетку для хранения.
// Код 2 (занято) становится активным часом без сверки с заказами.
func (p *Projector) FromEditor(codes [][]int) (*domain.Schedule, error) {
	if len(codes) != domain.DaysPerWeek {
		return nil, fmt.Errorf("%w: expected %d days, got %d", domain.ErrFormat, domain.DaysPerWeek, len(codes))
	}

	storable := make([][]int, len(codes))
	for d, row := range codes {
		storable[d] = make([]int, len(row))
		for h, code := range row {
			state, ok := domain.EditorState(code).ToHourState()
			if !ok {
				return nil, fmt.Errorf("%w: day %d, hour %d: invalid editor code %d", domain.ErrFormat, d, h, code)
			}
			storable[d][h] = int(state)
		}
	}

	return domain.ScheduleFromCodes(storable, p.bounds)
}

package projector

import (
	"time"

	"github.com/m04kA/SMC-NotaryService/internal/domain"
)

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

// FixedTimeProvider всегда возвращает одно и то же время
type FixedTimeProvider struct {
	At time.Time
}

// Now возвращает зафиксированное время
func (p *FixedTimeProvider) Now() time.Time {
	return p.At
}

// IsLive бронирование занимает час в расписании нотариуса:
// статус "processing" и консультация ещё не прошла (ConsultationAt >= now).
// Отменённые и завершённые заказы не учитываются независимо от даты.
func IsLive(order *domain.Order, notaryID int64, now time.Time) bool {
	if order == nil {
		return false
	}
	return order.IsProcessing() &&
		order.BelongsTo(notaryID) &&
		!order.ConsultationAt.Before(now)
}

// LiveOrders отбирает актуальные бронирования нотариуса
func LiveOrders(orders []*domain.Order, notaryID int64, now time.Time) []*domain.Order {
	live := make([]*domain.Order, 0, len(orders))
	for _, o := range orders {
		if IsLive(o, notaryID, now) {
			live = append(live, o)
		}
	}
	return live
}

package projector

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"

	"github.com/m04kA/SMC-NotaryService/internal/domain"
)

const snapshotPrefix = "v1"

// Snapshot токен состояния актуальных бронирований нотариуса на момент since.
// Формат: v1:<since unix nano>:<xxhash64>. Хэш считается по отсортированным по ID заказам.
func Snapshot(orders []*domain.Order, notaryID int64, since time.Time) string {
	return fmt.Sprintf("%s:%d:%016x", snapshotPrefix, since.UnixNano(), digest(snapshotOrders(orders, notaryID, since, since)))
}

// VerifySnapshot сверяет токен с текущим набором заказов в момент now.
// Консультация, прошедшая после выдачи токена, остаётся в снимке, даже если заказ уже completed.
func VerifySnapshot(token string, orders []*domain.Order, notaryID int64, now time.Time) error {
	since, sum, err := parseSnapshot(token)
	if err != nil {
		return err
	}
	if digest(snapshotOrders(orders, notaryID, since, now)) != sum {
		return ErrStaleSnapshot
	}
	return nil
}

// snapshotOrders заказы, которые входят в снимок, выданный в since и проверяемый в now.
// При now == since это ровно LiveOrders(orders, notaryID, since).
// Заказ с консультацией в [since, now) мог быть processing в since и завершиться после;
// completed такого заказа не меняет снимок. Отменённый заказ из этого окна в снимок не входит.
func snapshotOrders(orders []*domain.Order, notaryID int64, since, now time.Time) []*domain.Order {
	result := make([]*domain.Order, 0, len(orders))
	for _, o := range orders {
		if o == nil || !o.BelongsTo(notaryID) || o.ConsultationAt.Before(since) {
			continue
		}
		passed := o.ConsultationAt.Before(now)
		if o.IsProcessing() || (passed && o.Status == domain.OrderCompleted) {
			result = append(result, o)
		}
	}
	return result
}

// digest статус не хэшируется: все заказы снимка считаются актуальными на момент since
func digest(orders []*domain.Order) uint64 {
	sorted := append([]*domain.Order(nil), orders...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	h := xxhash.New()
	for _, o := range sorted {
		_, _ = fmt.Fprintf(h, "%d|%d\n", o.ID, o.ConsultationAt.UnixNano())
	}
	return h.Sum64()
}

func parseSnapshot(token string) (time.Time, uint64, error) {
	parts := strings.Split(token, ":")
	if len(parts) != 3 || parts[0] != snapshotPrefix {
		return time.Time{}, 0, fmt.Errorf("%w: %q", ErrInvalidSnapshot, token)
	}

	nanos, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return time.Time{}, 0, fmt.Errorf("%w: bad timestamp: %v", ErrInvalidSnapshot, err)
	}

	sum, err := strconv.ParseUint(parts[2], 16, 64)
	if err != nil {
		return time.Time{}, 0, fmt.Errorf("%w: bad digest: %v", ErrInvalidSnapshot, err)
	}

	return time.Unix(0, nanos), sum, nil
}

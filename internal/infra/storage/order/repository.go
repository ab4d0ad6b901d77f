package order

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-NotaryService/internal/domain"
	"github.com/m04kA/SMC-NotaryService/pkg/dbmetrics"
	"github.com/m04kA/SMC-NotaryService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-NotaryService/pkg/ptr"
)

// Repository репозиторий заказов (только чтение: создание и отмена заказов живут в другом сервисе)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория заказов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByNotaryID получает все заказы нотариуса без фильтрации по статусу и дате
// Отбор актуальных бронирований выполняет projector
func (r *Repository) GetByNotaryID(ctx context.Context, notaryID int64) ([]*domain.Order, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := byNotaryQuery(ctx, notaryID).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByNotaryID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByNotaryID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanOrders(rows)
}

// byNotaryQuery запрос заказов нотариуса в порядке времени консультации
func byNotaryQuery(ctx context.Context, notaryID int64) squirrel.SelectBuilder {
	selectBuilder := psqlbuilder.Select(
		"id",
		"notary_id",
		"consultation_at",
		"status",
	).
		From("orders").
		Where(squirrel.Eq{"notary_id": notaryID}).
		OrderBy("consultation_at ASC, id ASC")

	// В транзакции записи расписания не даём параллельно менять заказы нотариуса
	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR SHARE")
	}

	return selectBuilder
}

// scanOrders сканирует результаты запроса в слайс заказов
func (r *Repository) scanOrders(rows *sql.Rows) ([]*domain.Order, error) {
	orders := make([]*domain.Order, 0)

	for rows.Next() {
		var order domain.Order
		var notaryID sql.NullInt64

		if err := rows.Scan(&order.ID, &notaryID, &order.ConsultationAt, &order.Status); err != nil {
			return nil, fmt.Errorf("%w: scanOrders - scan row: %v", ErrScanRow, err)
		}

		if notaryID.Valid {
			order.NotaryID = ptr.Ptr(notaryID.Int64)
		}

		orders = append(orders, &order)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanOrders - rows error: %v", ErrScanRow, err)
	}

	return orders, nil
}

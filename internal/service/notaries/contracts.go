package notaries

import (
	"context"
	"time"

	"github.com/m04kA/SMC-NotaryService/internal/domain"
)

// NotaryRepository интерфейс репозитория нотариусов
type NotaryRepository interface {
	Create(ctx context.Context, notary *domain.Notary) (*domain.Notary, error)
	GetByID(ctx context.Context, id int64) (*domain.Notary, error)
	GetForUpdate(ctx context.Context, id int64) (*domain.Notary, error)
	List(ctx context.Context, filter domain.NotariesFilter) ([]*domain.Notary, error)
	Update(ctx context.Context, notary *domain.Notary, expectedVersion int64) (*domain.Notary, error)
	Delete(ctx context.Context, id int64) error
}

// OrderRepository интерфейс репозитория заказов
type OrderRepository interface {
	GetByNotaryID(ctx context.Context, notaryID int64) ([]*domain.Order, error)
}

// QualificationRepository интерфейс репозитория квалификаций
type QualificationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Qualification, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Metrics метрики расписаний
type Metrics interface {
	ObserveProjection(result string, forced int, skipped int)
	ObserveStaleWrite(reason string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

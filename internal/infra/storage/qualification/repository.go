package qualification

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-NotaryService/internal/domain"
	"github.com/m04kA/SMC-NotaryService/pkg/dbmetrics"
	"github.com/m04kA/SMC-NotaryService/pkg/psqlbuilder"
)

// Repository репозиторий квалификаций нотариусов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория квалификаций
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает квалификацию по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Qualification, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := selectByIDQuery(id).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var q domain.Qualification
	err = executor.QueryRowContext(ctx, query, args...).Scan(&q.ID, &q.Name, &q.Coefficient)
	if err == sql.ErrNoRows {
		return nil, ErrQualificationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan qualification: %v", ErrScanRow, err)
	}

	return &q, nil
}

func selectByIDQuery(id int64) squirrel.SelectBuilder {
	return psqlbuilder.Select("id", "name", "coefficient").
		From("qualifications").
		Where(squirrel.Eq{"id": id})
}

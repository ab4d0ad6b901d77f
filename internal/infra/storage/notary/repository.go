package notary

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-NotaryService/internal/domain"
	"github.com/m04kA/SMC-NotaryService/pkg/dbmetrics"
	"github.com/m04kA/SMC-NotaryService/pkg/psqlbuilder"
)

// Repository репозиторий для работы с нотариусами и их расписаниями
// Расписание хранится в колонке schedule (JSONB, массив массивов кодов 0/1)
type Repository struct {
	db     DBExecutor
	bounds domain.Bounds
}

// NewRepository создает новый экземпляр репозитория нотариусов
// bounds - диапазон часов, по которому разбирается сохранённое расписание
func NewRepository(db DBExecutor, bounds domain.Bounds) *Repository {
	return &Repository{db: db, bounds: bounds}
}

// Create создает нового нотариуса вместе с расписанием (версия расписания = 1)
func (r *Repository) Create(ctx context.Context, notary *domain.Notary) (*domain.Notary, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	raw, err := notary.Schedule.Encode()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - %v", ErrEncodeSchedule, err)
	}

	query, args, err := psqlbuilder.Insert("notaries").
		Columns(
			"fio",
			"description",
			"photo_path",
			"office_address",
			"qualification_id",
			"schedule",
			"schedule_version",
		).
		Values(
			notary.FIO,
			notary.Description,
			notary.PhotoPath,
			notary.OfficeAddress,
			notary.QualificationID,
			string(raw),
			1,
		).
		Suffix("RETURNING id, schedule_version").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&notary.ID, &notary.ScheduleVersion)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return notary, nil
}

// GetByID получает нотариуса с расписанием
// Внутри транзакции строка блокируется (FOR UPDATE), чтобы сериализовать правки расписания
// Если сохранённое расписание не разбирается, возвращает ошибку, совместимую с domain.ErrFormat
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Notary, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := selectByIDQuery(ctx, id, true).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var notary domain.Notary
	var raw []byte

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&notary.ID,
		&notary.FIO,
		&notary.Description,
		&notary.PhotoPath,
		&notary.OfficeAddress,
		&notary.QualificationID,
		&notary.ScheduleVersion,
		&raw,
	)

	if err == sql.ErrNoRows {
		return nil, ErrNotaryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan notary: %v", ErrScanRow, err)
	}

	schedule, err := domain.DecodeSchedule(raw, r.bounds)
	if err != nil {
		return nil, fmt.Errorf("GetByID - notary id=%d: %w", id, err)
	}
	notary.Schedule = schedule

	return &notary, nil
}

// GetForUpdate получает карточку нотариуса без расписания (Schedule == nil)
// Используется при полной замене расписания: старая сетка не читается,
// поэтому запись проходит и для строки, которую GetByID разобрать не может
func (r *Repository) GetForUpdate(ctx context.Context, id int64) (*domain.Notary, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := selectByIDQuery(ctx, id, false).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetForUpdate - build select query: %v", ErrBuildQuery, err)
	}

	var notary domain.Notary

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&notary.ID,
		&notary.FIO,
		&notary.Description,
		&notary.PhotoPath,
		&notary.OfficeAddress,
		&notary.QualificationID,
		&notary.ScheduleVersion,
	)

	if err == sql.ErrNoRows {
		return nil, ErrNotaryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetForUpdate - scan notary: %v", ErrScanRow, err)
	}

	return &notary, nil
}

// selectByIDQuery запрос карточки нотариуса; withSchedule добавляет колонку schedule последней
func selectByIDQuery(ctx context.Context, id int64, withSchedule bool) squirrel.SelectBuilder {
	columns := []string{
		"id",
		"fio",
		"description",
		"photo_path",
		"office_address",
		"qualification_id",
		"schedule_version",
	}
	if withSchedule {
		columns = append(columns, "schedule")
	}

	selectBuilder := psqlbuilder.Select(columns...).
		From("notaries").
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	return selectBuilder
}

// List получает список нотариусов с квалификацией (без расписаний)
// Поиск по ФИО - подстрока без учёта регистра
func (r *Repository) List(ctx context.Context, filter domain.NotariesFilter) ([]*domain.Notary, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"n.id",
		"n.fio",
		"n.description",
		"n.photo_path",
		"n.office_address",
		"n.qualification_id",
		"n.schedule_version",
		"q.name",
		"q.coefficient",
	).
		From("notaries n").
		Join("qualifications q ON q.id = n.qualification_id").
		OrderBy("n.fio ASC, n.id ASC")

	if filter.QualificationID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"n.qualification_id": *filter.QualificationID})
	}

	if filter.SearchFIO != nil && strings.TrimSpace(*filter.SearchFIO) != "" {
		selectBuilder = selectBuilder.Where(squirrel.ILike{"n.fio": "%" + escapeLike(strings.TrimSpace(*filter.SearchFIO)) + "%"})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	notaries := make([]*domain.Notary, 0)
	for rows.Next() {
		var notary domain.Notary
		var qualification domain.Qualification

		err := rows.Scan(
			&notary.ID,
			&notary.FIO,
			&notary.Description,
			&notary.PhotoPath,
			&notary.OfficeAddress,
			&notary.QualificationID,
			&notary.ScheduleVersion,
			&qualification.Name,
			&qualification.Coefficient,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}

		qualification.ID = notary.QualificationID
		notary.Qualification = &qualification
		notaries = append(notaries, &notary)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return notaries, nil
}

// Update обновляет данные нотариуса и расписание с оптимистичной блокировкой
// Запись проходит, только если schedule_version в БД равна expectedVersion
// При успехе версия увеличивается на 1
func (r *Repository) Update(ctx context.Context, notary *domain.Notary, expectedVersion int64) (*domain.Notary, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	raw, err := notary.Schedule.Encode()
	if err != nil {
		return nil, fmt.Errorf("%w: Update - %v", ErrEncodeSchedule, err)
	}

	query, args, err := updateQuery(notary, raw, expectedVersion).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&notary.ScheduleVersion)
	if err == sql.ErrNoRows {
		exists, existsErr := r.exists(ctx, notary.ID)
		if existsErr != nil {
			return nil, existsErr
		}
		return nil, missedUpdateError(exists)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	return notary, nil
}

// updateQuery запись карточки и расписания при условии schedule_version = expectedVersion
func updateQuery(notary *domain.Notary, schedule []byte, expectedVersion int64) squirrel.UpdateBuilder {
	return psqlbuilder.Update("notaries").
		Set("fio", notary.FIO).
		Set("description", notary.Description).
		Set("photo_path", notary.PhotoPath).
		Set("office_address", notary.OfficeAddress).
		Set("qualification_id", notary.QualificationID).
		Set("schedule", string(schedule)).
		Set("schedule_version", squirrel.Expr("schedule_version + 1")).
		Where(squirrel.Eq{"id": notary.ID, "schedule_version": expectedVersion}).
		Suffix("RETURNING schedule_version")
}

// missedUpdateError причина, по которой UPDATE не затронул строку
func missedUpdateError(exists bool) error {
	if !exists {
		return ErrNotaryNotFound
	}
	return ErrVersionConflict
}

// Delete удаляет нотариуса; у заказов notary_id становится NULL (ON DELETE SET NULL)
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("notaries").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrNotaryNotFound
	}

	return nil
}

func (r *Repository) exists(ctx context.Context, id int64) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("1").
		From("notaries").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: exists - build select query: %v", ErrBuildQuery, err)
	}

	var one int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: exists - scan: %v", ErrScanRow, err)
	}

	return true, nil
}

// escapeLike экранирует спецсимволы шаблона LIKE
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

package notaries

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-NotaryService/internal/domain"
	notaryRepo "github.com/m04kA/SMC-NotaryService/internal/infra/storage/notary"
	qualificationRepo "github.com/m04kA/SMC-NotaryService/internal/infra/storage/qualification"
	"github.com/m04kA/SMC-NotaryService/internal/service/notaries/models"
	"github.com/m04kA/SMC-NotaryService/internal/service/projector"
	"github.com/m04kA/SMC-NotaryService/pkg/ptr"
)

// Результаты построения расписания для метрик
const (
	projectionOK      = "ok"
	projectionSkipped = "skipped"
	projectionFailed  = "failed"
)

// Причины отклонённой записи расписания для метрик
const (
	staleReasonSnapshot = "snapshot"
	staleReasonVersion  = "version"
)

// Service сервис нотариусов и их недельных расписаний
type Service struct {
	notaryRepo        NotaryRepository
	orderRepo         OrderRepository
	qualificationRepo QualificationRepository
	projector         *projector.Projector
	txManager         TransactionManager
	timeProvider      TimeProvider
	metrics           Metrics
	logger            Logger
}

// NewService создает новый экземпляр сервиса нотариусов
func NewService(
	notaryRepo NotaryRepository,
	orderRepo OrderRepository,
	qualificationRepo QualificationRepository,
	proj *projector.Projector,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
) *Service {
	return &Service{
		notaryRepo:        notaryRepo,
		orderRepo:         orderRepo,
		qualificationRepo: qualificationRepo,
		projector:         proj,
		txManager:         txManager,
		timeProvider:      &projector.RealTimeProvider{},
		metrics:           metrics,
		logger:            logger,
	}
}

// GetForEditing возвращает нотариуса с расписанием для редактора.
// Часы с актуальными бронированиями помечаются кодом 2 и попадают в forcedSlots.
func (s *Service) GetForEditing(ctx context.Context, notaryID int64) (*models.NotaryEditorResponse, error) {
	s.logger.Info("GetForEditing: loading schedule for notary=%d", notaryID)

	if err := validateID("notaryID", notaryID); err != nil {
		return nil, err
	}

	// 1. Получаем нотариуса с сохранённым расписанием
	notary, err := s.getNotary(ctx, "GetForEditing", notaryID)
	if err != nil {
		return nil, err
	}

	// 2. Получаем заказы нотариуса (фильтрация актуальных - в проекторе)
	orders, err := s.orderRepo.GetByNotaryID(ctx, notaryID)
	if err != nil {
		s.logger.Error("GetForEditing: failed to get orders for notary=%d: %v", notaryID, err)
		return nil, fmt.Errorf("%w: GetForEditing - failed to get orders: %v", ErrInternal, err)
	}

	// 3. Накладываем бронирования на расписание
	overlay, err := s.projector.ForEditing(notary.Schedule, notaryID, orders, s.timeProvider.Now())
	if err != nil {
		s.metrics.ObserveProjection(projectionFailed, 0, 0)
		if errors.Is(err, domain.ErrRange) {
			s.logger.Error("GetForEditing: booking outside schedule hours for notary=%d: %v", notaryID, err)
			return nil, fmt.Errorf("%w: %v", ErrBookingOutOfRange, err)
		}
		s.logger.Error("GetForEditing: failed to project bookings for notary=%d: %v", notaryID, err)
		return nil, fmt.Errorf("%w: GetForEditing - projection failed: %v", ErrInternal, err)
	}

	// 4. Сообщаем о расхождениях между расписанием и бронированиями
	for _, fact := range overlay.Skipped {
		s.logger.Warn("GetForEditing: notary=%d, order=%d is not shown in schedule: %v", notaryID, fact.OrderID, fact.Err)
	}
	for _, slot := range overlay.Inconsistent() {
		s.logger.Warn("GetForEditing: notary=%d has a booking on inactive hour day=%d, hour=%d",
			notaryID, slot.Day, notary.Schedule.Bounds().MinHour+slot.Hour)
	}

	result := projectionOK
	if len(overlay.Skipped) > 0 {
		result = projectionSkipped
	}
	s.metrics.ObserveProjection(result, len(overlay.Forced()), len(overlay.Skipped))

	s.logger.Info("GetForEditing: notary=%d, forced slots=%d, version=%d",
		notaryID, len(overlay.Forced()), notary.ScheduleVersion)

	return models.ToEditorResponse(notary, overlay), nil
}

// Create создает нотариуса с расписанием из редактора.
// Пометки занятости (код 2) сохраняются как активные часы.
func (s *Service) Create(ctx context.Context, req *models.CreateNotaryRequest) (*models.NotaryResponse, error) {
	s.logger.Info("Create: creating notary fio=%q, qualification=%d by user=%d",
		req.FIO, req.QualificationID, req.UserID)

	// 1. Валидируем входные данные
	if err := validateNotaryData(req.UserID, req.FIO, req.Description,
		req.OfficeAddress, req.QualificationID); err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}
	if err := validatePhotoPath(req.PhotoPath); err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	// 2. Приводим сетку редактора к хранимому виду
	schedule, err := s.scheduleFromEditor("Create", req.Schedule)
	if err != nil {
		return nil, err
	}

	// 3. Проверяем квалификацию
	if err := s.checkQualification(ctx, "Create", req.QualificationID); err != nil {
		return nil, err
	}

	// 4. Сохраняем
	created, err := s.notaryRepo.Create(ctx, req.ToDomainNotary(schedule))
	if err != nil {
		s.logger.Error("Create: failed to create notary: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: notary id=%d created", created.ID)
	return models.FromDomainNotary(created), nil
}

// Update заменяет данные нотариуса и расписание целиком.
// Запись выполняется в serializable транзакции:
//   - если передан snapshot, бронирования сверяются с состоянием на момент открытия редактора
//   - scheduleVersion должна совпадать с текущей, иначе ErrVersionConflict
func (s *Service) Update(ctx context.Context, notaryID int64, req *models.UpdateNotaryRequest) (*models.NotaryResponse, error) {
	s.logger.Info("Update: updating notary=%d, version=%d by user=%d", notaryID, req.ScheduleVersion, req.UserID)

	// 1. Валидируем входные данные
	if err := validateID("notaryID", notaryID); err != nil {
		return nil, err
	}
	if err := validateNotaryData(req.UserID, req.FIO, req.Description,
		req.OfficeAddress, req.QualificationID); err != nil {
		s.logger.Warn("Update: validation failed: %v", err)
		return nil, err
	}
	if req.PhotoPath != nil {
		if err := validatePhotoPath(*req.PhotoPath); err != nil {
			s.logger.Warn("Update: validation failed: %v", err)
			return nil, err
		}
	}
	if err := validateID("scheduleVersion", req.ScheduleVersion); err != nil {
		s.logger.Warn("Update: validation failed: %v", err)
		return nil, err
	}

	// 2. Приводим сетку редактора к хранимому виду
	schedule, err := s.scheduleFromEditor("Update", req.Schedule)
	if err != nil {
		return nil, err
	}

	var updated *domain.Notary

	err = s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 3. Получаем карточку с блокировкой строки; старая сетка не читается,
		// поэтому полная замена чинит и расписание, которое не разбирается
		notary, err := s.notaryRepo.GetForUpdate(txCtx, notaryID)
		if err != nil {
			if errors.Is(err, notaryRepo.ErrNotaryNotFound) {
				s.logger.Warn("Update: notary id=%d not found", notaryID)
				return ErrNotaryNotFound
			}
			s.logger.Error("Update: failed to get notary id=%d: %v", notaryID, err)
			return fmt.Errorf("%w: Update - failed to get notary: %v", ErrInternal, err)
		}

		// 4. Проверяем квалификацию, если она меняется
		if notary.QualificationID != req.QualificationID {
			if err := s.checkQualification(txCtx, "Update", req.QualificationID); err != nil {
				return err
			}
		}

		// 5. Сверяем бронирования со снимком редактора
		if req.Snapshot != nil {
			if err := s.verifySnapshot(txCtx, notaryID, *req.Snapshot); err != nil {
				return err
			}
		}

		// 6. Записываем с проверкой версии
		req.ApplyToNotary(notary, schedule)

		updated, err = s.notaryRepo.Update(txCtx, notary, req.ScheduleVersion)
		if err != nil {
			switch {
			case errors.Is(err, notaryRepo.ErrVersionConflict):
				s.metrics.ObserveStaleWrite(staleReasonVersion)
				s.logger.Warn("Update: notary=%d version %d is outdated", notaryID, req.ScheduleVersion)
				return ErrVersionConflict
			case errors.Is(err, notaryRepo.ErrNotaryNotFound):
				s.logger.Warn("Update: notary id=%d not found", notaryID)
				return ErrNotaryNotFound
			default:
				s.logger.Error("Update: failed to update notary=%d: %v", notaryID, err)
				return fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
			}
		}

		return nil
	})
	if err != nil {
		return nil, s.mapTxError("Update", err)
	}

	s.logger.Info("Update: notary=%d updated, version=%d", notaryID, updated.ScheduleVersion)
	return models.FromDomainNotary(updated), nil
}

// List возвращает список нотариусов с названием квалификации
func (s *Service) List(ctx context.Context, req *models.ListNotariesRequest) (*models.NotaryListResponse, error) {
	s.logger.Info("List: qualification=%d, fio=%q", ptr.Value(req.QualificationID), ptr.Value(req.SearchFIO))

	if req.QualificationID != nil {
		if err := validateID("qualificationID", *req.QualificationID); err != nil {
			return nil, err
		}
	}

	notaries, err := s.notaryRepo.List(ctx, req.ToDomainFilter())
	if err != nil {
		s.logger.Error("List: failed to list notaries: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainNotaryList(notaries), nil
}

// ListForSelect возвращает нотариусов для выбора при оформлении заказа (ФИО и коэффициент)
func (s *Service) ListForSelect(ctx context.Context) (*models.NotarySelectResponse, error) {
	s.logger.Info("ListForSelect: listing notaries")

	notaries, err := s.notaryRepo.List(ctx, domain.NotariesFilter{})
	if err != nil {
		s.logger.Error("ListForSelect: failed to list notaries: %v", err)
		return nil, fmt.Errorf("%w: ListForSelect - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainNotarySelect(notaries), nil
}

// Delete удаляет нотариуса. Заказы остаются без нотариуса.
func (s *Service) Delete(ctx context.Context, notaryID int64, userID int64) error {
	s.logger.Info("Delete: deleting notary=%d by user=%d", notaryID, userID)

	if err := validateID("notaryID", notaryID); err != nil {
		return err
	}
	if err := validateID("userID", userID); err != nil {
		return err
	}

	if err := s.notaryRepo.Delete(ctx, notaryID); err != nil {
		if errors.Is(err, notaryRepo.ErrNotaryNotFound) {
			s.logger.Warn("Delete: notary id=%d not found", notaryID)
			return ErrNotaryNotFound
		}
		s.logger.Error("Delete: failed to delete notary=%d: %v", notaryID, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: notary=%d deleted", notaryID)
	return nil
}

func (s *Service) getNotary(ctx context.Context, op string, notaryID int64) (*domain.Notary, error) {
	notary, err := s.notaryRepo.GetByID(ctx, notaryID)
	if err != nil {
		switch {
		case errors.Is(err, notaryRepo.ErrNotaryNotFound):
			s.logger.Warn("%s: notary id=%d not found", op, notaryID)
			return nil, ErrNotaryNotFound
		case errors.Is(err, domain.ErrFormat):
			s.logger.Error("%s: stored schedule of notary=%d is corrupted: %v", op, notaryID, err)
			return nil, fmt.Errorf("%w: %v", ErrScheduleCorrupted, err)
		default:
			s.logger.Error("%s: failed to get notary id=%d: %v", op, notaryID, err)
			return nil, fmt.Errorf("%w: %s - failed to get notary: %v", ErrInternal, op, err)
		}
	}
	return notary, nil
}

func (s *Service) scheduleFromEditor(op string, codes [][]int) (*domain.Schedule, error) {
	if codes == nil {
		s.logger.Warn("%s: schedule is missing", op)
		return nil, fmt.Errorf("%w: schedule is required", ErrInvalidInput)
	}

	schedule, err := s.projector.FromEditor(codes)
	if err != nil {
		s.logger.Warn("%s: invalid schedule: %v", op, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return schedule, nil
}

func (s *Service) checkQualification(ctx context.Context, op string, qualificationID int64) error {
	if _, err := s.qualificationRepo.GetByID(ctx, qualificationID); err != nil {
		if errors.Is(err, qualificationRepo.ErrQualificationNotFound) {
			s.logger.Warn("%s: qualification id=%d not found", op, qualificationID)
			return ErrQualificationNotFound
		}
		s.logger.Error("%s: failed to get qualification id=%d: %v", op, qualificationID, err)
		return fmt.Errorf("%w: %s - failed to get qualification: %v", ErrInternal, op, err)
	}
	return nil
}

func (s *Service) verifySnapshot(ctx context.Context, notaryID int64, token string) error {
	orders, err := s.orderRepo.GetByNotaryID(ctx, notaryID)
	if err != nil {
		s.logger.Error("Update: failed to get orders for notary=%d: %v", notaryID, err)
		return fmt.Errorf("%w: Update - failed to get orders: %v", ErrInternal, err)
	}

	if err := projector.VerifySnapshot(token, orders, notaryID, s.timeProvider.Now()); err != nil {
		switch {
		case errors.Is(err, projector.ErrStaleSnapshot):
			s.metrics.ObserveStaleWrite(staleReasonSnapshot)
			s.logger.Warn("Update: bookings of notary=%d changed since the editor was opened", notaryID)
			return ErrScheduleStale
		case errors.Is(err, projector.ErrInvalidSnapshot):
			s.logger.Warn("Update: invalid snapshot for notary=%d: %v", notaryID, err)
			return fmt.Errorf("%w: %v", ErrInvalidInput, err)
		default:
			return fmt.Errorf("%w: Update - snapshot check: %v", ErrInternal, err)
		}
	}
	return nil
}

// mapTxError пропускает доменные ошибки сервиса и оборачивает ошибки транзакции
func (s *Service) mapTxError(op string, err error) error {
	for _, known := range []error{
		ErrNotaryNotFound,
		ErrQualificationNotFound,
		ErrInvalidInput,
		ErrScheduleCorrupted,
		ErrScheduleStale,
		ErrVersionConflict,
		ErrInternal,
	} {
		if errors.Is(err, known) {
			return err
		}
	}
	s.logger.Error("%s: transaction failed: %v", op, err)
	return fmt.Errorf("%w: %s - transaction failed: %v", ErrInternal, op, err)
}

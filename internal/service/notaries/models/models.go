package models

import (
	"github.com/m04kA/SMC-NotaryService/internal/domain"
	"github.com/m04kA/SMC-NotaryService/internal/service/projector"
)

// Request модели

// CreateNotaryRequest запрос на создание нотариуса
// Schedule - сетка кодов редактора [день][час]; код 2 (занято) сохраняется как активный час
type CreateNotaryRequest struct {
	UserID          int64   `json:"userId"`
	FIO             string  `json:"fio"`
	Description     string  `json:"description"`
	PhotoPath       string  `json:"photoPath"`
	OfficeAddress   string  `json:"officeAddress"`
	QualificationID int64   `json:"qualificationId"`
	Schedule        [][]int `json:"schedule"`
}

// UpdateNotaryRequest запрос на полную замену данных нотариуса и расписания
type UpdateNotaryRequest struct {
	UserID          int64   `json:"userId"`
	FIO             string  `json:"fio"`
	Description     string  `json:"description"`
	PhotoPath       *string `json:"photoPath,omitempty"` // nil - оставить текущее фото
	OfficeAddress   string  `json:"officeAddress"`
	QualificationID int64   `json:"qualificationId"`
	Schedule        [][]int `json:"schedule"`

	// ScheduleVersion версия, полученная вместе с редактором (оптимистичная блокировка)
	ScheduleVersion int64 `json:"scheduleVersion"`
	// Snapshot токен бронирований из редактора; если передан, запись отклоняется,
	// когда бронирования нотариуса изменились
	Snapshot *string `json:"snapshot,omitempty"`
}

// ListNotariesRequest фильтр списка нотариусов
type ListNotariesRequest struct {
	QualificationID *int64
	SearchFIO       *string
}

// Response модели

// SlotResponse занятая ячейка расписания
type SlotResponse struct {
	Day       int `json:"day"`       // 0 = понедельник
	HourIndex int `json:"hourIndex"` // индекс столбца сетки
	Hour      int `json:"hour"`      // час суток
}

// SkippedOrderResponse бронирование, которое не удалось показать в сетке
type SkippedOrderResponse struct {
	OrderID int64  `json:"orderId"`
	Reason  string `json:"reason"`
}

// NotaryEditorResponse данные нотариуса для редактора
// Schedule содержит коды 0 (неактивен), 1 (активен), 2 (занят бронированием, нельзя снять)
type NotaryEditorResponse struct {
	ID              int64                  `json:"id"`
	FIO             string                 `json:"fio"`
	Description     string                 `json:"description"`
	PhotoPath       string                 `json:"photoPath"`
	OfficeAddress   string                 `json:"officeAddress"`
	QualificationID int64                  `json:"qualificationId"`
	MinHour         int                    `json:"minHour"`
	HoursPerDay     int                    `json:"hoursPerDay"`
	Schedule        [][]int                `json:"schedule"`
	ForcedSlots     []SlotResponse         `json:"forcedSlots"`
	SkippedOrders   []SkippedOrderResponse `json:"skippedOrders,omitempty"`
	ScheduleVersion int64                  `json:"scheduleVersion"`
	Snapshot        string                 `json:"snapshot"`
}

// NotaryResponse нотариус после создания или обновления
type NotaryResponse struct {
	ID              int64   `json:"id"`
	FIO             string  `json:"fio"`
	Description     string  `json:"description"`
	PhotoPath       string  `json:"photoPath"`
	OfficeAddress   string  `json:"officeAddress"`
	QualificationID int64   `json:"qualificationId"`
	Schedule        [][]int `json:"schedule"`
	ScheduleVersion int64   `json:"scheduleVersion"`
}

// NotaryListItem элемент списка нотариусов
type NotaryListItem struct {
	ID                int64  `json:"id"`
	FIO               string `json:"fio"`
	Description       string `json:"description"`
	PhotoPath         string `json:"photoPath"`
	OfficeAddress     string `json:"officeAddress"`
	QualificationName string `json:"qualificationName"`
}

// NotaryListResponse ответ со списком нотариусов
type NotaryListResponse struct {
	Notaries []NotaryListItem `json:"notaries"`
}

// NotarySelectItem нотариус для выпадающего списка при оформлении заказа
type NotarySelectItem struct {
	ID          int64   `json:"id"`
	FIO         string  `json:"fio"`
	Coefficient float64 `json:"coefficient"`
}

// NotarySelectResponse ответ со списком для выбора
type NotarySelectResponse struct {
	Notaries []NotarySelectItem `json:"notaries"`
}

// Методы конвертации

// ToEditorResponse собирает ответ редактора из нотариуса и наложенных бронирований
func ToEditorResponse(n *domain.Notary, overlay *projector.Overlay) *NotaryEditorResponse {
	bounds := overlay.Base.Bounds()

	forced := overlay.Forced()
	slots := make([]SlotResponse, len(forced))
	for i, s := range forced {
		slots[i] = SlotResponse{Day: s.Day, HourIndex: s.Hour, Hour: bounds.MinHour + s.Hour}
	}

	var skipped []SkippedOrderResponse
	for _, f := range overlay.Skipped {
		skipped = append(skipped, SkippedOrderResponse{OrderID: f.OrderID, Reason: f.Err.Error()})
	}

	return &NotaryEditorResponse{
		ID:              n.ID,
		FIO:             n.FIO,
		Description:     n.Description,
		PhotoPath:       n.PhotoPath,
		OfficeAddress:   n.OfficeAddress,
		QualificationID: n.QualificationID,
		MinHour:         bounds.MinHour,
		HoursPerDay:     bounds.Hours,
		Schedule:        overlay.EditorCodes(),
		ForcedSlots:     slots,
		SkippedOrders:   skipped,
		ScheduleVersion: n.ScheduleVersion,
		Snapshot:        overlay.Snapshot,
	}
}

// FromDomainNotary конвертирует domain модель в DTO
func FromDomainNotary(n *domain.Notary) *NotaryResponse {
	if n == nil {
		return nil
	}

	resp := &NotaryResponse{
		ID:              n.ID,
		FIO:             n.FIO,
		Description:     n.Description,
		PhotoPath:       n.PhotoPath,
		OfficeAddress:   n.OfficeAddress,
		QualificationID: n.QualificationID,
		ScheduleVersion: n.ScheduleVersion,
	}
	if n.Schedule != nil {
		resp.Schedule = n.Schedule.Codes()
	}
	return resp
}

// FromDomainNotaryList конвертирует список нотариусов в DTO
func FromDomainNotaryList(notaries []*domain.Notary) *NotaryListResponse {
	resp := &NotaryListResponse{Notaries: make([]NotaryListItem, 0, len(notaries))}

	for _, n := range notaries {
		item := NotaryListItem{
			ID:            n.ID,
			FIO:           n.FIO,
			Description:   n.Description,
			PhotoPath:     n.PhotoPath,
			OfficeAddress: n.OfficeAddress,
		}
		if n.Qualification != nil {
			item.QualificationName = n.Qualification.Name
		}
		resp.Notaries = append(resp.Notaries, item)
	}

	return resp
}

// FromDomainNotarySelect конвертирует список нотариусов в список для выбора
func FromDomainNotarySelect(notaries []*domain.Notary) *NotarySelectResponse {
	resp := &NotarySelectResponse{Notaries: make([]NotarySelectItem, 0, len(notaries))}

	for _, n := range notaries {
		item := NotarySelectItem{ID: n.ID, FIO: n.FIO}
		if n.Qualification != nil {
			item.Coefficient = n.Qualification.Coefficient
		}
		resp.Notaries = append(resp.Notaries, item)
	}

	return resp
}

// ToDomainNotary конвертирует запрос на создание в domain модель
func (r *CreateNotaryRequest) ToDomainNotary(schedule *domain.Schedule) *domain.Notary {
	return &domain.Notary{
		FIO:             r.FIO,
		Description:     r.Description,
		PhotoPath:       r.PhotoPath,
		OfficeAddress:   r.OfficeAddress,
		QualificationID: r.QualificationID,
		Schedule:        schedule,
	}
}

// ApplyToNotary переносит изменения в существующего нотариуса
func (r *UpdateNotaryRequest) ApplyToNotary(n *domain.Notary, schedule *domain.Schedule) {
	n.FIO = r.FIO
	n.Description = r.Description
	n.OfficeAddress = r.OfficeAddress
	n.QualificationID = r.QualificationID
	n.Schedule = schedule
	if r.PhotoPath != nil {
		n.PhotoPath = *r.PhotoPath
	}
}

// ToDomainFilter конвертирует запрос списка в фильтр
func (r *ListNotariesRequest) ToDomainFilter() domain.NotariesFilter {
	return domain.NotariesFilter{
		QualificationID: r.QualificationID,
		SearchFIO:       r.SearchFIO,
	}
}

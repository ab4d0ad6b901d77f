package update_notary

import (
	"github.com/m04kA/SMC-NotaryService/internal/service/notaries/models"
)

// UpdateNotaryRequest HTTP request model
// Snapshot и ScheduleVersion берутся из ответа GET /notaries/{id}/editor
type UpdateNotaryRequest struct {
	FIO             string  `json:"fio"`
	Description     string  `json:"description"`
	PhotoPath       *string `json:"photoPath,omitempty"`
	OfficeAddress   string  `json:"officeAddress"`
	QualificationID int64   `json:"qualificationId"`
	Schedule        [][]int `json:"schedule"`
	ScheduleVersion int64   `json:"scheduleVersion"`
	Snapshot        *string `json:"snapshot,omitempty"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *UpdateNotaryRequest) ToServiceRequest(userID int64) *models.UpdateNotaryRequest {
	return &models.UpdateNotaryRequest{
		UserID:          userID,
		FIO:             r.FIO,
		Description:     r.Description,
		PhotoPath:       r.PhotoPath,
		OfficeAddress:   r.OfficeAddress,
		QualificationID: r.QualificationID,
		Schedule:        r.Schedule,
		ScheduleVersion: r.ScheduleVersion,
		Snapshot:        r.Snapshot,
	}
}

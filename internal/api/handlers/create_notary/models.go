package create_notary

import (
	"github.com/m04kA/SMC-NotaryService/internal/service/notaries/models"
)

// CreateNotaryRequest HTTP request model
type CreateNotaryRequest struct {
	FIO             string  `json:"fio"`
	Description     string  `json:"description"`
	PhotoPath       string  `json:"photoPath"`
	OfficeAddress   string  `json:"officeAddress"`
	QualificationID int64   `json:"qualificationId"`
	Schedule        [][]int `json:"schedule"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *CreateNotaryRequest) ToServiceRequest(userID int64) *models.CreateNotaryRequest {
	return &models.CreateNotaryRequest{
		UserID:          userID,
		FIO:             r.FIO,
		Description:     r.Description,
		PhotoPath:       r.PhotoPath,
		OfficeAddress:   r.OfficeAddress,
		QualificationID: r.QualificationID,
		Schedule:        r.Schedule,
	}
}

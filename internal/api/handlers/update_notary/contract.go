package update_notary

import (
	"context"

	"github.com/m04kA/SMC-NotaryService/internal/service/notaries/models"
)

type NotaryService interface {
	Update(ctx context.Context, notaryID int64, req *models.UpdateNotaryRequest) (*models.NotaryResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

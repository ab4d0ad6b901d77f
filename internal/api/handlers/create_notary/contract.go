package create_notary

import (
	"context"

	"github.com/m04kA/SMC-NotaryService/internal/service/notaries/models"
)

type NotaryService interface {
	Create(ctx context.Context, req *models.CreateNotaryRequest) (*models.NotaryResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

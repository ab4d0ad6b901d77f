package get_notaries

import (
	"context"

	"github.com/m04kA/SMC-NotaryService/internal/service/notaries/models"
)

type NotaryService interface {
	List(ctx context.Context, req *models.ListNotariesRequest) (*models.NotaryListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

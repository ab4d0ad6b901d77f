package get_notaries_select

import (
	"context"

	"github.com/m04kA/SMC-NotaryService/internal/service/notaries/models"
)

type NotaryService interface {
	ListForSelect(ctx context.Context) (*models.NotarySelectResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

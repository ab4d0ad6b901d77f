package get_notary_editor

import (
	"context"

	"github.com/m04kA/SMC-NotaryService/internal/service/notaries/models"
)

type NotaryService interface {
	GetForEditing(ctx context.Context, notaryID int64) (*models.NotaryEditorResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

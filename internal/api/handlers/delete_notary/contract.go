package delete_notary

import "context"

type NotaryService interface {
	Delete(ctx context.Context, notaryID int64, userID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

package notaries

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/m04kA/SMC-NotaryService/internal/domain"
)

// validateNotaryData проверяет поля карточки нотариуса
func validateNotaryData(userID int64, fio, description, officeAddress string, qualificationID int64) error {
	if userID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if strings.TrimSpace(fio) == "" {
		return fmt.Errorf("%w: fio is required", ErrInvalidInput)
	}

	if utf8.RuneCountInString(fio) > domain.MaxFIOLength {
		return fmt.Errorf("%w: fio must be at most %d characters", ErrInvalidInput, domain.MaxFIOLength)
	}

	if utf8.RuneCountInString(description) > domain.MaxDescriptionLength {
		return fmt.Errorf("%w: description must be at most %d characters", ErrInvalidInput, domain.MaxDescriptionLength)
	}

	if utf8.RuneCountInString(officeAddress) > domain.MaxOfficeAddressLength {
		return fmt.Errorf("%w: officeAddress must be at most %d characters", ErrInvalidInput, domain.MaxOfficeAddressLength)
	}

	if qualificationID <= 0 {
		return fmt.Errorf("%w: qualificationID must be positive", ErrInvalidInput)
	}

	return nil
}

// validatePhotoPath проверяет путь к фото (загрузка файла выполняется вне сервиса)
func validatePhotoPath(photoPath string) error {
	if utf8.RuneCountInString(photoPath) > domain.MaxPhotoPathLength {
		return fmt.Errorf("%w: photoPath must be at most %d characters", ErrInvalidInput, domain.MaxPhotoPathLength)
	}
	return nil
}

// validateID проверяет идентификатор из URL
func validateID(name string, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: %s must be positive", ErrInvalidInput, name)
	}
	return nil
}

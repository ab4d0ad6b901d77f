package get_notaries

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/m04kA/SMC-NotaryService/internal/service/notaries/models"
)

// ToServiceRequest формирует фильтр из query параметров
func ToServiceRequest(qualificationIDStr, fio string) (*models.ListNotariesRequest, error) {
	req := &models.ListNotariesRequest{}

	if qualificationIDStr != "" {
		id, err := strconv.ParseInt(qualificationIDStr, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid qualificationId: %v", err)
		}
		req.QualificationID = &id
	}

	if fio = strings.TrimSpace(fio); fio != "" {
		req.SearchFIO = &fio
	}

	return req, nil
}

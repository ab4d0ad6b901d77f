package update_notary

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-NotaryService/internal/api/middleware"
	"github.com/m04kA/SMC-NotaryService/internal/service/notaries"
	"github.com/m04kA/SMC-NotaryService/internal/service/notaries/models"
)

type fakeService struct {
	err      error
	notaryID int64
	req      *models.UpdateNotaryRequest
}

func (f *fakeService) Update(_ context.Context, notaryID int64, req *models.UpdateNotaryRequest) (*models.NotaryResponse, error) {
	f.notaryID = notaryID
	f.req = req
	if f.err != nil {
		return nil, f.err
	}
	return &models.NotaryResponse{ID: notaryID, FIO: req.FIO, ScheduleVersion: req.ScheduleVersion + 1}, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newRouter(svc NotaryService) *mux.Router {
	r := mux.NewRouter()
	r.Use(middleware.Auth)
	r.HandleFunc("/notaries/{notaryId}", NewHandler(svc, nopLogger{}).Handle).Methods(http.MethodPut)
	return r
}

const validBody = `{"fio":"Иванов","qualificationId":1,"schedule":[[1]],"scheduleVersion":3,"snapshot":"v1:1:ff"}`

func doRequest(r http.Handler, path, body string, withUser bool) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPut, path, strings.NewReader(body))
	if withUser {
		req.Header.Set("X-User-ID", "15")
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandler_Success(t *testing.T) {
	svc := &fakeService{}
	rec := doRequest(newRouter(svc), "/notaries/7", validBody, true)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(7), svc.notaryID)
	assert.Equal(t, int64(15), svc.req.UserID)
	require.NotNil(t, svc.req.Snapshot)
	assert.Equal(t, "v1:1:ff", *svc.req.Snapshot)
	assert.Nil(t, svc.req.PhotoPath)

	var resp models.NotaryResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, int64(4), resp.ScheduleVersion)
}

func TestHandler_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"invalid input", fmt.Errorf("%w: fio is required", notaries.ErrInvalidInput), http.StatusBadRequest},
		{"not found", notaries.ErrNotaryNotFound, http.StatusNotFound},
		{"qualification", notaries.ErrQualificationNotFound, http.StatusNotFound},
		{"stale snapshot", notaries.ErrScheduleStale, http.StatusConflict},
		{"version conflict", notaries.ErrVersionConflict, http.StatusConflict},
		{"internal", notaries.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(newRouter(&fakeService{err: tt.err}), "/notaries/7", validBody, true)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestHandler_BadRequests(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		body       string
		withUser   bool
		wantStatus int
	}{
		{"no user", "/notaries/7", validBody, false, http.StatusUnauthorized},
		{"bad id", "/notaries/abc", validBody, true, http.StatusBadRequest},
		{"bad json", "/notaries/7", `{"fio":`, true, http.StatusBadRequest},
		{"unknown field", "/notaries/7", `{"fio":"x","extra":1}`, true, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeService{}
			rec := doRequest(newRouter(svc), tt.path, tt.body, tt.withUser)
			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Nil(t, svc.req)
		})
	}
}

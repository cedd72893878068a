package handler

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/medtrain/progress-tracker-api/internal/dto"
	"github.com/medtrain/progress-tracker-api/internal/models"
	appErrors "github.com/medtrain/progress-tracker-api/pkg/errors"
)

type stubRosterService struct {
	ingestErr error
	lastFile  string
	lastData  []byte
	roster    dto.RosterResponse
	addErr    error
	editErr   error
	resetHit  bool
}

func (s *stubRosterService) Ingest(filename string, data []byte) (*dto.RosterResponse, error) {
	s.lastFile = filename
	s.lastData = data
	if s.ingestErr != nil {
		return nil, s.ingestErr
	}
	return &s.roster, nil
}

func (s *stubRosterService) Roster() *dto.RosterResponse { return &s.roster }

func (s *stubRosterService) Add(req dto.SaveStudentRequest) (*models.Student, error) {
	if s.addErr != nil {
		return nil, s.addErr
	}
	return &models.Student{ID: "new-id", Name: req.Name}, nil
}

func (s *stubRosterService) Edit(id string, req dto.SaveStudentRequest) (*models.Student, error) {
	if s.editErr != nil {
		return nil, s.editErr
	}
	return &models.Student{ID: id, Name: req.Name}, nil
}

func (s *stubRosterService) Thresholds() models.Thresholds {
	return s.roster.Thresholds
}

func (s *stubRosterService) UpdateThresholds(req dto.ThresholdsRequest) *dto.RosterResponse {
	s.roster.Thresholds = models.Thresholds{NoProgress: req.NoProgress, InProgress: req.InProgress}
	return &s.roster
}

func (s *stubRosterService) Reset() { s.resetHit = true }

func buildRosterRouter(svc *stubRosterService, maxUpload int64) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	h := NewRosterHandler(svc, maxUpload)
	router.POST("/roster/upload", h.Upload)
	router.GET("/roster", h.List)
	router.DELETE("/roster", h.Reset)
	router.POST("/roster/students", h.Add)
	router.PUT("/roster/students/:id", h.Edit)
	router.GET("/roster/thresholds", h.Thresholds)
	router.PUT("/roster/thresholds", h.UpdateThresholds)
	return router
}

func performRequest(router *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func multipartUpload(t *testing.T, field, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())
	return &buf, writer.FormDataContentType()
}

func TestUploadSuccess(t *testing.T) {
	svc := &stubRosterService{roster: dto.RosterResponse{SourceFile: "august.xlsx"}}
	router := buildRosterRouter(svc, 1<<20)

	body, contentType := multipartUpload(t, "file", "august.xlsx", []byte("workbook-bytes"))
	req, _ := http.NewRequest(http.MethodPost, "/roster/upload", body)
	req.Header.Set("Content-Type", contentType)

	resp := performRequest(router, req)
	require.Equal(t, http.StatusOK, resp.Code)
	require.Equal(t, "august.xlsx", svc.lastFile)
	require.Equal(t, []byte("workbook-bytes"), svc.lastData)
	require.Contains(t, resp.Body.String(), `"source_file":"august.xlsx"`)
}

func TestUploadMissingFile(t *testing.T) {
	router := buildRosterRouter(&stubRosterService{}, 1<<20)

	req, _ := http.NewRequest(http.MethodPost, "/roster/upload", nil)
	resp := performRequest(router, req)

	require.Equal(t, http.StatusBadRequest, resp.Code)
	require.Contains(t, resp.Body.String(), appErrors.ErrValidation.Code)
}

func TestUploadTooLarge(t *testing.T) {
	router := buildRosterRouter(&stubRosterService{}, 8)

	body, contentType := multipartUpload(t, "file", "big.xlsx", bytes.Repeat([]byte("x"), 64))
	req, _ := http.NewRequest(http.MethodPost, "/roster/upload", body)
	req.Header.Set("Content-Type", contentType)

	resp := performRequest(router, req)
	require.Equal(t, http.StatusRequestEntityTooLarge, resp.Code)
	require.Contains(t, resp.Body.String(), appErrors.ErrPayloadTooLarge.Code)
}

func TestUploadInvalidWorkbook(t *testing.T) {
	svc := &stubRosterService{ingestErr: appErrors.Clone(appErrors.ErrInvalidWorkbook, "")}
	router := buildRosterRouter(svc, 1<<20)

	body, contentType := multipartUpload(t, "file", "junk.txt", []byte("not a workbook"))
	req, _ := http.NewRequest(http.MethodPost, "/roster/upload", body)
	req.Header.Set("Content-Type", contentType)

	resp := performRequest(router, req)
	require.Equal(t, http.StatusBadRequest, resp.Code)
	require.Contains(t, resp.Body.String(), appErrors.ErrInvalidWorkbook.Code)
	require.Contains(t, resp.Body.String(), "check the format and column names")
}

func TestListRoster(t *testing.T) {
	svc := &stubRosterService{roster: dto.RosterResponse{
		Students:   []models.Student{{ID: "a", Name: "Asha"}},
		Thresholds: models.Thresholds{NoProgress: 4, InProgress: 10},
	}}
	router := buildRosterRouter(svc, 0)

	req, _ := http.NewRequest(http.MethodGet, "/roster", nil)
	resp := performRequest(router, req)

	require.Equal(t, http.StatusOK, resp.Code)
	require.Contains(t, resp.Body.String(), `"name":"Asha"`)
}

func TestAddStudent(t *testing.T) {
	router := buildRosterRouter(&stubRosterService{}, 0)

	payload, _ := json.Marshal(dto.SaveStudentRequest{Name: "Asha"})
	req, _ := http.NewRequest(http.MethodPost, "/roster/students", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp := performRequest(router, req)
	require.Equal(t, http.StatusCreated, resp.Code)
	require.Contains(t, resp.Body.String(), `"id":"new-id"`)
}

func TestAddStudentMalformedBody(t *testing.T) {
	router := buildRosterRouter(&stubRosterService{}, 0)

	req, _ := http.NewRequest(http.MethodPost, "/roster/students", bytes.NewBufferString("{"))
	req.Header.Set("Content-Type", "application/json")

	resp := performRequest(router, req)
	require.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestEditStudentNotFound(t *testing.T) {
	svc := &stubRosterService{editErr: appErrors.Clone(appErrors.ErrNotFound, "student not found")}
	router := buildRosterRouter(svc, 0)

	payload, _ := json.Marshal(dto.SaveStudentRequest{Name: "Asha"})
	req, _ := http.NewRequest(http.MethodPut, "/roster/students/missing", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp := performRequest(router, req)
	require.Equal(t, http.StatusNotFound, resp.Code)
	require.Contains(t, resp.Body.String(), "student not found")
}

func TestUpdateThresholds(t *testing.T) {
	svc := &stubRosterService{}
	router := buildRosterRouter(svc, 0)

	req, _ := http.NewRequest(http.MethodPut, "/roster/thresholds", bytes.NewBufferString(`{"no_progress":8,"in_progress":20}`))
	req.Header.Set("Content-Type", "application/json")

	resp := performRequest(router, req)
	require.Equal(t, http.StatusOK, resp.Code)
	require.Equal(t, models.Thresholds{NoProgress: 8, InProgress: 20}, svc.roster.Thresholds)
}

func TestResetRoster(t *testing.T) {
	svc := &stubRosterService{}
	router := buildRosterRouter(svc, 0)

	req, _ := http.NewRequest(http.MethodDelete, "/roster", nil)
	resp := performRequest(router, req)

	require.Equal(t, http.StatusNoContent, resp.Code)
	require.True(t, svc.resetHit)
}

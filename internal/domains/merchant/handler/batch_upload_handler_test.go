package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"merchant-directory-backend/internal/domains/merchant/model"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubImportService struct {
	result  *model.BatchResult
	err     error
	doPanic bool
}

func (s *stubImportService) ImportManifest(_ context.Context, _ []byte) (*model.BatchResult, error) {
	if s.doPanic {
		panic("unexpected nil client")
	}
	return s.result, s.err
}

func performImport(t *testing.T, svc *stubImportService, body string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.POST("/admin/batch-upload", NewBatchUploadHandler(svc).ImportManifest)

	req := httptest.NewRequest(http.MethodPost, "/admin/batch-upload", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestImportManifest_InvalidManifestReturns400(t *testing.T) {
	svc := &stubImportService{err: model.ErrInvalidManifest}
	rec := performImport(t, svc, `{"items": []}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "error", body["status"])
	assert.Equal(t, "Manifest is missing or has no items.", body["error"])
}

func TestImportManifest_SuccessReturnsRawBatchResult(t *testing.T) {
	svc := &stubImportService{result: &model.BatchResult{
		Status: model.BatchStatusDone,
		Results: []model.ItemResult{{
			Slug:           "alice",
			Uploads:        []model.AssetUploadResult{},
			DatabaseStatus: model.DBStatusOK,
			Errors:         []string{},
		}},
	}}
	rec := performImport(t, svc, `{"items": [{"name": "Alice"}]}`)

	assert.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Status  string `json:"status"`
		Results []struct {
			Slug string `json:"slug"`
			DB   string `json:"db"`
		} `json:"results"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "done", body.Status)
	require.Len(t, body.Results, 1)
	assert.Equal(t, "alice", body.Results[0].Slug)
	assert.Equal(t, "ok", body.Results[0].DB)
}

func TestImportManifest_PanicReturns500WithStack(t *testing.T) {
	svc := &stubImportService{doPanic: true}
	rec := performImport(t, svc, `{"items": [{"name": "Alice"}]}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "error", body["status"])
	assert.Equal(t, "unexpected nil client", body["error"])
	assert.NotEmpty(t, body["stack"])
}

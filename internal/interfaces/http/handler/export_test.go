package handler

import (
	"net/http"
	"testing"
	"time"

	transferapp "github.com/bizify/backend/internal/application/transfer"
	"github.com/bizify/backend/internal/domain/shared"
	"github.com/bizify/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func exportRouter(svc *MockExportService, rec *recordingMetrics) *gin.Engine {
	h := NewExportHandler(svc).WithRecorder(rec)
	router := newTestRouter(true)
	router.POST("/export/:format", h.Export)
	return router
}

func TestExportHandler_Download(t *testing.T) {
	t.Run("empty body exports everything", func(t *testing.T) {
		svc := new(MockExportService)
		rec := &recordingMetrics{}
		svc.On("Render", mock.Anything, testOwnerID, transferapp.FormatJSON, transferapp.FullExport()).
			Return(&transferapp.ExportFile{
				Filename:    "bizify_export_20260101_120000.json",
				ContentType: "application/json",
				Data:        []byte(`{"version":"1.0"}`),
			}, nil)

		w := doRequest(exportRouter(svc, rec), "POST", "/export/json", nil, "")

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Equal(t, "attachment; filename=bizify_export_20260101_120000.json", w.Header().Get("Content-Disposition"))
		assert.JSONEq(t, `{"version":"1.0"}`, w.Body.String())
		assert.Equal(t, []string{"json"}, rec.exports)
		assert.Equal(t, []bool{false}, rec.stored)
	})

	t.Run("selection body", func(t *testing.T) {
		svc := new(MockExportService)
		customerID := uuid.New()
		svc.On("Render", mock.Anything, testOwnerID, transferapp.FormatCSV, mock.MatchedBy(func(req transferapp.ExportRequest) bool {
			return req.IncludeSettings != nil && !*req.IncludeSettings &&
				req.IncludeCustomers == nil &&
				len(req.CustomerIDs) == 1 && req.CustomerIDs[0] == customerID
		})).Return(&transferapp.ExportFile{Filename: "bizify_export.zip", ContentType: "application/zip", Data: []byte("PK")}, nil)

		body := `{"include_settings":false,"customer_ids":["` + customerID.String() + `"]}`
		w := doJSON(exportRouter(svc, &recordingMetrics{}), "POST", "/export/csv", body)

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Equal(t, "application/zip", w.Header().Get("Content-Type"))
		svc.AssertExpectations(t)
	})

	t.Run("unknown format", func(t *testing.T) {
		svc := new(MockExportService)
		w := doJSON(exportRouter(svc, &recordingMetrics{}), "POST", "/export/xml", "")

		require.Equal(t, http.StatusBadRequest, w.Code)
		svc.AssertNotCalled(t, "Render", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("malformed body", func(t *testing.T) {
		w := doJSON(exportRouter(new(MockExportService), &recordingMetrics{}), "POST", "/export/json", `{"include_customers":`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestExportHandler_Store(t *testing.T) {
	t.Run("returns presigned link", func(t *testing.T) {
		svc := new(MockExportService)
		rec := &recordingMetrics{}
		expires := time.Date(2026, 1, 1, 13, 0, 0, 0, time.UTC)
		svc.On("Store", mock.Anything, testOwnerID, transferapp.FormatBackup, transferapp.FullExport()).
			Return(&transferapp.StoredExport{
				Filename:    "bizify_backup_20260101_120000.zip",
				Key:         "backups/" + testOwnerID.String() + "/bizify_backup_20260101_120000.zip",
				DownloadURL: "https://storage.test/signed",
				ExpiresAt:   expires,
			}, nil)

		w := doRequest(exportRouter(svc, rec), "POST", "/export/backup?store=true", nil, "")

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		stored := decodeData[transferapp.StoredExport](t, w)
		assert.Equal(t, "https://storage.test/signed", stored.DownloadURL)
		assert.True(t, expires.Equal(stored.ExpiresAt))
		assert.Equal(t, []bool{true}, rec.stored)
	})

	t.Run("storage disabled", func(t *testing.T) {
		svc := new(MockExportService)
		rec := &recordingMetrics{}
		svc.On("Store", mock.Anything, testOwnerID, transferapp.FormatBackup, mock.Anything).
			Return(nil, shared.NewDomainError(shared.CodeInvalidState, "Object storage is not configured"))

		w := doRequest(exportRouter(svc, rec), "POST", "/export/backup?store=1", nil, "")

		require.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Equal(t, dto.ErrCodeInvalidState, decode(t, w).Error.Code)
		assert.Empty(t, rec.exports)
	})
}

package handler

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	transferapp "github.com/bizify/backend/internal/application/transfer"
	"github.com/gin-gonic/gin"
)

// ExportHandler renders export projections for download or object storage
type ExportHandler struct {
	BaseHandler
	exportService ExportService
	recorder      ExportRecorder
}

// NewExportHandler creates a new ExportHandler
func NewExportHandler(exportService ExportService) *ExportHandler {
	return &ExportHandler{exportService: exportService}
}

// WithRecorder counts completed exports per format
func (h *ExportHandler) WithRecorder(r ExportRecorder) *ExportHandler {
	h.recorder = r
	return h
}

// Export renders /export/:format. The selection body is optional and an
// empty body exports everything. With ?store=true the archive is uploaded
// and a presigned link is returned instead of the bytes.
//
//	@ID			exportData
//	@Summary		Export data
//	@Tags			transfer
//	@Accept		json
//	@Produce		octet-stream
//	@Param			format	path		string					true	"Export format"	Enums(json, csv, excel, backup)
//	@Param			store	query		bool					false	"Upload to object storage and return a link"
//	@Param			request	body		transferapp.ExportRequest	false	"Selection, everything when omitted"
//	@Success		200		{file}		binary
//	@Failure		400		{object}	dto.Response
//	@Security		BearerAuth
//	@Router			/export/{format} [post]
func (h *ExportHandler) Export(c *gin.Context) {
	ownerID, ok := h.ownerID(c)
	if !ok {
		return
	}

	format, ok := transferapp.ParseFormat(c.Param("format"))
	if !ok {
		h.BadRequest(c, "Unsupported export format: "+c.Param("format"))
		return
	}

	req := transferapp.FullExport()
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		h.BindingError(c, err)
		return
	}

	store, _ := strconv.ParseBool(c.Query("store"))
	ctx := c.Request.Context()

	if store {
		stored, err := h.exportService.Store(ctx, ownerID, format, req)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		h.record(c, format, true)
		h.Success(c, stored)
		return
	}

	file, err := h.exportService.Render(ctx, ownerID, format, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.record(c, format, false)

	c.Header("Content-Disposition", "attachment; filename="+file.Filename)
	c.Data(http.StatusOK, file.ContentType, file.Data)
}

func (h *ExportHandler) record(c *gin.Context, format transferapp.Format, stored bool) {
	if h.recorder != nil {
		h.recorder.RecordExport(c.Request.Context(), string(format), stored)
	}
}

package handler

import (
	"errors"
	"io"
	"net/http"

	transferapp "github.com/bizify/backend/internal/application/transfer"
	"github.com/bizify/backend/internal/interfaces/http/dto"
	"github.com/bizify/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// ImportFileField is the multipart field carrying the uploaded document
const ImportFileField = "file"

// ImportHandler previews and applies uploaded exports
type ImportHandler struct {
	BaseHandler
	importService ImportService
}

// NewImportHandler creates a new ImportHandler
func NewImportHandler(importService ImportService) *ImportHandler {
	return &ImportHandler{importService: importService}
}

// Preview parses the upload and reports counts, conflicts and validation
// problems without writing anything
//
//	@ID			previewImport
//	@Summary		Preview an import
//	@Tags			transfer
//	@Accept		multipart/form-data
//	@Produce		json
//	@Param			file	formData	file	true	"Export document (json, csv, xlsx or zip)"
//	@Success		200		{object}	dto.Response{data=transferapp.ImportPreview}
//	@Failure		400		{object}	dto.Response
//	@Security		BearerAuth
//	@Router			/import/preview [post]
func (h *ImportHandler) Preview(c *gin.Context) {
	ownerID, ok := h.ownerID(c)
	if !ok {
		return
	}
	upload, ok := h.readUpload(c)
	if !ok {
		return
	}

	preview, err := h.importService.Preview(c.Request.Context(), ownerID, upload)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, preview)
}

// Import merges the upload into the owner's data. Options are read from
// form fields on top of the defaults. A result with success=false is still
// a 200; its idempotency key is released so the client may retry.
//
//	@ID			importData
//	@Summary		Import data
//	@Tags			transfer
//	@Accept		multipart/form-data
//	@Produce		json
//	@Param			file				formData	file	true	"Export document (json, csv, xlsx or zip)"
//	@Param			update_existing		formData	bool	false	"Overwrite matching records"
//	@Param			skip_duplicates		formData	bool	false	"Skip existing invoices"
//	@Param			Idempotency-Key		header		string	false	"Rejects a replayed import"
//	@Success		200		{object}	dto.Response{data=transferapp.ImportResult}
//	@Failure		400		{object}	dto.Response
//	@Failure		409		{object}	dto.Response
//	@Security		BearerAuth
//	@Router			/import [post]
func (h *ImportHandler) Import(c *gin.Context) {
	ownerID, ok := h.ownerID(c)
	if !ok {
		return
	}
	upload, ok := h.readUpload(c)
	if !ok {
		return
	}

	opts := transferapp.DefaultImportOptions()
	if err := c.ShouldBind(&opts); err != nil {
		h.BindingError(c, err)
		return
	}

	result, err := h.importService.Import(c.Request.Context(), ownerID, upload, opts)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if !result.Success {
		middleware.ReleaseIdempotencyKey(c)
	}

	h.Success(c, result)
}

func (h *ImportHandler) readUpload(c *gin.Context) (transferapp.Upload, bool) {
	header, err := c.FormFile(ImportFileField)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.Error(c, http.StatusRequestEntityTooLarge, dto.ErrCodePayloadTooLarge, "Uploaded file is too large")
			return transferapp.Upload{}, false
		}
		h.BadRequest(c, "No file uploaded")
		return transferapp.Upload{}, false
	}

	f, err := header.Open()
	if err != nil {
		h.HandleError(c, err)
		return transferapp.Upload{}, false
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		h.HandleError(c, err)
		return transferapp.Upload{}, false
	}
	if len(data) == 0 {
		h.BadRequest(c, "Uploaded file is empty")
		return transferapp.Upload{}, false
	}

	return transferapp.Upload{Filename: header.Filename, Data: data}, true
}

package echo

import (
	"errors"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	app "github.com/mohammadpnp/product-import/internal/application/product"
)

const uploadField = "file"

type ImportHandler struct {
	startImport app.StartImport
	getStatus   app.GetImportStatus
}

func NewImportHandler(startImport app.StartImport, getStatus app.GetImportStatus) *ImportHandler {
	return &ImportHandler{startImport: startImport, getStatus: getStatus}
}

// Upload accepts a multipart CSV and answers before any row is parsed.
func (h *ImportHandler) Upload(c echo.Context) error {
	fileHeader, err := c.FormFile(uploadField)
	if err != nil {
		return writeError(c, http.StatusBadRequest, "missing_file", "multipart field \"file\" is required")
	}

	src, err := fileHeader.Open()
	if err != nil {
		return writeError(c, http.StatusBadRequest, "bad_request", "failed to open uploaded file")
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return writeError(c, http.StatusBadRequest, "bad_request", "failed to read uploaded file")
	}

	out, err := h.startImport.Execute(c.Request().Context(), app.StartImportInput{
		Filename: fileHeader.Filename,
		Data:     data,
	})
	if err != nil {
		if errors.Is(err, app.ErrInvalidImportFile) {
			return writeError(c, http.StatusBadRequest, "invalid_file", "file must be a .csv file")
		}
		return writeError(c, http.StatusInternalServerError, "internal_error", "failed to enqueue import job")
	}

	return c.JSON(http.StatusAccepted, apiResponse{Data: out})
}

func (h *ImportHandler) Status(c echo.Context) error {
	out, err := h.getStatus.Execute(c.Request().Context(), app.GetImportStatusInput{
		JobID: c.Param("job_id"),
	})
	if err != nil {
		if errors.Is(err, app.ErrInvalidJobID) {
			return writeError(c, http.StatusBadRequest, "invalid_job_id", "job_id must be a valid UUID")
		}
		return writeError(c, http.StatusInternalServerError, "internal_error", "failed to get import status")
	}

	return c.JSON(http.StatusOK, apiResponse{Data: out})
}

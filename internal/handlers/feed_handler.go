package handlers

import (
	"errors"
	"io"
	"net/http"

	apierrors "github.com/dquesadam/catastro-api/internal/errors"
	"github.com/dquesadam/catastro-api/internal/middleware"
	"github.com/dquesadam/catastro-api/internal/models"
	"github.com/dquesadam/catastro-api/internal/services"
	"github.com/gin-gonic/gin"
)

// FeedHandler handles operational feed submissions.
type FeedHandler struct {
	service        services.IngestService
	maxUploadBytes int64
}

// NewFeedHandler creates a new FeedHandler instance.
func NewFeedHandler(service services.IngestService, maxUploadBytes int64) *FeedHandler {
	return &FeedHandler{
		service:        service,
		maxUploadBytes: maxUploadBytes,
	}
}

// BatchReportResponse is the success payload for a processed feed.
type BatchReportResponse struct {
	Message              string `json:"message"`
	PersonsInserted      int    `json:"persons_inserted"`
	PropertiesInserted   int    `json:"properties_inserted"`
	OwnersAssociated     int    `json:"owners_associated"`
	OwnersDisassociated  int    `json:"owners_disassociated"`
	AccountMovementsRead int    `json:"account_movements_read"`
	ReadingsInserted     int    `json:"readings_inserted"`
}

// Submit handles POST /api/v1/feeds.
// It accepts a multipart upload (field "file"), runs the ingestion pipeline,
// and reports either the six counters or the failure category. A failure
// response never carries partial counts, even though registry mutations
// issued before the fault are not rolled back.
func (h *FeedHandler) Submit(c *gin.Context) {
	log := middleware.GetLogger(c)

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		apierrors.BadRequest(c, "No feed file provided", nil)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		apierrors.InternalServerError(c, "Failed to open uploaded file", err)
		return
	}
	defer file.Close()

	payload, err := io.ReadAll(file)
	if err != nil {
		apierrors.InternalServerError(c, "Failed to read uploaded file", err)
		return
	}

	if log != nil {
		log.Info("Processing feed submission", map[string]interface{}{
			"filename": fileHeader.Filename,
			"bytes":    len(payload),
		})
	}

	report, err := h.service.IngestFeed(c.Request.Context(), fileHeader.Filename, payload)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, mapBatchReport(report))
}

// respondError maps the ingestion error taxonomy to HTTP responses.
func (h *FeedHandler) respondError(c *gin.Context, err error) {
	if errors.Is(err, services.ErrUnsupportedMediaType) {
		apierrors.UnsupportedMediaType(c, err.Error())
		return
	}

	var malformed *services.MalformedFeedError
	if errors.As(err, &malformed) {
		apierrors.MalformedFeed(c, malformed.Error())
		return
	}

	var ingestion *services.IngestionError
	if errors.As(err, &ingestion) {
		apierrors.IngestionFailure(c, ingestion.Error(), err)
		return
	}

	apierrors.InternalServerError(c, "Failed to process feed", err)
}

// mapBatchReport shapes the orchestrator's counters into the response DTO.
func mapBatchReport(report *models.BatchReport) BatchReportResponse {
	return BatchReportResponse{
		Message:              "Feed processed successfully",
		PersonsInserted:      report.PersonsInserted,
		PropertiesInserted:   report.PropertiesInserted,
		OwnersAssociated:     report.OwnersAssociated,
		OwnersDisassociated:  report.OwnersDisassociated,
		AccountMovementsRead: report.AccountMovementsRead,
		ReadingsInserted:     report.ReadingsInserted,
	}
}

package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/sla-compliance-service/internal/api/dto"
	"github.com/spec-kit/sla-compliance-service/internal/domain"
	"github.com/spec-kit/sla-compliance-service/internal/service"
	apperrors "github.com/spec-kit/sla-compliance-service/pkg/util"
)

// ReportsHandler manages upload, summary and export endpoints.
type ReportsHandler struct {
	service *service.ReportService
}

// NewReportsHandler constructs handler.
func NewReportsHandler(reportService *service.ReportService) *ReportsHandler {
	return &ReportsHandler{service: reportService}
}

// ProcessReport POST /reports. Accepts a multipart "file" with the ticket
// export and returns the evaluated batch.
func (h *ReportsHandler) ProcessReport(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return apperrors.NewValidationError("multipart file required", nil)
	}
	file, err := fileHeader.Open()
	if err != nil {
		return apperrors.NewValidationError("unreadable upload", nil)
	}
	defer file.Close()

	result, err := h.service.ProcessUpload(c.UserContext(), fileHeader.Filename, file)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": processResponse(result)})
}

// GetSummary GET /reports/:id/summary.
func (h *ReportsHandler) GetSummary(c *fiber.Ctx) error {
	summaries, err := h.service.GetSummary(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": summaryResponses(summaries)})
}

// GetBatch GET /reports/:id.
func (h *ReportsHandler) GetBatch(c *fiber.Ctx) error {
	batch, err := h.service.GetBatch(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": batchResponse(*batch)})
}

// ExportReport POST /reports/export. Evaluates the uploaded export and
// streams it back with the enriched columns appended.
func (h *ReportsHandler) ExportReport(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return apperrors.NewValidationError("multipart file required", nil)
	}
	file, err := fileHeader.Open()
	if err != nil {
		return apperrors.NewValidationError("unreadable upload", nil)
	}
	defer file.Close()

	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="sla_report.csv"`)
	return h.service.ExportUpload(file, c.Response().BodyWriter())
}

func processResponse(result *service.ProcessResult) dto.ProcessReportResponse {
	evaluations := make([]dto.EvaluationResponse, 0, len(result.Evaluations))
	for _, eval := range result.Evaluations {
		evaluations = append(evaluations, dto.EvaluationResponse{
			TicketID:      eval.TicketID,
			Assignee:      eval.Assignee,
			Resolved:      eval.Resolved,
			ElapsedHours:  eval.ElapsedHours,
			DeadlineHours: eval.DeadlineHours,
			Status:        eval.Status,
		})
	}
	return dto.ProcessReportResponse{
		Batch:       batchResponse(result.Batch),
		Evaluations: evaluations,
		Summaries:   summaryResponses(result.Summaries),
	}
}

func batchResponse(batch domain.ReportBatch) dto.BatchResponse {
	return dto.BatchResponse{
		ID:           batch.ID,
		Source:       batch.Source,
		RowCount:     batch.RowCount,
		DegradedRows: batch.DegradedRows,
		CreatedAt:    batch.CreatedAt,
	}
}

func summaryResponses(summaries []domain.AssigneeSummary) []dto.SummaryResponse {
	out := make([]dto.SummaryResponse, 0, len(summaries))
	for _, summary := range summaries {
		out = append(out, dto.SummaryResponse{
			Assignee:      summary.Assignee,
			Assigned:      summary.Assigned,
			Resolved:      summary.Resolved,
			Breached:      summary.Breached,
			CompliancePct: summary.CompliancePct,
		})
	}
	return out
}

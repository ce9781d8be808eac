package http

import (
	"errors"

	"github.com/NeuralTrust/ComplianceHawk/pkg/app/audit"
	"github.com/NeuralTrust/ComplianceHawk/pkg/common"
	domainAudit "github.com/NeuralTrust/ComplianceHawk/pkg/domain/audit"
	"github.com/NeuralTrust/ComplianceHawk/pkg/handlers/http/request"
	"github.com/NeuralTrust/ComplianceHawk/pkg/handlers/http/response"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// ModelUnavailableDetail is what clients see while the model adapter is disabled.
const ModelUnavailableDetail = "AI Model not initialized. Check server logs/configuration."

type auditContractHandler struct {
	logger  *logrus.Logger
	service audit.Service
}

func NewAuditContractHandler(logger *logrus.Logger, service audit.Service) Handler {
	return &auditContractHandler{
		logger:  logger,
		service: service,
	}
}

// Handle @Summary Audit a contract clause
// @Description Compares a contract clause against a regulation rule and returns a risk verdict.
// @Description An unreadable model answer is reported as status "Error" with risk_score 100.
// @Tags Audit
// @Accept json
// @Produce json
// @Param request body request.AuditContractRequest true "Clause and optional regulation rule"
// @Success 200 {object} response.AuditContractResponse "Compliance verdict"
// @Failure 400 {object} response.ErrorResponse "Invalid request body"
// @Failure 500 {object} response.ErrorResponse "Model call failed"
// @Failure 503 {object} response.ErrorResponse "Model not configured"
// @Router /audit_contract [post]
func (h *auditContractHandler) Handle(c *fiber.Ctx) error {
	var req request.AuditContractRequest
	if err := c.BodyParser(&req); err != nil {
		h.logger.WithError(err).Debug("failed to parse audit request body")
		return c.Status(fiber.StatusBadRequest).JSON(response.ErrorResponse{Detail: "invalid request body"})
	}
	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(response.ErrorResponse{Detail: err.Error()})
	}

	verdict, err := h.service.Audit(c.UserContext(), req.ToDomain())
	if err != nil {
		return h.handleError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(response.NewAuditContractResponse(verdict))
}

func (h *auditContractHandler) handleError(c *fiber.Ctx, err error) error {
	requestID, _ := c.Locals(common.RequestIDContextKey).(string)
	entry := h.logger.WithError(err).WithField("request_id", requestID)

	switch {
	case errors.Is(err, domainAudit.ErrAdapterUnavailable):
		entry.Debug("audit rejected, model adapter unavailable")
		return c.Status(fiber.StatusServiceUnavailable).JSON(response.ErrorResponse{Detail: ModelUnavailableDetail})
	case errors.Is(err, domainAudit.ErrEmptyContract):
		return c.Status(fiber.StatusBadRequest).JSON(response.ErrorResponse{Detail: err.Error()})
	default:
		entry.Error("audit failed")
		return c.Status(fiber.StatusInternalServerError).JSON(response.ErrorResponse{Detail: err.Error()})
	}
}

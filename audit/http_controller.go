package audit

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	auth "github.com/goliatone/go-auth-api"
)

// Controller exposes the audit log over HTTP
type Controller struct {
	service *Service
	logger  auth.Logger
}

func NewController(service *Service, logger auth.Logger) *Controller {
	if logger == nil {
		logger = auth.NewSlogLogger(nil)
	}
	return &Controller{service: service, logger: logger}
}

// RegisterRoutes mounts the controller on r, every route behind protected
func RegisterRoutes(r fiber.Router, controller *Controller, protected fiber.Handler) {
	group := r.Group("/audits", protected)
	group.Get("/", controller.List).Name("audits.list")
	group.Get("/:id", controller.Show).Name("audits.show")
}

var auditErrors = []auth.ErrorStatus{
	{Target: ErrInvalidAuditID, Status: fiber.StatusBadRequest},
	{Target: ErrAuditNotFound, Status: fiber.StatusNotFound},
}

func (h *Controller) List(c *fiber.Ctx) error {
	records, err := h.service.FindAll(c.UserContext())
	if err != nil {
		return auth.SendError(c, h.logger, err, auditErrors...)
	}
	return c.JSON(records)
}

func (h *Controller) Show(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return auth.SendError(c, h.logger, ErrInvalidAuditID, auditErrors...)
	}

	record, err := h.service.FindByID(c.UserContext(), id)
	if err != nil {
		return auth.SendError(c, h.logger, err, auditErrors...)
	}
	if record == nil {
		return auth.SendError(c, h.logger, ErrAuditNotFound, auditErrors...)
	}
	return c.JSON(record)
}

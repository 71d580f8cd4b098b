package company

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	auth "github.com/goliatone/go-auth-api"
)

// Controller exposes companies and company types over HTTP
type Controller struct {
	companies *Service
	types     *TypeService
	logger    auth.Logger
}

func NewController(companies *Service, types *TypeService, logger auth.Logger) *Controller {
	if logger == nil {
		logger = auth.NewSlogLogger(nil)
	}
	return &Controller{companies: companies, types: types, logger: logger}
}

// RegisterRoutes mounts both resources on r, every route behind protected
func RegisterRoutes(r fiber.Router, controller *Controller, protected fiber.Handler) {
	types := r.Group("/company-types", protected)
	types.Post("/", controller.CreateType).Name("company-types.create")
	types.Get("/", controller.ListTypes).Name("company-types.list")
	types.Get("/:id", controller.ShowType).Name("company-types.show")

	companies := r.Group("/companies", protected)
	companies.Post("/", controller.CreateCompany).Name("companies.create")
	companies.Get("/", controller.ListCompanies).Name("companies.list")
	companies.Get("/:id", controller.ShowCompany).Name("companies.show")
}

var typeErrors = []auth.ErrorStatus{
	{Target: ErrCompanyTypeInputValidation, Status: fiber.StatusBadRequest},
	{Target: ErrInvalidCompanyTypeID, Status: fiber.StatusBadRequest},
	{Target: ErrCompanyTypeNotFound, Status: fiber.StatusNotFound},
}

var companyErrors = []auth.ErrorStatus{
	{Target: ErrCompanyInputValidation, Status: fiber.StatusBadRequest},
	{Target: ErrInvalidCompanyID, Status: fiber.StatusBadRequest},
	{Target: ErrCompanyNotFound, Status: fiber.StatusNotFound},
}

func (h *Controller) CreateType(c *fiber.Ctx) error {
	payload := new(CreateTypeMessage)
	if err := c.BodyParser(payload); err != nil {
		return auth.SendError(c, h.logger, ErrCompanyTypeInputValidation, typeErrors...)
	}

	if _, err := h.types.Create(c.UserContext(), *payload); err != nil {
		return auth.SendError(c, h.logger, err, typeErrors...)
	}

	return c.Status(fiber.StatusCreated).JSON(auth.MessageResponse{Message: "CompanyType created"})
}

func (h *Controller) ListTypes(c *fiber.Ctx) error {
	records, err := h.types.FindAll(c.UserContext())
	if err != nil {
		return auth.SendError(c, h.logger, err, typeErrors...)
	}
	return c.JSON(records)
}

func (h *Controller) ShowType(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return auth.SendError(c, h.logger, ErrInvalidCompanyTypeID, typeErrors...)
	}

	record, err := h.types.FindByID(c.UserContext(), id)
	if err != nil {
		return auth.SendError(c, h.logger, err, typeErrors...)
	}
	if record == nil {
		return auth.SendError(c, h.logger, ErrCompanyTypeNotFound, typeErrors...)
	}
	return c.JSON(record)
}

func (h *Controller) CreateCompany(c *fiber.Ctx) error {
	payload := new(CreateCompanyMessage)
	if err := c.BodyParser(payload); err != nil {
		return auth.SendError(c, h.logger, ErrCompanyInputValidation, companyErrors...)
	}

	if _, err := h.companies.Create(c.UserContext(), *payload); err != nil {
		return auth.SendError(c, h.logger, err, companyErrors...)
	}

	return c.Status(fiber.StatusCreated).JSON(auth.MessageResponse{Message: "Company created"})
}

func (h *Controller) ListCompanies(c *fiber.Ctx) error {
	records, err := h.companies.FindAll(c.UserContext())
	if err != nil {
		return auth.SendError(c, h.logger, err, companyErrors...)
	}
	return c.JSON(records)
}

func (h *Controller) ShowCompany(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return auth.SendError(c, h.logger, ErrInvalidCompanyID, companyErrors...)
	}

	record, err := h.companies.FindByID(c.UserContext(), id)
	if err != nil {
		return auth.SendError(c, h.logger, err, companyErrors...)
	}
	if record == nil {
		return auth.SendError(c, h.logger, ErrCompanyNotFound, companyErrors...)
	}
	return c.JSON(record)
}

func parseID(c *fiber.Ctx) (int64, error) {
	return strconv.ParseInt(c.Params("id"), 10, 64)
}

package calculator

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	auth "github.com/goliatone/go-auth-api"
)

// Result is the calculator response body
type Result struct {
	Resultado float64 `json:"resultado"`
}

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

// RegisterRoutes mounts the calculator on r. The route is public.
func RegisterRoutes(r fiber.Router, controller *Controller) {
	r.Get("/calculator", controller.Calculate).Name("calculator.get")
}

var calculatorErrors = []auth.ErrorStatus{
	{Target: ErrNotValidOperators, Status: fiber.StatusBadRequest},
	{Target: ErrDivisionByZero, Status: fiber.StatusBadRequest},
	{Target: ErrUnknownOperation, Status: fiber.StatusBadRequest},
}

func (h *Controller) Calculate(c *fiber.Ctx) error {
	a, errA := strconv.ParseFloat(c.Query("operator1"), 64)
	b, errB := strconv.ParseFloat(c.Query("operator2"), 64)
	if errA != nil || errB != nil {
		return auth.SendError(c, h.logger, ErrNotValidOperators, calculatorErrors...)
	}

	result, err := h.service.Calculate(c.UserContext(), c.Query("operation"), a, b)
	if err != nil {
		return auth.SendError(c, h.logger, err, calculatorErrors...)
	}

	return c.JSON(Result{Resultado: result})
}

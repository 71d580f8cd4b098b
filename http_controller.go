package auth

import (
	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-print"
)

// RegisterAuthRoutes mounts the public auth routes on app. When protected
// is not nil the identity route is mounted behind it.
func RegisterAuthRoutes(app fiber.Router, protected fiber.Handler, opts ...AuthControllerOption) *AuthController {
	controller := NewAuthController(opts...)

	app.Post(controller.Routes.Register, controller.RegistrationCreate).
		Name("register.post")

	app.Post(controller.Routes.Login, controller.LoginPost).
		Name("sign-in.post")

	if protected != nil {
		app.Get(controller.Routes.Me, protected, controller.Me).
			Name("me.get")
	}

	return controller
}

type AuthControllerRoutes struct {
	Login    string
	Register string
	Me       string
}

type AuthController struct {
	Debug      bool
	Logger     Logger
	Auther     Authenticator
	Routes     *AuthControllerRoutes
	ContextKey string
}

type AuthControllerOption func(*AuthController) *AuthController

func WithAuthenticator(a Authenticator) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		c.Auther = a
		return c
	}
}

func WithControllerLogger(l Logger) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		if l != nil {
			c.Logger = l
		}
		return c
	}
}

func WithControllerDebug(debug bool) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		c.Debug = debug
		return c
	}
}

func NewAuthController(opts ...AuthControllerOption) *AuthController {
	c := &AuthController{
		Logger:     defLogger{},
		ContextKey: DefaultContextKey,
		Routes: &AuthControllerRoutes{
			Login:    "/login",
			Register: "/register",
			Me:       "/me",
		},
	}

	for _, opt := range opts {
		c = opt(c)
	}

	if c.Auther == nil {
		panic("Missing Authenticator in auth controller...")
	}

	return c
}

var registrationErrors = []ErrorStatus{
	{Target: ErrUserInputValidation, Status: fiber.StatusBadRequest},
	{Target: ErrUserAlreadyExists, Status: fiber.StatusConflict},
}

var loginErrors = []ErrorStatus{
	{Target: ErrInvalidUsername, Status: fiber.StatusBadRequest},
	{Target: ErrInvalidUsernameOrPassword, Status: fiber.StatusForbidden},
}

func (a *AuthController) RegistrationCreate(ctx *fiber.Ctx) error {
	payload := new(RegisterUserMessage)

	if err := ctx.BodyParser(payload); err != nil {
		a.Logger.Debug("registration body parse error", "error", err)
		return SendError(ctx, a.Logger, ErrUserInputValidation, registrationErrors...)
	}

	if _, err := a.Auther.CreateUser(ctx.UserContext(), *payload); err != nil {
		return SendError(ctx, a.Logger, err, registrationErrors...)
	}

	return ctx.Status(fiber.StatusCreated).JSON(MessageResponse{
		Message: "User registered successfully",
	})
}

func (a *AuthController) LoginPost(ctx *fiber.Ctx) error {
	payload := new(LoginMessage)

	if err := ctx.BodyParser(payload); err != nil {
		a.Logger.Debug("login body parse error", "error", err)
		return SendError(ctx, a.Logger, ErrInvalidUsername, loginErrors...)
	}

	if a.Debug {
		a.Logger.Debug("login attempt", "payload", print.MaybePrettyJSON(map[string]string{"username": payload.Username}))
	}

	token, err := a.Auther.Authenticate(ctx.UserContext(), payload.Username, payload.Password)
	if err != nil {
		return SendError(ctx, a.Logger, err, loginErrors...)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"token": token,
	})
}

// Me returns the identity attached by the bearer middleware
func (a *AuthController) Me(ctx *fiber.Ctx) error {
	identity, ok := IdentityFromFiber(ctx, a.ContextKey)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{Error: "Invalid token"})
	}
	return ctx.JSON(identity)
}

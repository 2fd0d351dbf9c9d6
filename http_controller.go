package adminauth

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/gofiber/fiber/v2"
)

// RegisterAuthRoutes mounts the public authentication endpoints.
func RegisterAuthRoutes(router fiber.Router, controller *AuthController) {
	router.Post("/admin/register", controller.RegisterPost)
	router.Post("/admin/login", controller.LoginPost)
	router.Post("/logout", controller.LogoutPost)
}

// RegisterTeacherRoutes mounts the admin gated teacher endpoints behind the
// provided pipeline stages (token verification, then role gate).
func RegisterTeacherRoutes(router fiber.Router, controller *TeacherController, stages ...fiber.Handler) {
	handlers := append(stages, controller.CreatePost)
	router.Post("/", handlers...)
}

type AuthController struct {
	Logger Logger
	Repo   RepositoryManager
	Auther *RouteAuthenticator
}

type AuthControllerOption func(*AuthController) *AuthController

func NewAuthController(opts ...AuthControllerOption) *AuthController {
	c := &AuthController{
		Logger: defLogger{},
	}

	for _, opt := range opts {
		c = opt(c)
	}

	if c.Repo == nil {
		panic("Missing RepositoryManager in auth controller...")
	}

	if c.Auther == nil {
		panic("Missing RouteAuthenticator in auth controller...")
	}

	return c
}

func WithAuthControllerLogger(logger Logger) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		c.Logger = logger
		return c
	}
}

func WithAuthControllerRepo(repo RepositoryManager) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		c.Repo = repo
		return c
	}
}

func WithAuthControllerAuther(auther *RouteAuthenticator) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		c.Auther = auther
		return c
	}
}

// RegisterPayload is the admin registration body
type RegisterPayload struct {
	Name     string `form:"name" json:"name"`
	Email    string `form:"email" json:"email"`
	Password string `form:"password" json:"password"`
}

// Validate will run validation rules
func (r RegisterPayload) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required),
		validation.Field(&r.Email, validation.Required),
		validation.Field(&r.Password, validation.Required),
	)
}

func (a *AuthController) RegisterPost(ctx *fiber.Ctx) error {
	payload := new(RegisterPayload)

	if err := ctx.BodyParser(payload); err != nil {
		a.Logger.Error("register admin parse payload", "error", err)
		return WriteError(ctx, a.Logger, ErrRegisterFieldsRequired)
	}

	if err := payload.Validate(); err != nil {
		a.Logger.Error("register admin validate payload", "error", err)
		return WriteError(ctx, a.Logger, ErrRegisterFieldsRequired)
	}

	registerAdmin := NewRegisterAdminHandler(a.Repo)
	admin, err := registerAdmin.Execute(ctx.Context(), RegisterAdminMessage{
		Name:     payload.Name,
		Email:    payload.Email,
		Password: payload.Password,
	})
	if err != nil {
		a.Logger.Error("register admin error", "error", err)
		return WriteError(ctx, a.Logger, err)
	}

	token, err := a.Auther.auth.TokenService().Generate(NewIdentityFromAdmin(admin))
	if err != nil {
		a.Logger.Error("register admin token issuance error", "error", err)
		return WriteError(ctx, a.Logger, err)
	}

	a.Auther.SetTokenCookie(ctx, token)

	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Admin registered successfully",
		"admin":   admin.Sanitize().WithoutCreatedAt(),
	})
}

// LoginPayload is the admin login body
type LoginPayload struct {
	Email    string `form:"email" json:"email"`
	Password string `form:"password" json:"password"`
}

// Validate will run validation rules
func (r LoginPayload) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required),
		validation.Field(&r.Password, validation.Required),
	)
}

func (a *AuthController) LoginPost(ctx *fiber.Ctx) error {
	payload := new(LoginPayload)

	if err := ctx.BodyParser(payload); err != nil {
		a.Logger.Error("login admin parse payload", "error", err)
		return WriteError(ctx, a.Logger, ErrLoginFieldsRequired)
	}

	if err := payload.Validate(); err != nil {
		a.Logger.Error("login admin validate payload", "error", err)
		return WriteError(ctx, a.Logger, ErrLoginFieldsRequired)
	}

	if _, err := a.Auther.Login(ctx, payload.Email, payload.Password); err != nil {
		return WriteError(ctx, a.Logger, err)
	}

	admin, err := a.Repo.Admins().GetByEmail(ctx.Context(), payload.Email)
	if err != nil {
		a.Logger.Error("login admin lookup after verification", "error", err)
		return WriteError(ctx, a.Logger, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Logged in successfully",
		"admin":   admin.Sanitize(),
	})
}

// LogoutPost clears the session cookie. It is stateless and requires no
// prior authentication; clearing an absent cookie is still a 200.
func (a *AuthController) LogoutPost(ctx *fiber.Ctx) error {
	a.Auther.Logout(ctx)
	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Logged out",
	})
}

type TeacherController struct {
	Logger Logger
	Repo   RepositoryManager
}

func NewTeacherController(repo RepositoryManager, logger Logger) *TeacherController {
	if logger == nil {
		logger = defLogger{}
	}

	if repo == nil {
		panic("Missing RepositoryManager in teacher controller...")
	}

	return &TeacherController{
		Logger: logger,
		Repo:   repo,
	}
}

// CreateTeacherPayload is the teacher creation body
type CreateTeacherPayload struct {
	TeacherID string         `form:"teacherId" json:"teacherId"`
	Name      string         `form:"name" json:"name"`
	Email     string         `form:"email" json:"email"`
	Password  string         `form:"password" json:"password"`
	Classes   []string       `json:"classes"`
	Schedule  map[string]any `json:"schedule"`
}

// Validate will run validation rules
func (r CreateTeacherPayload) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.TeacherID, validation.Required),
		validation.Field(&r.Name, validation.Required),
		validation.Field(&r.Password, validation.Required),
	)
}

func (t *TeacherController) CreatePost(ctx *fiber.Ctx) error {
	payload := new(CreateTeacherPayload)

	if err := ctx.BodyParser(payload); err != nil {
		t.Logger.Error("create teacher parse payload", "error", err)
		return WriteError(ctx, t.Logger, ErrTeacherFieldsRequired)
	}

	if err := payload.Validate(); err != nil {
		t.Logger.Error("create teacher validate payload", "error", err)
		return WriteError(ctx, t.Logger, ErrTeacherFieldsRequired)
	}

	createTeacher := NewCreateTeacherHandler(t.Repo)
	teacher, err := createTeacher.Execute(ctx.Context(), CreateTeacherMessage{
		TeacherID: payload.TeacherID,
		Name:      payload.Name,
		Email:     payload.Email,
		Password:  payload.Password,
		Classes:   payload.Classes,
		Schedule:  payload.Schedule,
	})
	if err != nil {
		t.Logger.Error("create teacher error", "error", err)
		return WriteError(ctx, t.Logger, err)
	}

	return ctx.Status(fiber.StatusCreated).JSON(teacher.Sanitize())
}

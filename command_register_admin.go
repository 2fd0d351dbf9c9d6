package adminauth

import (
	"context"
	"strings"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-repository-bun"
	"github.com/uptrace/bun"
)

type RegisterAdminMessage struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (e RegisterAdminMessage) Type() string { return "admin.register" }

// RegisterAdminHandler creates the admin account: email is normalized
// before the uniqueness check and the store write, the password is hashed
// and never persisted or logged in clear.
type RegisterAdminHandler struct {
	repo RepositoryManager
}

func NewRegisterAdminHandler(repo RepositoryManager) *RegisterAdminHandler {
	return &RegisterAdminHandler{repo: repo}
}

func (h *RegisterAdminHandler) Execute(ctx context.Context, event RegisterAdminMessage) (*Admin, error) {
	select {
	case <-ctx.Done():
		return nil, goerrors.Wrap(
			ctx.Err(),
			goerrors.CategoryOperation,
			"context cancelled during admin registration",
		)
	default:
		return h.execute(ctx, event)
	}
}

func (h *RegisterAdminHandler) execute(ctx context.Context, event RegisterAdminMessage) (*Admin, error) {
	admin := &Admin{}
	ctx, cancel := context.WithTimeout(ctx, time.Second*10)
	defer cancel()

	email := NormalizeEmail(event.Email)

	err := h.repo.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := h.repo.Admins().GetByEmailTx(ctx, tx, email); err == nil {
			return ErrEmailRegistered
		} else if !repository.IsRecordNotFound(err) {
			return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to check for existing admin")
		}

		hash, err := HashPassword(event.Password)
		if err != nil {
			return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to hash password")
		}

		admin.Name = strings.TrimSpace(event.Name)
		admin.Email = email
		admin.Role = RoleAdmin
		admin.PasswordHash = hash

		created, err := h.repo.Admins().RegisterTx(ctx, tx, admin)
		if err != nil {
			return err
		}

		admin = created
		return nil
	})

	if err != nil {
		var richErr *goerrors.Error
		if goerrors.As(err, &richErr) {
			return nil, richErr
		}
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "admin registration transaction failed")
	}

	return admin, nil
}

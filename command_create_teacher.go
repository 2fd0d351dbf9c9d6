package adminauth

import (
	"context"
	"strings"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/uptrace/bun"
)

type CreateTeacherMessage struct {
	TeacherID string         `json:"teacherId"`
	Name      string         `json:"name"`
	Email     string         `json:"email"`
	Password  string         `json:"password"`
	Classes   []string       `json:"classes"`
	Schedule  map[string]any `json:"schedule"`
}

func (e CreateTeacherMessage) Type() string { return "teacher.create" }

// CreateTeacherHandler provisions a teacher account on behalf of an admin.
// The duplicate check covers teacherId and email in one OR query; the
// unique constraints remain the authoritative guard under races.
type CreateTeacherHandler struct {
	repo RepositoryManager
}

func NewCreateTeacherHandler(repo RepositoryManager) *CreateTeacherHandler {
	return &CreateTeacherHandler{repo: repo}
}

func (h *CreateTeacherHandler) Execute(ctx context.Context, event CreateTeacherMessage) (*Teacher, error) {
	select {
	case <-ctx.Done():
		return nil, goerrors.Wrap(
			ctx.Err(),
			goerrors.CategoryOperation,
			"context cancelled during teacher creation",
		)
	default:
		return h.execute(ctx, event)
	}
}

func (h *CreateTeacherHandler) execute(ctx context.Context, event CreateTeacherMessage) (*Teacher, error) {
	teacher := &Teacher{}
	ctx, cancel := context.WithTimeout(ctx, time.Second*10)
	defer cancel()

	var email *string
	if normalized := NormalizeEmail(event.Email); normalized != "" {
		email = &normalized
	}

	err := h.repo.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		exists, err := h.repo.Teachers().ExistsByTeacherIDOrEmailTx(ctx, tx, event.TeacherID, email)
		if err != nil {
			return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to check for existing teacher")
		}

		if exists {
			return ErrTeacherExists
		}

		hash, err := HashPassword(event.Password)
		if err != nil {
			return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to hash password")
		}

		teacher.TeacherID = strings.TrimSpace(event.TeacherID)
		teacher.Name = strings.TrimSpace(event.Name)
		teacher.Email = email
		teacher.PasswordHash = hash
		teacher.Classes = event.Classes
		teacher.Schedule = event.Schedule

		created, err := h.repo.Teachers().ProvisionTx(ctx, tx, teacher)
		if err != nil {
			return err
		}

		teacher = created
		return nil
	})

	if err != nil {
		var richErr *goerrors.Error
		if goerrors.As(err, &richErr) {
			return nil, richErr
		}
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "teacher creation transaction failed")
	}

	return teacher, nil
}

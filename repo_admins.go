package adminauth

import (
	"context"

	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Admins persists administrative accounts
type Admins interface {
	repository.Repository[*Admin]

	GetByEmail(ctx context.Context, email string) (*Admin, error)
	GetByEmailTx(ctx context.Context, tx bun.IDB, email string) (*Admin, error)

	Register(ctx context.Context, admin *Admin) (*Admin, error)
	RegisterTx(ctx context.Context, tx bun.IDB, admin *Admin) (*Admin, error)
}

type admins struct {
	repository.Repository[*Admin]
	db *bun.DB
}

var (
	_ Admins                        = (*admins)(nil)
	_ repository.Repository[*Admin] = (*admins)(nil)
)

func NewAdminsRepository(db *bun.DB) Admins {
	repo := repository.NewRepository[*Admin](db, repository.ModelHandlers[*Admin]{
		NewRecord: func() *Admin { return &Admin{} },
		GetID: func(a *Admin) uuid.UUID {
			if a == nil {
				return uuid.Nil
			}
			return a.ID
		},
		SetID: func(a *Admin, id uuid.UUID) {
			if a != nil {
				a.ID = id
			}
		},
		GetIdentifier: func() string {
			return "email"
		},
	})

	return &admins{
		Repository: repo,
		db:         db,
	}
}

func (a *admins) GetByEmail(ctx context.Context, email string) (*Admin, error) {
	return a.GetByEmailTx(ctx, a.db, email)
}

func (a *admins) GetByEmailTx(ctx context.Context, tx bun.IDB, email string) (*Admin, error) {
	record := &Admin{}
	err := tx.NewSelect().
		Model(record).
		Where("?TableAlias.email = ?", NormalizeEmail(email)).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, repository.NewRecordNotFound().
				WithMetadata(map[string]any{
					"email": NormalizeEmail(email),
				})
		}
		return nil, err
	}

	return record, nil
}

// Register inserts a new admin. The email unique constraint closes the
// window between the caller's existence check and the insert; a violation
// is reported as the same conflict error as the proactive check.
func (a *admins) Register(ctx context.Context, admin *Admin) (*Admin, error) {
	return a.RegisterTx(ctx, a.db, admin)
}

func (a *admins) RegisterTx(ctx context.Context, tx bun.IDB, admin *Admin) (*Admin, error) {
	prepareAdminDefaults(admin)

	record, err := a.Repository.CreateTx(ctx, tx, admin)
	if err != nil {
		if IsUniqueViolation(err) {
			return nil, ErrEmailRegistered
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to create admin account")
	}

	return record, nil
}

func prepareAdminDefaults(admin *Admin) {
	if admin.ID == uuid.Nil {
		admin.ID = uuid.New()
	}
	if admin.Role == "" {
		admin.Role = RoleAdmin
	}
	admin.Email = NormalizeEmail(admin.Email)
}

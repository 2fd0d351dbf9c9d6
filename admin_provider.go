package adminauth

import (
	"context"
	"strings"

	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-repository-bun"
)

// AdminGetter is the store we use to retrieve admin accounts
type AdminGetter interface {
	GetByEmail(ctx context.Context, email string) (*Admin, error)
}

// AdminProvider resolves and verifies admin identities
type AdminProvider struct {
	store  AdminGetter
	logger Logger
}

// NewAdminProvider will create a new AdminProvider
func NewAdminProvider(store AdminGetter) *AdminProvider {
	return &AdminProvider{
		store:  store,
		logger: defLogger{},
	}
}

func (p *AdminProvider) WithLogger(l Logger) *AdminProvider {
	p.logger = l
	return p
}

// VerifyIdentity will find the admin and compare the password hash. An
// unknown email and a wrong password both return ErrInvalidCredentials so
// callers cannot distinguish the two cases.
func (p *AdminProvider) VerifyIdentity(ctx context.Context, identifier, password string) (Identity, error) {
	admin, err := p.store.GetByEmail(ctx, NormalizeEmail(identifier))
	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, ErrInvalidCredentials
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to retrieve admin during verification")
	}

	if err := ComparePasswordAndHash(password, admin.PasswordHash); err != nil {
		return nil, ErrInvalidCredentials
	}

	return NewIdentityFromAdmin(admin), nil
}

// FindIdentityByIdentifier resolves an admin identity without verifying a password.
func (p *AdminProvider) FindIdentityByIdentifier(ctx context.Context, identifier string) (Identity, error) {
	admin, err := p.store.GetByEmail(ctx, NormalizeEmail(identifier))
	if err != nil {
		return nil, err
	}
	return NewIdentityFromAdmin(admin), nil
}

// NormalizeEmail trims surrounding whitespace and lowercases the address.
// Applied before every uniqueness check, lookup, and store write.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

package adminauth

import (
	"context"
	"database/sql"
	"errors"
	"log"

	"github.com/goliatone/go-repository-bun"
	"github.com/uptrace/bun"
)

// RepositoryManager exposes all repositories
type RepositoryManager interface {
	repository.Validator
	repository.TransactionManager
	Admins() Admins
	Teachers() Teachers
}

type mngr struct {
	db       *bun.DB
	admins   Admins
	teachers Teachers
}

func NewRepositoryManager(db *bun.DB) RepositoryManager {
	return &mngr{
		db:       db,
		admins:   NewAdminsRepository(db),
		teachers: NewTeachersRepository(db),
	}
}

func (m mngr) Validate() error {
	if m.admins == nil {
		return errors.New("repository admins should be initialized")
	}

	if m.teachers == nil {
		return errors.New("repository teachers should be initialized")
	}

	return nil
}

func (m mngr) MustValidate() {
	if err := m.Validate(); err != nil {
		log.Panic(err)
	}
}

func (m mngr) RunInTx(ctx context.Context, opts *sql.TxOptions, f func(ctx context.Context, tx bun.Tx) error) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return m.db.RunInTx(ctx, opts, f)
	}
}

func (m mngr) Admins() Admins {
	return m.admins
}

func (m mngr) Teachers() Teachers {
	return m.teachers
}

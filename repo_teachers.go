package adminauth

import (
	"context"

	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Teachers persists teacher accounts
type Teachers interface {
	repository.Repository[*Teacher]

	GetByTeacherID(ctx context.Context, teacherID string) (*Teacher, error)
	ExistsByTeacherIDOrEmail(ctx context.Context, teacherID string, email *string) (bool, error)
	ExistsByTeacherIDOrEmailTx(ctx context.Context, tx bun.IDB, teacherID string, email *string) (bool, error)

	Provision(ctx context.Context, teacher *Teacher) (*Teacher, error)
	ProvisionTx(ctx context.Context, tx bun.IDB, teacher *Teacher) (*Teacher, error)
}

type teachers struct {
	repository.Repository[*Teacher]
	db *bun.DB
}

var (
	_ Teachers                        = (*teachers)(nil)
	_ repository.Repository[*Teacher] = (*teachers)(nil)
)

func NewTeachersRepository(db *bun.DB) Teachers {
	repo := repository.NewRepository[*Teacher](db, repository.ModelHandlers[*Teacher]{
		NewRecord: func() *Teacher { return &Teacher{} },
		GetID: func(t *Teacher) uuid.UUID {
			if t == nil {
				return uuid.Nil
			}
			return t.ID
		},
		SetID: func(t *Teacher, id uuid.UUID) {
			if t != nil {
				t.ID = id
			}
		},
		GetIdentifier: func() string {
			return "teacher_id"
		},
	})

	return &teachers{
		Repository: repo,
		db:         db,
	}
}

func (t *teachers) GetByTeacherID(ctx context.Context, teacherID string) (*Teacher, error) {
	record := &Teacher{}
	err := t.db.NewSelect().
		Model(record).
		Where("?TableAlias.teacher_id = ?", teacherID).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, repository.NewRecordNotFound().
				WithMetadata(map[string]any{
					"teacher_id": teacherID,
				})
		}
		return nil, err
	}

	return record, nil
}

// ExistsByTeacherIDOrEmail runs the duplicate check as a single OR query
// so a match on either identifying field is reported.
func (t *teachers) ExistsByTeacherIDOrEmail(ctx context.Context, teacherID string, email *string) (bool, error) {
	return t.ExistsByTeacherIDOrEmailTx(ctx, t.db, teacherID, email)
}

func (t *teachers) ExistsByTeacherIDOrEmailTx(ctx context.Context, tx bun.IDB, teacherID string, email *string) (bool, error) {
	q := tx.NewSelect().Model((*Teacher)(nil))

	if email != nil {
		q = q.Where("?TableAlias.teacher_id = ? OR ?TableAlias.email = ?", teacherID, *email)
	} else {
		q = q.Where("?TableAlias.teacher_id = ?", teacherID)
	}

	return q.Exists(ctx)
}

// Provision inserts a new teacher record. Unique constraint violations on
// teacher_id or email are reported as the same conflict error as the
// proactive existence check.
func (t *teachers) Provision(ctx context.Context, teacher *Teacher) (*Teacher, error) {
	return t.ProvisionTx(ctx, t.db, teacher)
}

func (t *teachers) ProvisionTx(ctx context.Context, tx bun.IDB, teacher *Teacher) (*Teacher, error) {
	prepareTeacherDefaults(teacher)

	record, err := t.Repository.CreateTx(ctx, tx, teacher)
	if err != nil {
		if IsUniqueViolation(err) {
			return nil, ErrTeacherExists
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to create teacher account")
	}

	return record, nil
}

func prepareTeacherDefaults(teacher *Teacher) {
	if teacher.ID == uuid.Nil {
		teacher.ID = uuid.New()
	}
	if teacher.Email != nil {
		normalized := NormalizeEmail(*teacher.Email)
		if normalized == "" {
			teacher.Email = nil
		} else {
			teacher.Email = &normalized
		}
	}
	if teacher.Classes == nil {
		teacher.Classes = []string{}
	}
	if teacher.Schedule == nil {
		teacher.Schedule = map[string]any{}
	}
}

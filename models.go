package adminauth

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Admin is the administrative account model. Email is stored normalized
// (trimmed, lowercase) and is the login identifier.
type Admin struct {
	bun.BaseModel `bun:"table:admins,alias:adm"`
	ID            uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	Name          string     `bun:"name,notnull" json:"name,omitempty"`
	Email         string     `bun:"email,notnull,unique" json:"email,omitempty"`
	Role          UserRole   `bun:"role,notnull" json:"role,omitempty"`
	PasswordHash  string     `bun:"password_hash,notnull" json:"password_hash,omitempty"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt     *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
}

// AdminView is the response projection of an Admin with secret fields removed.
type AdminView struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
}

// Sanitize returns a view of the admin safe to return to clients.
func (a *Admin) Sanitize() AdminView {
	return AdminView{
		ID:        a.ID,
		Name:      a.Name,
		Email:     a.Email,
		CreatedAt: a.CreatedAt,
	}
}

// WithoutCreatedAt drops the creation timestamp from the view.
func (v AdminView) WithoutCreatedAt() AdminView {
	v.CreatedAt = nil
	return v
}

// Teacher is a teacher account, created only by an authenticated admin.
// Email is optional but unique when present.
type Teacher struct {
	bun.BaseModel `bun:"table:teachers,alias:tch"`
	ID            uuid.UUID      `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	TeacherID     string         `bun:"teacher_id,notnull,unique" json:"teacher_id,omitempty"`
	Name          string         `bun:"name,notnull" json:"name,omitempty"`
	Email         *string        `bun:"email,unique,nullzero" json:"email,omitempty"`
	PasswordHash  string         `bun:"password_hash,notnull" json:"password_hash,omitempty"`
	Classes       []string       `bun:"classes" json:"classes,omitempty"`
	Schedule      map[string]any `bun:"schedule" json:"schedule,omitempty"`
	CreatedAt     *time.Time     `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
}

// TeacherView is the response projection of a Teacher with secret fields removed.
type TeacherView struct {
	ID        uuid.UUID      `json:"id"`
	TeacherID string         `json:"teacherId"`
	Name      string         `json:"name"`
	Email     *string        `json:"email,omitempty"`
	Classes   []string       `json:"classes"`
	Schedule  map[string]any `json:"schedule"`
	CreatedAt *time.Time     `json:"createdAt,omitempty"`
}

// Sanitize returns a view of the teacher safe to return to clients.
func (t *Teacher) Sanitize() TeacherView {
	classes := t.Classes
	if classes == nil {
		classes = []string{}
	}
	schedule := t.Schedule
	if schedule == nil {
		schedule = map[string]any{}
	}
	return TeacherView{
		ID:        t.ID,
		TeacherID: t.TeacherID,
		Name:      t.Name,
		Email:     t.Email,
		Classes:   classes,
		Schedule:  schedule,
		CreatedAt: t.CreatedAt,
	}
}

package adminauth

import (
	"context"

	"github.com/uptrace/bun"
)

// CreateSchema creates the credential store tables, including the unique
// constraints the registration and provisioning flows rely on.
func CreateSchema(ctx context.Context, db *bun.DB) error {
	models := []any{
		(*Admin)(nil),
		(*Teacher)(nil),
	}

	for _, model := range models {
		if _, err := db.NewCreateTable().
			Model(model).
			IfNotExists().
			Exec(ctx); err != nil {
			return err
		}
	}

	return nil
}

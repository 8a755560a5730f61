package seed

import (
	"context"
	"fmt"

	"mtys/internal/store"
	"mtys/pkg/types"
)

type seedUser struct {
	Username string
	Password string
	Role     types.Role
}

var seedUsers = []seedUser{
	{Username: "admin", Password: "admin123!", Role: types.RoleAdmin},
	{Username: "operator1", Password: "operator123!", Role: types.RoleUser},
	{Username: "izleyici", Password: "izleyici123!", Role: types.RoleViewer},
}

// SeedUsers creates the default accounts, skipping any username that already
// exists. Passwords here are for local development only.
func SeedUsers(ctx context.Context, userRepo *store.UserRepository) error {
	existing, err := userRepo.All(ctx)
	if err != nil {
		return fmt.Errorf("failed to list users: %w", err)
	}

	taken := make(map[string]bool, len(existing))
	for _, user := range existing {
		taken[user.Username] = true
	}

	seeded := 0
	for _, su := range seedUsers {
		if taken[su.Username] {
			continue
		}

		if _, err := userRepo.Create(ctx, su.Username, su.Password, su.Role); err != nil {
			return fmt.Errorf("failed to create user %s: %w", su.Username, err)
		}
		seeded++
	}

	fmt.Printf("Users seeded: %d created\n", seeded)
	return nil
}

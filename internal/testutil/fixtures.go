package testutil

import (
	"database/sql"
	"testing"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/Aryan-Railtown/bill-splitter/internal/domain"
)

func SeedUser(t *testing.T, db *sql.DB, email, name string) *domain.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}

	user := &domain.User{
		ID:           uuid.New(),
		Email:        email,
		Name:         name,
		PasswordHash: string(hash),
	}
	_, err = db.Exec(
		`INSERT INTO users (id, email, name, password_hash, created_at)
		VALUES ($1, $2, $3, $4, now())`,
		user.ID, user.Email, user.Name, user.PasswordHash,
	)
	if err != nil {
		t.Fatalf("seed user %s: %v", email, err)
	}
	return user
}

// SeedGroup creates a group owned by the first user and adds every listed
// user as a member.
func SeedGroup(t *testing.T, db *sql.DB, name string, members ...*domain.User) *domain.Group {
	t.Helper()

	if len(members) == 0 {
		t.Fatal("seed group: at least one member required")
	}

	group := &domain.Group{
		ID:        uuid.New(),
		Name:      name,
		CreatedBy: members[0].ID,
	}
	_, err := db.Exec(
		`INSERT INTO groups (id, name, created_by, created_at) VALUES ($1, $2, $3, now())`,
		group.ID, group.Name, group.CreatedBy,
	)
	if err != nil {
		t.Fatalf("seed group %s: %v", name, err)
	}

	for _, m := range members {
		_, err := db.Exec(
			`INSERT INTO group_members (group_id, user_id, joined_at) VALUES ($1, $2, now())`,
			group.ID, m.ID,
		)
		if err != nil {
			t.Fatalf("seed membership for %s: %v", m.Email, err)
		}
	}
	return group
}

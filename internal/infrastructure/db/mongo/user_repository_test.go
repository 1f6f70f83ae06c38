package mongo

import (
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ai-quiz-app/quiz-api/internal/core/domain"
)

func TestMongoUserToDomain(t *testing.T) {
	mu := mongoUser{
		ID:           primitive.NewObjectID(),
		Username:     "alice",
		PasswordHash: "$2a$12$hash",
		Role:         "MANAGER",
		TokenVersion: 3,
		CreatedAt:    time.Now().UTC(),
	}

	user, err := mu.toDomain()
	if err != nil {
		t.Fatalf("toDomain returned error: %v", err)
	}
	if user.Role != domain.RoleManager {
		t.Fatalf("expected MANAGER, got %q", user.Role)
	}
	if user.ID != mu.ID.Hex() {
		t.Fatalf("expected hex ID %q, got %q", mu.ID.Hex(), user.ID)
	}
	if user.TokenVersion != 3 {
		t.Fatalf("expected token version 3, got %d", user.TokenVersion)
	}
}

func TestMongoUserToDomain_RejectsUnknownRole(t *testing.T) {
	for _, bad := range []string{"", "SUPERADMIN", "manager", "ORDINARY "} {
		mu := mongoUser{ID: primitive.NewObjectID(), Username: "eve", Role: bad}

		user, err := mu.toDomain()
		if !errors.Is(err, domain.ErrInvalidRole) {
			t.Fatalf("role %q: expected ErrInvalidRole, got %v", bad, err)
		}
		if user != nil {
			t.Fatalf("role %q: corrupt record must not produce a user: %+v", bad, user)
		}
	}
}

package util

import (
	"testing"
	"time"

	"educonnect_backend/internal/model"
)

func TestJWTRoundTrip(t *testing.T) {
	user := &model.User{
		BaseModel: model.BaseModel{ID: 42},
		Email:     "teacher@example.com",
		Role:      model.Teacher,
	}

	token, err := GenerateJWT(user, "test-secret", time.Hour)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	claims, err := ParseJWT(token, "test-secret")
	if err != nil {
		t.Fatalf("ParseJWT: %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("UserID = %d, want 42", claims.UserID)
	}
	if claims.Role != model.Teacher {
		t.Errorf("Role = %s, want teacher", claims.Role)
	}
	if claims.Email != "teacher@example.com" {
		t.Errorf("Email = %s", claims.Email)
	}
}

func TestJWTWrongSecret(t *testing.T) {
	user := &model.User{BaseModel: model.BaseModel{ID: 1}, Role: model.Student}

	token, err := GenerateJWT(user, "right-secret", time.Hour)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	if _, err := ParseJWT(token, "wrong-secret"); err == nil {
		t.Fatal("ParseJWT accepted a token signed with another secret")
	}
}

func TestJWTExpired(t *testing.T) {
	user := &model.User{BaseModel: model.BaseModel{ID: 1}, Role: model.Student}

	token, err := GenerateJWT(user, "secret", -time.Minute)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	if _, err := ParseJWT(token, "secret"); err == nil {
		t.Fatal("ParseJWT accepted an expired token")
	}
}

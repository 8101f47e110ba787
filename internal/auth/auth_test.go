package auth

import (
	"context"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/immunitrack/vaccine-tracker-api/internal/config"
	"github.com/immunitrack/vaccine-tracker-api/internal/database"
)

func setupAuthHandler(t *testing.T) (*AuthHandler, *gorm.DB) {
	t.Helper()
	db, err := database.Open(sqlite.Open(":memory:"))
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	cfg := &config.Config{JWTSecret: "test-secret"}
	return NewAuthHandler(cfg, db), db
}

func errStatus(t *testing.T, err error) int {
	t.Helper()
	if err == nil {
		t.Fatal("expected an error, got nil")
	}
	se, ok := err.(huma.StatusError)
	if !ok {
		t.Fatalf("expected a status error, got %T: %v", err, err)
	}
	return se.GetStatus()
}

func TestHandleRegister(t *testing.T) {
	handler, _ := setupAuthHandler(t)
	ctx := context.Background()

	input := RegisterInput{}
	input.Body.Username = "admin"
	input.Body.Email = "admin@vaccinetracker.com"
	input.Body.Password = "admin123"

	resp, err := handler.HandleRegister(ctx, &input)
	if err != nil {
		t.Fatalf("HandleRegister returned error: %v", err)
	}
	if resp.Body.Data.Token == "" {
		t.Error("expected a token")
	}
	if resp.Body.Data.Role != "staff" {
		t.Errorf("expected default role staff, got %q", resp.Body.Data.Role)
	}

	t.Run("duplicate email", func(t *testing.T) {
		dup := RegisterInput{}
		dup.Body.Username = "other"
		dup.Body.Email = "admin@vaccinetracker.com"
		dup.Body.Password = "password"

		_, err := handler.HandleRegister(ctx, &dup)
		if got := errStatus(t, err); got != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", got)
		}
	})

	t.Run("duplicate username", func(t *testing.T) {
		dup := RegisterInput{}
		dup.Body.Username = "admin"
		dup.Body.Email = "other@vaccinetracker.com"
		dup.Body.Password = "password"

		_, err := handler.HandleRegister(ctx, &dup)
		if got := errStatus(t, err); got != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", got)
		}
	})
}

func TestHandleLogin(t *testing.T) {
	handler, _ := setupAuthHandler(t)
	ctx := context.Background()

	register := RegisterInput{}
	register.Body.Username = "staff1"
	register.Body.Email = "staff1@example.com"
	register.Body.Password = "secret123"
	if _, err := handler.HandleRegister(ctx, &register); err != nil {
		t.Fatalf("HandleRegister returned error: %v", err)
	}

	t.Run("valid", func(t *testing.T) {
		input := LoginInput{}
		input.Body.Email = "staff1@example.com"
		input.Body.Password = "secret123"

		resp, err := handler.HandleLogin(ctx, &input)
		if err != nil {
			t.Fatalf("HandleLogin returned error: %v", err)
		}
		if resp.Body.Data.Token == "" {
			t.Error("expected a token")
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		input := LoginInput{}
		input.Body.Email = "staff1@example.com"
		input.Body.Password = "wrong"

		_, err := handler.HandleLogin(ctx, &input)
		if got := errStatus(t, err); got != http.StatusUnauthorized {
			t.Errorf("expected 401, got %d", got)
		}
	})

	t.Run("unknown email", func(t *testing.T) {
		input := LoginInput{}
		input.Body.Email = "nobody@example.com"
		input.Body.Password = "secret123"

		_, err := handler.HandleLogin(ctx, &input)
		if got := errStatus(t, err); got != http.StatusUnauthorized {
			t.Errorf("expected 401, got %d", got)
		}
		// The same message as a wrong password; nothing leaks about
		// whether the email is registered.
		if err.Error() != "Invalid credentials" {
			t.Errorf("unexpected message: %q", err.Error())
		}
	})
}

func TestHandleMe(t *testing.T) {
	handler, _ := setupAuthHandler(t)
	ctx := context.Background()

	register := RegisterInput{}
	register.Body.Username = "me"
	register.Body.Email = "me@example.com"
	register.Body.Password = "secret123"
	resp, err := handler.HandleRegister(ctx, &register)
	if err != nil {
		t.Fatalf("HandleRegister returned error: %v", err)
	}

	meCtx := context.WithValue(ctx, UserIDKey, resp.Body.Data.ID)
	me, err := handler.HandleMe(meCtx, &struct{}{})
	if err != nil {
		t.Fatalf("HandleMe returned error: %v", err)
	}
	if me.Body.Data.Email != "me@example.com" {
		t.Errorf("unexpected email: %q", me.Body.Data.Email)
	}
	if me.Body.Data.PasswordHash == "" {
		// The hash is stored but must never serialize.
		t.Error("expected the loaded user to carry its hash in memory")
	}

	t.Run("missing user id", func(t *testing.T) {
		_, err := handler.HandleMe(ctx, &struct{}{})
		if got := errStatus(t, err); got != http.StatusUnauthorized {
			t.Errorf("expected 401, got %d", got)
		}
	})
}

func TestTokenRoundTrip(t *testing.T) {
	handler, _ := setupAuthHandler(t)

	token, err := handler.GenerateToken(42)
	if err != nil {
		t.Fatalf("GenerateToken returned error: %v", err)
	}

	userID, err := handler.ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken returned error: %v", err)
	}
	if userID != 42 {
		t.Errorf("expected user id 42, got %d", userID)
	}

	t.Run("wrong secret", func(t *testing.T) {
		other := NewAuthHandler(&config.Config{JWTSecret: "other-secret"}, nil)
		if _, err := other.ParseToken(token); err == nil {
			t.Error("expected a token signed with another secret to fail")
		}
	})

	t.Run("garbage", func(t *testing.T) {
		if _, err := handler.ParseToken("not.a.token"); err == nil {
			t.Error("expected garbage token to fail")
		}
	})
}

package auth

import (
	"errors"
	"testing"
	"time"
)

func TestManager(t *testing.T) {
	m := NewManager("test-secret")

	t.Run("Round Trip", func(t *testing.T) {
		tok, err := m.Generate("dev@example.com", PurposeManage)
		if err != nil {
			t.Fatalf("Generate: %v", err)
		}
		email, err := m.Verify(tok, PurposeManage)
		if err != nil {
			t.Fatalf("Verify: %v", err)
		}
		if email != "dev@example.com" {
			t.Errorf("email = %q", email)
		}
	})

	t.Run("Purpose Mismatch", func(t *testing.T) {
		tok, err := m.Generate("dev@example.com", PurposeSubscribe)
		if err != nil {
			t.Fatalf("Generate: %v", err)
		}
		if _, err := m.Verify(tok, PurposeUnsubscribe); !errors.Is(err, ErrWrongPurpose) {
			t.Errorf("err = %v, want ErrWrongPurpose", err)
		}
	})

	t.Run("Wrong Secret", func(t *testing.T) {
		tok, err := m.Generate("dev@example.com", PurposeManage)
		if err != nil {
			t.Fatalf("Generate: %v", err)
		}
		other := NewManager("different-secret")
		if _, err := other.Verify(tok, PurposeManage); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("err = %v, want ErrInvalidToken", err)
		}
	})

	t.Run("Garbage Token", func(t *testing.T) {
		if _, err := m.Verify("not-a-token", PurposeManage); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("err = %v, want ErrInvalidToken", err)
		}
	})

	t.Run("Expired Token", func(t *testing.T) {
		past := NewManager("test-secret")
		past.now = func() time.Time { return time.Now().Add(-31 * 24 * time.Hour) }
		tok, err := past.Generate("dev@example.com", PurposeManage)
		if err != nil {
			t.Fatalf("Generate: %v", err)
		}
		if _, err := m.Verify(tok, PurposeManage); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("err = %v, want ErrInvalidToken", err)
		}
	})
}

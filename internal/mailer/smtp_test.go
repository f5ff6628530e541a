package mailer

import (
	"context"
	"reflect"
	"strings"
	"testing"
)

type nopLogger struct{}

func (nopLogger) Debug(ctx context.Context, args ...any)                  {}
func (nopLogger) Debugf(ctx context.Context, format string, args ...any)  {}
func (nopLogger) Info(ctx context.Context, args ...any)                   {}
func (nopLogger) Infof(ctx context.Context, format string, args ...any)   {}
func (nopLogger) Warn(ctx context.Context, args ...any)                   {}
func (nopLogger) Warnf(ctx context.Context, format string, args ...any)   {}
func (nopLogger) Error(ctx context.Context, args ...any)                  {}
func (nopLogger) Errorf(ctx context.Context, format string, args ...any)  {}
func (nopLogger) Fatal(ctx context.Context, args ...any)                  {}
func (nopLogger) Fatalf(ctx context.Context, format string, args ...any)  {}
func (nopLogger) DPanic(ctx context.Context, args ...any)                 {}
func (nopLogger) DPanicf(ctx context.Context, format string, args ...any) {}
func (nopLogger) Panic(ctx context.Context, args ...any)                  {}
func (nopLogger) Panicf(ctx context.Context, format string, args ...any)  {}

func TestDryRunWithoutCredentials(t *testing.T) {
	m := New(Config{Host: "smtp.example.com", Port: 587}, nopLogger{})
	if !m.DryRun() {
		t.Fatal("mailer without credentials must be in dry-run mode")
	}
	if err := m.Send(context.Background(), "dev@example.com", "subject", "<p>body</p>"); err != nil {
		t.Errorf("dry-run send should not error: %v", err)
	}
}

func TestSenderDefaultsToUser(t *testing.T) {
	m := New(Config{User: "bot@example.com", Password: "secret"}, nopLogger{}).(*implMailer)
	if m.cfg.SenderEmail != "bot@example.com" {
		t.Errorf("SenderEmail = %q, want user fallback", m.cfg.SenderEmail)
	}
}

func TestBuildMessage(t *testing.T) {
	msg := buildMessage("bot@example.com", "dev@example.com", "My Bulletin", "<p>hi</p>")
	for _, want := range []string{
		"From: bot@example.com\r\n",
		"To: dev@example.com\r\n",
		"Subject: My Bulletin\r\n",
		"Content-Type: text/html",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("message missing %q", want)
		}
	}
	if !strings.HasSuffix(msg, "<p>hi</p>\r\n") {
		t.Error("body must terminate the message")
	}
}

func TestSplitRecipients(t *testing.T) {
	got := SplitRecipients(" a@x.com, b@y.com ,, c@z.com ")
	want := []string{"a@x.com", "b@y.com", "c@z.com"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SplitRecipients = %v, want %v", got, want)
	}
	if got := SplitRecipients(""); len(got) != 0 {
		t.Errorf("empty input should yield no recipients, got %v", got)
	}
}

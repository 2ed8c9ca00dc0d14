package services

import (
	"errors"
	"net/smtp"
	"strings"
	"testing"

	"github.com/google/uuid"

	"portfolio-site/internal/models"
)

func TestEmailService_DevModeDoesNotSend(t *testing.T) {
	svc := NewEmailService("", "587", "", "", "noreply@example.com", "")
	svc.send = func(string, smtp.Auth, string, []string, []byte) error {
		t.Fatalf("dev mode must not send mail")
		return nil
	}

	err := svc.SendContactNotification(&models.ContactMessage{ID: uuid.New(), Name: "Ann", Email: "ann@example.com", Message: "hi"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestEmailService_SendContactNotification(t *testing.T) {
	svc := NewEmailService("smtp.example.com", "587", "user", "pass", "noreply@example.com", "owner@example.com")

	var gotAddr string
	var gotTo []string
	var gotMsg string
	svc.send = func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr, gotTo, gotMsg = addr, to, string(msg)
		return nil
	}

	err := svc.SendContactNotification(&models.ContactMessage{
		ID:      uuid.New(),
		Name:    "Eve\r\nBcc: victim@example.com",
		Email:   "eve@example.com",
		Message: "<script>alert(1)</script>",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotAddr != "smtp.example.com:587" {
		t.Fatalf("expected smtp.example.com:587, got %q", gotAddr)
	}
	if len(gotTo) != 1 || gotTo[0] != "owner@example.com" {
		t.Fatalf("expected owner recipient, got %v", gotTo)
	}
	headers, _, _ := strings.Cut(gotMsg, "\r\n\r\n")
	if strings.Contains(headers, "\r\nBcc:") {
		t.Fatalf("visitor input injected a header: %q", headers)
	}
	if strings.Contains(gotMsg, "<script>") {
		t.Fatalf("message body was not escaped")
	}
}

func TestEmailService_SendFailure(t *testing.T) {
	svc := NewEmailService("smtp.example.com", "587", "user", "pass", "noreply@example.com", "owner@example.com")
	svc.send = func(string, smtp.Auth, string, []string, []byte) error {
		return errors.New("connection refused")
	}

	err := svc.SendContactNotification(&models.ContactMessage{ID: uuid.New(), Name: "Ann", Email: "ann@example.com", Message: "hi"})
	if err == nil || !strings.Contains(err.Error(), "connection refused") {
		t.Fatalf("expected wrapped send error, got %v", err)
	}
}

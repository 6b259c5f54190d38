package services

import (
	"testing"

	"github.com/inspire-dataserver/data-share-hub/internal/config"
	"github.com/stretchr/testify/assert"
)

func TestEmailService_IsConfigured_True(t *testing.T) {
	cfg := config.SMTPConfig{
		Host:     "smtp.example.com",
		Port:     "587",
		Username: "user@example.com",
		Password: "password",
		From:     "noreply@example.com",
	}
	svc := NewEmailService(cfg)

	assert.True(t, svc.IsConfigured())
}

func TestEmailService_IsConfigured_MissingHost(t *testing.T) {
	cfg := config.SMTPConfig{
		Port:     "587",
		Username: "user@example.com",
		Password: "password",
		From:     "noreply@example.com",
	}
	svc := NewEmailService(cfg)

	assert.False(t, svc.IsConfigured())
}

func TestEmailService_IsConfigured_MissingFrom(t *testing.T) {
	cfg := config.SMTPConfig{
		Host:     "smtp.example.com",
		Port:     "587",
		Username: "user@example.com",
		Password: "password",
	}
	svc := NewEmailService(cfg)

	assert.False(t, svc.IsConfigured())
}

func TestEmailService_Send_Unconfigured(t *testing.T) {
	svc := NewEmailService(config.SMTPConfig{})

	// An unconfigured service silently drops mail instead of failing.
	assert.NoError(t, svc.Send("to@example.com", "subject", "body"))
}

func TestEmailService_SendSaleNotice_Unconfigured(t *testing.T) {
	svc := NewEmailService(config.SMTPConfig{})

	assert.NoError(t, svc.SendSaleNotice("seller@example.com", "Housing Prices 2024", 49.00))
}

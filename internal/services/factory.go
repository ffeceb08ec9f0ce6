package services

import (
	"macdee-orders/internal/config"
	"macdee-orders/internal/interfaces"
	"macdee-orders/internal/services/mock"
	"macdee-orders/internal/services/real"
)

// CreateNotifier creates the appropriate notifier implementation based on
// configuration. Standalone mode logs notifications instead of delivering
// them, so the service can run without a mail relay.
func CreateNotifier(cfg *config.ParsedConfig, creds *config.Credentials) interfaces.Notifier {
	if cfg.StandaloneMode {
		return mock.NewMockNotifier(cfg.Server.Verbose)
	}

	return real.NewSMTPNotifier(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		creds.EmailAddress,
		creds.EmailPassword,
		cfg.SMTPTimeout,
		cfg.Server.Verbose,
	)
}

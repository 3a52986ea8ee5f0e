package mail

import (
	"log"

	"github.com/abisalde/povertyline-client/internal/configs"
)

func NewMailerService(cfg *configs.Config) Mailer {
	if cfg.Mail.SMTPHost == "" {
		log.Println("INFO: SMTP host not configured, password reset mail goes to the log.")
		return LogMailer{}
	}

	log.Printf("INFO: Initializing SMTP Mail Service via %s:%s", cfg.Mail.SMTPHost, cfg.Mail.SMTPPort)
	return NewSMTPMailService(
		cfg.Mail.SMTPHost,
		cfg.Mail.SMTPPort,
		cfg.Mail.SMTPUsername,
		cfg.Mail.SMTPPassword,
		cfg.Mail.SenderEmail,
	)
}

// Package services содержит сервис рассылки почтовых уведомлений
// о решениях по кредитным заявкам.
package services

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/microlend/microloan/internal/lib/sl"
	"github.com/microlend/microloan/internal/lib/smtp"
	"github.com/microlend/microloan/internal/models"
)

// SenderService отправляет письма пользователям по событиям из очереди.
type SenderService struct {
	transport Transport
	log       *slog.Logger
}

// Transport интерфейс SMTP транспорта.
type Transport interface {
	Connect() (smtp.Client, error)
	GetSMTPUser() string
}

// NewSenderService создает новый экземпляр SenderService.
func NewSenderService(log *slog.Logger, transport Transport) *SenderService {
	return &SenderService{
		transport: transport,
		log:       log,
	}
}

// SendLoanDecision отправляет пользователю письмо о решении по его заявке.
func (s *SenderService) SendLoanDecision(body []byte) error {
	var message models.LoanDecisionEvent
	if err := json.Unmarshal(body, &message); err != nil {
		s.log.Error("Failed to unmarshal message body", "error", sl.Err(err))
		return fmt.Errorf("error unmarshalling message: %w", err)
	}

	to := []string{message.Email}

	var subject, bodyText string
	switch message.Status {
	case models.StatusApproved:
		subject = "Ваша заявка на займ одобрена"
		bodyText = fmt.Sprintf("Здравствуйте, %s!\n\nВаша заявка №%d на сумму %.2f одобрена.\n\nСредства будут перечислены в ближайшее время.",
			message.FullName, message.LoanID, message.Amount)
	case models.StatusRejected:
		subject = "Решение по вашей заявке на займ"
		bodyText = fmt.Sprintf("Здравствуйте, %s!\n\nК сожалению, ваша заявка №%d на сумму %.2f отклонена.\n\nВы можете подать новую заявку позднее.",
			message.FullName, message.LoanID, message.Amount)
	default:
		return fmt.Errorf("unknown loan status: %s", message.Status)
	}

	return s.sendEmail(to, subject, bodyText)
}

func (s *SenderService) sendEmail(to []string, subject, bodyText string) error {
	msg := strings.Join([]string{
		"From: " + s.transport.GetSMTPUser(),
		"To: " + strings.Join(to, ";"),
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"UTF-8\"",
		"",
		bodyText,
	}, "\r\n")

	client, err := s.transport.Connect()
	if err != nil {
		s.log.Error("Failed to connect to SMTP server", "error", sl.Err(err))
		return err
	}
	defer client.Close()

	if err := client.Mail(s.transport.GetSMTPUser()); err != nil {
		s.log.Error("Failed to set MAIL FROM", "from", s.transport.GetSMTPUser(), "error", sl.Err(err))
		return err
	}

	for _, addr := range to {
		if err := client.Rcpt(addr); err != nil {
			s.log.Error("Failed to set RCPT TO", "recipient", addr, "error", sl.Err(err))
			return err
		}
	}

	wc, err := client.Data()
	if err != nil {
		s.log.Error("Failed to get Data writer", "error", sl.Err(err))
		return err
	}

	_, err = wc.Write([]byte(msg))
	if err != nil {
		s.log.Error("Failed to write email body", "error", sl.Err(err))
		return err
	}

	if err = wc.Close(); err != nil {
		s.log.Error("Failed to close Data writer", "error", sl.Err(err))
		return err
	}

	if err = client.Quit(); err != nil {
		s.log.Error("Failed to quit SMTP client", "error", sl.Err(err))
		return err
	}

	s.log.Info("email sent successfully", "to", to)
	return nil
}

// Package services содержит отправку биллинговых сводок по электронной почте.
package services

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"mime"
	"strings"
	"time"

	"github.com/magabrotheeeer/nutrition-practice/internal/lib/billing"
	"github.com/magabrotheeeer/nutrition-practice/internal/lib/sl"
	"github.com/magabrotheeeer/nutrition-practice/internal/lib/smtp"
)

// Transport устанавливает соединение с SMTP-сервером.
type Transport interface {
	Connect() (smtp.Client, error)
	GetSMTPUser() string
}

// SenderService отправляет письма с биллинговыми сводками нутрициологам.
type SenderService struct {
	transport Transport
	log       *slog.Logger
}

// NewSenderService создает новый экземпляр SenderService.
func NewSenderService(log *slog.Logger, transport Transport) *SenderService {
	return &SenderService{
		transport: transport,
		log:       log,
	}
}

// SendBillingSummary разбирает сообщение из очереди и отправляет нутрициологу
// письмо с оценкой стоимости текущего месяца.
func (s *SenderService) SendBillingSummary(body []byte) error {
	var message billing.Summary
	if err := json.Unmarshal(body, &message); err != nil {
		s.log.Error("Failed to unmarshal message body", "error", sl.Err(err))
		return fmt.Errorf("error unmarshalling message: %w", err)
	}

	to := []string{message.Email}
	subject := fmt.Sprintf("Оценка стоимости за %s %d",
		monthName(message.Estimate.Cycle.Month), message.Estimate.Cycle.Year)
	bodyText := formatSummary(message)

	return s.sendEmail(to, subject, bodyText)
}

// formatSummary собирает текст письма: общая сумма и строки по пациентам.
func formatSummary(message billing.Summary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Здравствуйте, %s!\n\n", message.Username)
	fmt.Fprintf(&b, "Оценка стоимости доступа пациентов за %s %d: %.2f.\n",
		monthName(message.Estimate.Cycle.Month), message.Estimate.Cycle.Year, message.Estimate.Total)
	fmt.Fprintf(&b, "Дневная ставка: %.4f (%d дней в месяце).\n\n",
		message.Estimate.DailyRate, message.Estimate.Cycle.DaysInCycle)
	for _, detail := range message.Estimate.Details {
		fmt.Fprintf(&b, "  %s: %d активных дней, %.2f\n",
			detail.Name, detail.ActiveDays, detail.Subtotal)
	}
	b.WriteString("\nСумма является оценкой и может измениться до конца месяца.")
	return b.String()
}

var monthNames = [...]string{
	"январь", "февраль", "март", "апрель", "май", "июнь",
	"июль", "август", "сентябрь", "октябрь", "ноябрь", "декабрь",
}

func monthName(month time.Month) string {
	if month < time.January || month > time.December {
		return month.String()
	}
	return monthNames[month-1]
}

func (s *SenderService) sendEmail(to []string, subject, bodyText string) error {
	msg := strings.Join([]string{
		"From: " + s.transport.GetSMTPUser(),
		"To: " + strings.Join(to, ";"),
		// RFC 2047: кириллица в заголовке требует Q-кодирования
		"Subject: " + mime.QEncoding.Encode("UTF-8", subject),
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

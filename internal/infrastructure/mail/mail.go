package mail

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitryhil/vineweb/config"
	"github.com/dmitryhil/vineweb/internal/domain"
	"gopkg.in/gomail.v2"
)

type Mailer interface {
	SendOrderConfirmation(ctx context.Context, order domain.Order) error
}

type SMTPMailer struct {
	dialer *gomail.Dialer
	sender string
}

func CreateSMTPMailer(cfg config.SMTPConfig) Mailer {
	return &SMTPMailer{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Sender, cfg.Password),
		sender: cfg.Sender,
	}
}

func (m *SMTPMailer) SendOrderConfirmation(ctx context.Context, order domain.Order) error {
	if order.User.Email == "" {
		return nil
	}

	message := gomail.NewMessage()
	message.SetHeader("From", m.sender)
	message.SetHeader("To", order.User.Email)
	message.SetHeader("Subject", fmt.Sprintf("Order %s received", order.OrderNumber))
	message.SetBody("text/plain", OrderConfirmationBody(order))

	return m.dialer.DialAndSend(message)
}

func OrderConfirmationBody(order domain.Order) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Hello %s,\n\n", order.User.Name)
	fmt.Fprintf(&b, "Thank you for your order %s.\n\n", order.OrderNumber)
	for _, item := range order.Items {
		fmt.Fprintf(&b, "  %d x %s", item.Quantity, item.Name)
		if item.Size != "" {
			fmt.Fprintf(&b, " (%s)", item.Size)
		}
		fmt.Fprintf(&b, "  %d\n", item.Price*item.Quantity)
	}
	fmt.Fprintf(&b, "\nTotal: %d\n", order.TotalAmount)

	return b.String()
}

type NoopMailer struct{}

func (NoopMailer) SendOrderConfirmation(ctx context.Context, order domain.Order) error {
	return nil
}

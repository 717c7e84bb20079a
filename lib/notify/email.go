package notify

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"dhapi/lib/dhlottery"

	"github.com/jordan-wright/email"
)

type SmtpConfig struct {
	Server       string
	Port         int
	EmailAddress string
	Password     string
}

type sendFunc func(mail *email.Email, addr string, auth smtp.Auth) error

func sendMail(mail *email.Email, addr string, auth smtp.Auth) error {
	return mail.Send(addr, auth)
}

// EmailObserver mails every purchase to a list of recipients.
type EmailObserver struct {
	config SmtpConfig
	to     []string
	send   sendFunc
}

func NewEmailObserver(config SmtpConfig, to []string) (*EmailObserver, error) {
	if config.Server == "" || config.EmailAddress == "" {
		return nil, fmt.Errorf("email: smtp server and sender address are required")
	}
	if len(to) == 0 {
		return nil, fmt.Errorf("email: at least one recipient is required")
	}
	return &EmailObserver{
		config: config,
		to:     to,
		send:   sendMail,
	}, nil
}

func (o *EmailObserver) OnPurchase(ctx context.Context, slots []dhlottery.Slot) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	mail := email.NewEmail()
	mail.From = fmt.Sprintf("dhapi <%s>", o.config.EmailAddress)
	mail.To = o.to
	mail.Subject = "로또6/45 구매 결과"
	mail.Text = []byte(FormatSlots(slots))

	addr := fmt.Sprintf("%s:%d", o.config.Server, o.config.Port)
	err := o.send(
		mail,
		addr,
		smtp.PlainAuth("", o.config.EmailAddress, o.config.Password, o.config.Server),
	)
	// local relays often don't do auth
	if err != nil && strings.Contains(err.Error(), "server doesn't support AUTH") {
		err = o.send(mail, addr, nil)
	}
	if err != nil {
		return fmt.Errorf("email: send to %s: %w", strings.Join(o.to, ", "), err)
	}
	return nil
}

package utils

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"os"
	"strconv"
	"text/template"
	"time"

	"github.com/mailgun/mailgun-go/v3"
	"gopkg.in/gomail.v2"
)

// EmailData represents the data format for emails
type EmailData struct {
	Title       string
	ContentData interface{}
	EmailTo     string
	Template    string
}

// SendEmail renders a template and dispatches it through mailgun, or
// through plain SMTP when running in dev mode.
func SendEmail(data EmailData) error {
	tmpl, err := template.ParseFiles("utils/email_template/" + data.Template)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data.ContentData); err != nil {
		return err
	}

	if os.Getenv("ENV") == "dev" {
		return sendGoMail(data.EmailTo, data.Title, buf.String())
	}

	mg := mailgun.NewMailgun(os.Getenv("MAILGUN_DOMAIN"), os.Getenv("MAILGUN_PRIVATE_KEY"))
	message := mg.NewMessage(
		fmt.Sprintf("Staynest <%s>", os.Getenv("MAIL_FROM")),
		data.Title,
		"Sent from Staynest",
		data.EmailTo,
	)
	message.SetHtml(buf.String())

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*30)
	defer cancel()

	_, _, err = mg.Send(ctx, message)
	return err
}

func sendGoMail(to, subject, html string) error {
	port, err := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if err != nil {
		port = 587
	}

	m := gomail.NewMessage()
	m.SetHeader("From", os.Getenv("MAIL_FROM"))
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", html)

	d := gomail.NewDialer(os.Getenv("SMTP_HOST"), port, os.Getenv("SMTP_USER"), os.Getenv("SMTP_PASS"))
	d.TLSConfig = &tls.Config{InsecureSkipVerify: true}

	return d.DialAndSend(m)
}

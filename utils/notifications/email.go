package notifications

import (
	"staynest-bend/utils"
)

// TicketEmailData carries the template fields for ticket lifecycle emails
type TicketEmailData struct {
	Name        string
	Content     string
	TicketID    string
	TicketTitle string
}

// VerifyEmailData carries the template fields for the account
// verification email
type VerifyEmailData struct {
	Name string
	Code int
}

// GenericEmailData carries the single content field of the generic
// template, used for account and listing activity mails
type GenericEmailData struct {
	Content string
}

// SendTicketMail ...
func SendTicketMail(to, subject string, data TicketEmailData) error {
	return send(to, subject, "ticket_update.html", data)
}

// SendVerifyMail ...
func SendVerifyMail(to string, data VerifyEmailData) error {
	return send(to, verifyAccountTitle, "verify_account.html", data)
}

// SendGenericMail ...
func SendGenericMail(to, subject, content string) error {
	return send(to, subject, "generic.html", GenericEmailData{Content: content})
}

func send(to, subject, temp string, data interface{}) error {
	payload := utils.EmailData{
		Title:       subject,
		ContentData: data,
		EmailTo:     to,
		Template:    temp,
	}

	return utils.SendEmail(payload)
}

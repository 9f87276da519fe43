package main

import (
	"bytes"
	"html/template"

	"github.com/go-mail/mail/v2"
)

type mailer struct {
	dialer *mail.Dialer
	sender string
}

func newMailer(host string, port int, username string, password string, sender string) *mailer {
	dialer := mail.NewDialer(host, port, username, password)
	return &mailer{
		dialer: dialer,
		sender: sender,
	}
}

func (m *mailer) send(to string, tmpl *template.Template, data any) error {
	var subject bytes.Buffer
	err := tmpl.ExecuteTemplate(&subject, "subject", data)
	if err != nil {
		return err
	}
	var plainBody bytes.Buffer
	err = tmpl.ExecuteTemplate(&plainBody, "plainBody", data)
	if err != nil {
		return err
	}
	var htmlBody bytes.Buffer
	err = tmpl.ExecuteTemplate(&htmlBody, "htmlBody", data)
	if err != nil {
		return err
	}

	msg := mail.NewMessage()
	msg.SetHeader("To", to)
	msg.SetHeader("From", m.sender)
	msg.SetHeader("Subject", subject.String())
	msg.SetBody("text/plain", plainBody.String())
	msg.AddAlternative("text/html", htmlBody.String())

	for i := 0; i < 3; i++ {
		err = m.dialer.DialAndSend(msg)
		if err == nil {
			break
		}
	}
	return err
}

var welcomeMailTemplate = template.Must(template.New("welcome").Parse(`
{{define "subject"}}Welcome to Task Tracker{{end}}

{{define "plainBody"}}
Hi {{.Name}},

Thanks for signing up. You can now create projects and start tracking tasks.
{{end}}

{{define "htmlBody"}}
<html>
<body>
<p>Hi {{.Name}},</p>
<p>Thanks for signing up. You can now create projects and start tracking tasks.</p>
</body>
</html>
{{end}}
`))

// sendWelcomeMail runs on its own goroutine; registration never fails or
// blocks on SMTP.
func (app *application) sendWelcomeMail(u *user) {
	err := app.mailer.send(u.Email, welcomeMailTemplate, u)
	if err != nil {
		app.logger.Warn().Err(err).Str("email", u.Email).Msg("failed to send welcome mail")
	}
}

package mailer

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/gomail.v2"
)

// Mailer is the outbound email collaborator, injected so tests and the
// scheduler can substitute a fake.
type Mailer interface {
	Send(to, subject, body string) error
}

// SMTPMailer sends mail over SMTP via gomail.
type SMTPMailer struct {
	host string
	port int
	user string
	pass string
}

func NewSMTPMailer() *SMTPMailer {
	err := godotenv.Load()
	if err != nil {
		log.Println("Warning: Error loading .env file. Using environment variables directly.")
	}
	port, _ := strconv.Atoi(os.Getenv("SMTP_PORT"))

	return &SMTPMailer{
		host: os.Getenv("SMTP_HOST"),
		port: port,
		user: os.Getenv("EMAIL_USER"),
		pass: os.Getenv("EMAIL_PASS"),
	}
}

func (m *SMTPMailer) Send(to, subject, body string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.user)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", body)

	d := gomail.NewDialer(m.host, m.port, m.user, m.pass)
	return d.DialAndSend(msg)
}

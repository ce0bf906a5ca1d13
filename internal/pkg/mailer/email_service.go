package mailer

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

type IEmailService interface {
	SendWelcome(toEmail, name, faculty string) error
}

type emailService struct {
	dialer      *gomail.Dialer
	senderEmail string
	senderName  string
}

func NewEmailService(host string, port int, username, password, senderEmail, senderName string) IEmailService {
	d := gomail.NewDialer(host, port, username, password)

	return &emailService{
		dialer:      d,
		senderEmail: senderEmail,
		senderName:  senderName,
	}
}

func (s *emailService) SendWelcome(toEmail, name, faculty string) error {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.senderEmail, s.senderName)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", "Welcome to Future University in Egypt")

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Welcome to FUE, %s! 🎓</h2>
			<p>Your account has been created and your interest in <b>%s</b> is registered.</p>
			<p>You can now chat with Ask Nour for admission requirements, fees, deadlines and campus life.</p>
			<p>The admission office will contact you with the next steps of your application.</p>
			<p>If you didn't create this account, please ignore this email.</p>
		</div>
	`, name, faculty)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		fmt.Printf("[MAILER ERROR] Failed to send welcome mail to %s: %v\n", toEmail, err)
		return err
	}

	fmt.Printf("[MAILER] Welcome mail sent to %s\n", toEmail)
	return nil
}

package mailer

import (
	"fmt"
	"net/smtp"

	"selecao-projetos/internal/config"
)

// Mailer envia mensagens HTML para um único destinatário.
type Mailer interface {
	Send(to, subject, htmlBody string) error
}

// SMTPMailer envia e-mails via submissão SMTP autenticada (STARTTLS).
type SMTPMailer struct {
	host     string
	port     string
	endereco string
	senha    string
	nome     string
}

func NewSMTPMailer(cfg config.SMTP) *SMTPMailer {
	return &SMTPMailer{
		host:     cfg.Host,
		port:     cfg.Port,
		endereco: cfg.Endereco,
		senha:    cfg.Senha,
		nome:     cfg.Nome,
	}
}

func (m *SMTPMailer) Send(to, subject, htmlBody string) error {
	if m.host == "" || m.port == "" || m.endereco == "" || m.senha == "" {
		return fmt.Errorf("configuração SMTP incompleta")
	}

	msg := []byte(fmt.Sprintf(
		"From: %s <%s>\r\n"+
			"To: %s\r\n"+
			"Subject: %s\r\n"+
			"MIME-Version: 1.0\r\n"+
			"Content-Type: text/html; charset=\"utf-8\"\r\n"+
			"\r\n%s\r\n",
		m.nome, m.endereco, to, subject, htmlBody,
	))

	auth := smtp.PlainAuth("", m.endereco, m.senha, m.host)
	return smtp.SendMail(m.host+":"+m.port, auth, m.endereco, []string{to}, msg)
}

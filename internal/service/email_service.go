package service

import (
	"bytes"
	"crypto/tls"
	"fmt"
	"mime"
	"net/mail"
	"net/smtp"
	"strings"

	"github.com/qbu-next/internal/config"
	"github.com/qbu-next/internal/models"
)

// EmailService メール送信サービス
type EmailService struct {
	cfg *config.EmailConfig
}

// NewEmailService メールサービスを作成
func NewEmailService(cfg *config.EmailConfig) *EmailService {
	return &EmailService{cfg: cfg}
}

// SetConfig 実行時のメール設定を差し替える
func (s *EmailService) SetConfig(cfg *config.EmailConfig) {
	if cfg == nil {
		return
	}
	s.cfg = cfg
}

// OrderInvoiceEmailInput 注文確認メールの入力
type OrderInvoiceEmailInput struct {
	OrderNo           string
	CustomerName      string
	BlockCount        int
	SupportBlockCount int
	VolumeCm3         float64
	ItemSubtotal      models.Money
	Shipping          models.Money
	Discount          models.Money
	Total             models.Money
	Currency          string
	SizeTier          string
	TicketApplied     bool
}

// SendOrderInvoiceEmail 注文確認メールを送信
func (s *EmailService) SendOrderInvoiceEmail(toEmail string, input OrderInvoiceEmailInput) error {
	subject, body := buildOrderInvoiceContent(input)
	return s.sendTextEmail(toEmail, subject, body)
}

// SendCustomEmail テストメールや任意メールを送信
func (s *EmailService) SendCustomEmail(toEmail, subject, body string) error {
	subject = strings.TrimSpace(subject)
	if subject == "" {
		subject = "SMTP 設定テストメール"
	}
	body = strings.TrimSpace(body)
	if body == "" {
		body = "Q-BU! からの SMTP テストメールです。このメールが届いていれば設定は正常です。"
	}
	return s.sendTextEmail(toEmail, subject, body)
}

func (s *EmailService) sendTextEmail(toEmail, subject, body string) error {
	if s.cfg == nil || !s.cfg.Enabled {
		return ErrEmailServiceDisabled
	}
	if s.cfg.Host == "" || s.cfg.Port == 0 || s.cfg.From == "" {
		return ErrEmailServiceNotConfigured
	}
	if _, err := mail.ParseAddress(toEmail); err != nil {
		return ErrInvalidEmail
	}

	from := buildFromAddress(s.cfg.From, s.cfg.FromName)
	msg := buildEmailMessage(from, toEmail, subject, body)

	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	var auth smtp.Auth
	if s.cfg.Username != "" || s.cfg.Password != "" {
		auth = smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	}

	if s.cfg.UseSSL {
		return sendMailWithSSL(addr, auth, s.cfg.Host, s.cfg.From, []string{toEmail}, []byte(msg))
	}
	if s.cfg.UseTLS {
		return sendMailWithStartTLS(addr, auth, s.cfg.Host, s.cfg.From, []string{toEmail}, []byte(msg))
	}
	return sendMailPlain(addr, auth, s.cfg.Host, s.cfg.From, []string{toEmail}, []byte(msg))
}

func buildOrderInvoiceContent(input OrderInvoiceEmailInput) (string, string) {
	currency := strings.TrimSpace(input.Currency)
	if currency == "" {
		currency = "JPY"
	}
	subject := fmt.Sprintf("【Q-BU!】ご注文を受け付けました（%s）", input.OrderNo)

	var buf bytes.Buffer
	name := strings.TrimSpace(input.CustomerName)
	if name != "" {
		buf.WriteString(fmt.Sprintf("%s 様\n\n", name))
	}
	buf.WriteString("ご注文ありがとうございます。以下の内容で受け付けました。\n\n")
	buf.WriteString(fmt.Sprintf("注文番号: %s\n", input.OrderNo))
	buf.WriteString(fmt.Sprintf("ブロック数: %d（サポート %d）\n", input.BlockCount, input.SupportBlockCount))
	buf.WriteString(fmt.Sprintf("推定体積: %.2f cm3\n", input.VolumeCm3))
	if input.SizeTier != "" {
		buf.WriteString(fmt.Sprintf("配送サイズ: %s\n", input.SizeTier))
	}
	buf.WriteString("\n")
	buf.WriteString(fmt.Sprintf("商品小計: %s %s\n", input.ItemSubtotal.String(), currency))
	buf.WriteString(fmt.Sprintf("送料: %s %s\n", input.Shipping.String(), currency))
	if input.TicketApplied {
		buf.WriteString(fmt.Sprintf("割引: -%s %s\n", input.Discount.String(), currency))
	}
	buf.WriteString(fmt.Sprintf("合計: %s %s\n", input.Total.String(), currency))
	buf.WriteString("\n印刷が完了し発送の準備ができ次第、改めてご連絡いたします。\n")

	return subject, buf.String()
}

func buildFromAddress(from, name string) string {
	if strings.TrimSpace(name) == "" {
		return from
	}
	encoded := mime.QEncoding.Encode("UTF-8", name)
	return (&mail.Address{Name: encoded, Address: from}).String()
}

func buildEmailMessage(from, to, subject, body string) string {
	var buf bytes.Buffer
	buf.WriteString(fmt.Sprintf("From: %s\r\n", from))
	buf.WriteString(fmt.Sprintf("To: %s\r\n", to))
	buf.WriteString(fmt.Sprintf("Subject: %s\r\n", mime.QEncoding.Encode("UTF-8", subject)))
	buf.WriteString("MIME-Version: 1.0\r\n")
	buf.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	buf.WriteString("\r\n")
	buf.WriteString(body)
	return buf.String()
}

func sendMailWithSSL(addr string, auth smtp.Auth, host, from string, to []string, msg []byte) error {
	conn, err := tls.Dial("tcp", addr, &tls.Config{ServerName: host})
	if err != nil {
		return err
	}
	defer conn.Close()

	client, err := smtp.NewClient(conn, host)
	if err != nil {
		return err
	}
	defer client.Close()

	if auth != nil {
		if ok, _ := client.Extension("AUTH"); ok {
			if err := client.Auth(auth); err != nil {
				return err
			}
		}
	}

	return sendSMTPData(client, from, to, msg)
}

func sendMailWithStartTLS(addr string, auth smtp.Auth, host, from string, to []string, msg []byte) error {
	client, err := smtp.Dial(addr)
	if err != nil {
		return err
	}
	defer client.Close()

	if err := client.StartTLS(&tls.Config{ServerName: host}); err != nil {
		return err
	}

	if auth != nil {
		if ok, _ := client.Extension("AUTH"); ok {
			if err := client.Auth(auth); err != nil {
				return err
			}
		}
	}

	return sendSMTPData(client, from, to, msg)
}

func sendMailPlain(addr string, auth smtp.Auth, host, from string, to []string, msg []byte) error {
	client, err := smtp.Dial(addr)
	if err != nil {
		return err
	}
	defer client.Close()

	if auth != nil {
		if ok, _ := client.Extension("AUTH"); ok {
			if err := client.Auth(auth); err != nil {
				return err
			}
		}
	}

	return sendSMTPData(client, from, to, msg)
}

func sendSMTPData(client *smtp.Client, from string, to []string, msg []byte) error {
	if err := client.Mail(from); err != nil {
		return err
	}
	for _, rcpt := range to {
		if err := client.Rcpt(rcpt); err != nil {
			return err
		}
	}
	w, err := client.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(msg); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}
	return client.Quit()
}

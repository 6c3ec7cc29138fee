package email

import (
	"fmt"
	"net/smtp"
)

// Service handles email sending via SMTP
type Service struct {
	host string
	port string
	from string
}

func NewService(host, port, from string) *Service {
	return &Service{
		host: host,
		port: port,
		from: from,
	}
}

// SendPaymentReceipt sends a receipt for a captured payment.
func (s *Service) SendPaymentReceipt(to string, receipt Receipt) error {
	subject := fmt.Sprintf("Payment receipt (reference: %s)", shortID(receipt.PaymentIntentID))
	body := BuildPaymentReceiptBody(receipt)
	return s.send(to, subject, body)
}

// SendRefundNotice sends a confirmation that a refund was issued.
func (s *Service) SendRefundNotice(to string, notice RefundNotice) error {
	subject := fmt.Sprintf("Refund issued (reference: %s)", shortID(notice.RefundID))
	body := BuildRefundNoticeBody(notice)
	return s.send(to, subject, body)
}

func (s *Service) send(to, subject, body string) error {
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=UTF-8\r\n\r\n%s",
		s.from, to, subject, body)
	addr := fmt.Sprintf("%s:%s", s.host, s.port)
	return smtp.SendMail(addr, nil, s.from, []string{to}, []byte(msg))
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

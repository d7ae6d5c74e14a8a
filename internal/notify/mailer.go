// Package notify emails the renter a copy of the settlement once a return is
// finalized.
package notify

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"evrental-staff-core/internal/config"
	"evrental-staff-core/internal/domain"
	"evrental-staff-core/internal/logger"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// Sender is the part of the sendgrid client the mailer uses.
type Sender interface {
	SendWithContext(ctx context.Context, email *mail.SGMailV3) (*rest.Response, error)
}

type ReceiptMailer struct {
	sender    Sender
	fromEmail string
	fromName  string
}

// NewReceiptMailer returns nil when no API key is configured; a nil
// *ReceiptMailer drops every notice.
func NewReceiptMailer(cfg config.SendGridConfig) *ReceiptMailer {
	if cfg.APIKey == "" {
		return nil
	}
	return NewReceiptMailerWithSender(sendgrid.NewSendClient(cfg.APIKey), cfg.FromEmail, cfg.FromName)
}

func NewReceiptMailerWithSender(sender Sender, fromEmail, fromName string) *ReceiptMailer {
	return &ReceiptMailer{sender: sender, fromEmail: fromEmail, fromName: fromName}
}

func (m *ReceiptMailer) NotifyReturnFinalized(ctx context.Context, n domain.ReturnNotice) error {
	if m == nil {
		logger.Debug("SendGrid not configured, skipping receipt email", "booking_id", n.BookingID)
		return nil
	}
	if n.RenterEmail == "" {
		logger.Warn("No renter email, skipping receipt email", "booking_id", n.BookingID)
		return nil
	}

	logger.ExternalServiceCall("sendgrid", "send", "booking_id", n.BookingID)
	from := mail.NewEmail(m.fromName, m.fromEmail)
	to := mail.NewEmail(n.RenterName, n.RenterEmail)
	msg := mail.NewSingleEmail(from, Subject(n), to, PlainText(n), HTML(n))

	resp, err := m.sender.SendWithContext(ctx, msg)
	if err != nil {
		logger.ExternalServiceResult("sendgrid", "send", err)
		return fmt.Errorf("failed to send receipt email: %w", err)
	}
	if resp.StatusCode >= 400 {
		err := fmt.Errorf("sendgrid error: status %d, body: %s", resp.StatusCode, resp.Body)
		logger.ExternalServiceResult("sendgrid", "send", err)
		return err
	}
	logger.ExternalServiceResult("sendgrid", "send", nil, "status", resp.StatusCode)
	return nil
}

func Subject(n domain.ReturnNotice) string {
	return fmt.Sprintf("Biên nhận trả xe - %s", n.BookingID)
}

func PlainText(n domain.ReturnNotice) string {
	s := n.Settlement
	var b strings.Builder
	fmt.Fprintf(&b, "Xin chào %s,\n\n", n.RenterName)
	fmt.Fprintf(&b, "Đơn thuê %s đã hoàn tất trả xe.\n\n", n.BookingID)
	fmt.Fprintf(&b, "Phí thuê: %s\n", FormatVND(s.BaseRentalFee))
	fmt.Fprintf(&b, "Phí sạc: %s\n", FormatVND(s.TotalChargingFee))
	fmt.Fprintf(&b, "Phụ phí: %s\n", FormatVND(s.TotalAdditionalFees))
	fmt.Fprintf(&b, "Tổng cộng: %s\n", FormatVND(s.TotalAmount))
	fmt.Fprintf(&b, "Tiền cọc: %s\n", FormatVND(s.DepositAmount))
	b.WriteString(balanceLine(s.RefundAmount))
	b.WriteString("\n")
	return b.String()
}

func HTML(n domain.ReturnNotice) string {
	s := n.Settlement
	rows := [][2]string{
		{"Phí thuê", FormatVND(s.BaseRentalFee)},
		{"Phí sạc", FormatVND(s.TotalChargingFee)},
		{"Phụ phí", FormatVND(s.TotalAdditionalFees)},
		{"Tổng cộng", FormatVND(s.TotalAmount)},
		{"Tiền cọc", FormatVND(s.DepositAmount)},
	}
	var b strings.Builder
	b.WriteString("<html><body>")
	fmt.Fprintf(&b, "<h2>Biên nhận trả xe %s</h2><table>", escape(n.BookingID))
	for _, r := range rows {
		fmt.Fprintf(&b, "<tr><td>%s</td><td>%s</td></tr>", r[0], r[1])
	}
	fmt.Fprintf(&b, "</table><p><strong>%s</strong></p></body></html>", balanceLine(s.RefundAmount))
	return b.String()
}

func balanceLine(refund int64) string {
	switch {
	case refund < 0:
		return "Khách cần thanh toán thêm: " + FormatVND(-refund)
	case refund > 0:
		return "Hoàn lại: " + FormatVND(refund)
	default:
		return "Không phát sinh thanh toán"
	}
}

// FormatVND renders 670000 as "670.000 ₫".
func FormatVND(amount int64) string {
	neg := amount < 0
	if neg {
		amount = -amount
	}
	digits := strconv.FormatInt(amount, 10)
	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(d)
	}
	b.WriteString(" ₫")
	return b.String()
}

var escaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")

func escape(s string) string { return escaper.Replace(s) }

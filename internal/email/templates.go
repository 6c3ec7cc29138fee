package email

import (
	"fmt"
	"strings"
)

// Receipt carries the fields rendered into a payment receipt email.
type Receipt struct {
	PaymentIntentID string
	Amount          int64
	Currency        string
	Description     string
	CardBrand       string
	CardLast4       string
}

// RefundNotice carries the fields rendered into a refund confirmation email.
type RefundNotice struct {
	RefundID        string
	PaymentIntentID string
	Amount          int64
	Currency        string
}

// BuildPaymentReceiptBody builds the HTML body for a payment receipt email
func BuildPaymentReceiptBody(r Receipt) string {
	method := ""
	if r.CardLast4 != "" {
		method = fmt.Sprintf(
			`<tr>
				<td style="padding: 12px; border-bottom: 1px solid #eee;">Payment method</td>
				<td style="padding: 12px; border-bottom: 1px solid #eee; text-align: right;">%s ending in %s</td>
			</tr>`,
			strings.ToUpper(r.CardBrand), r.CardLast4)
	}

	description := ""
	if r.Description != "" {
		description = fmt.Sprintf(
			`<tr>
				<td style="padding: 12px; border-bottom: 1px solid #eee;">Description</td>
				<td style="padding: 12px; border-bottom: 1px solid #eee; text-align: right;">%s</td>
			</tr>`,
			r.Description)
	}

	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: sans-serif; color: #333; margin: 0; padding: 24px;">
	<h2 style="margin-top: 0;">Thank you for your payment</h2>
	<p>Your payment has been processed successfully.</p>
	<table style="border-collapse: collapse; width: 100%%; max-width: 480px;">
		<tr>
			<td style="padding: 12px; border-bottom: 1px solid #eee;">Reference</td>
			<td style="padding: 12px; border-bottom: 1px solid #eee; text-align: right;">%s</td>
		</tr>
		%s%s
		<tr>
			<td style="padding: 12px; font-weight: bold;">Amount</td>
			<td style="padding: 12px; font-weight: bold; text-align: right;">%s</td>
		</tr>
	</table>
	<p style="color: #999; font-size: 12px;">If you did not make this payment, please contact support.</p>
</body>
</html>`,
		r.PaymentIntentID, description, method, FormatAmount(r.Amount, r.Currency))
}

// BuildRefundNoticeBody builds the HTML body for a refund confirmation email
func BuildRefundNoticeBody(n RefundNotice) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: sans-serif; color: #333; margin: 0; padding: 24px;">
	<h2 style="margin-top: 0;">Your refund has been issued</h2>
	<table style="border-collapse: collapse; width: 100%%; max-width: 480px;">
		<tr>
			<td style="padding: 12px; border-bottom: 1px solid #eee;">Refund reference</td>
			<td style="padding: 12px; border-bottom: 1px solid #eee; text-align: right;">%s</td>
		</tr>
		<tr>
			<td style="padding: 12px; border-bottom: 1px solid #eee;">Original payment</td>
			<td style="padding: 12px; border-bottom: 1px solid #eee; text-align: right;">%s</td>
		</tr>
		<tr>
			<td style="padding: 12px; font-weight: bold;">Amount</td>
			<td style="padding: 12px; font-weight: bold; text-align: right;">%s</td>
		</tr>
	</table>
	<p style="color: #999; font-size: 12px;">Refunds usually appear on your statement within 5-10 business days.</p>
</body>
</html>`,
		n.RefundID, n.PaymentIntentID, FormatAmount(n.Amount, n.Currency))
}

// FormatAmount renders minor units as a decimal amount with the currency
// code, e.g. 10050 USD as "100.50 USD".
func FormatAmount(amount int64, currency string) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	return fmt.Sprintf("%s%d.%02d %s", sign, amount/100, amount%100, currency)
}

package service

import (
	"fmt"
	"net/url"

	"github.com/shopspring/decimal"
)

const upiCurrency = "INR"

// BuildUPIPaymentLink builds the payment-app deep link shown at checkout.
// The output is a pure function of its inputs: parameter order is fixed and
// the amount is rendered with two decimal places, so the same order always
// yields a byte-identical link.
func BuildUPIPaymentLink(upiID, upiName string, amount decimal.Decimal, courseTitle string) string {
	note := "Payment for " + courseTitle
	return fmt.Sprintf("upi://pay?pa=%s&pn=%s&am=%s&cu=%s&tn=%s",
		url.QueryEscape(upiID),
		url.QueryEscape(upiName),
		amount.StringFixed(2),
		upiCurrency,
		url.QueryEscape(note),
	)
}

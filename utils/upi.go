// utils/upi.go
package utils

import (
	"fmt"
	"net/url"
	"os"
)

const defaultUPIID = "8073126541@ptaxis"

// UPIID returns the payee UPI address for direct payments
func UPIID() string {
	if id := os.Getenv("UPI_ID"); id != "" {
		return id
	}
	return defaultUPIID
}

// BuildUPILink builds a upi://pay deep link for the given order amount.
// Scanning apps read the payee, amount and transaction note from it.
func BuildUPILink(orderID int64, amount float64) string {
	params := url.Values{}
	params.Set("pa", UPIID())
	params.Set("pn", "NirmaanTech")
	params.Set("am", fmt.Sprintf("%.2f", amount))
	params.Set("cu", "INR")
	params.Set("tn", fmt.Sprintf("Order %d", orderID))
	return "upi://pay?" + params.Encode()
}

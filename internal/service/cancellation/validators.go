package cancellation

import "strings"

func isValidCustomerID(customerID string) bool {
	return strings.TrimSpace(customerID) != ""
}

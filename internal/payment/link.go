// Package payment derives the external payment URL handed back to buyers.
package payment

import (
	"net/url"
	"strconv"
)

// Link builds the deterministic payment URL for an order total. The base
// comes from config; only the amount varies, so the same total always
// yields the same link.
func Link(base string, amount int) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	q := u.Query()
	q.Set("amount", strconv.Itoa(amount))
	u.RawQuery = q.Encode()
	return u.String()
}

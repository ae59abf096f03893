// Package currency renders monetary amounts for display. Amounts are stored
// as integer cents everywhere else; formatting is the only place a currency
// symbol or digit grouping appears.
package currency

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/srxshiv/personal-finance-tracker/internal/core"
)

// INR formats amounts as Indian rupees with lakh/crore digit grouping,
// e.g. ₹1,23,456.78. The zero value is ready to use.
type INR struct{}

func (INR) Format(m core.Money) string {
	cents := m.Cents
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s₹%s.%02d", sign, groupIndian(cents/100), cents%100)
}

// groupIndian inserts separators in the Indian numbering style: the last
// three digits form one group, every two digits after that form another.
func groupIndian(n int64) string {
	digits := strconv.FormatInt(n, 10)
	if len(digits) <= 3 {
		return digits
	}
	head := digits[:len(digits)-3]
	tail := digits[len(digits)-3:]

	var groups []string
	for len(head) > 2 {
		groups = append([]string{head[len(head)-2:]}, groups...)
		head = head[:len(head)-2]
	}
	groups = append([]string{head}, groups...)
	return strings.Join(groups, ",") + "," + tail
}

var _ core.CurrencyFormatter = INR{}

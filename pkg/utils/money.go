package utils

import "fmt"

// FormatCents 分转美元展示字符串
// 29900 -> "$299.00"
func FormatCents(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s$%d.%02d", sign, cents/100, cents%100)
}

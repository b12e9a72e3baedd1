/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package presidents

import "strconv"

// Ordinal formats n as an English ordinal ("1st", "12th", "22nd").
func Ordinal(n int) string {
	suffix := "th"

	switch n % 100 {
	case 11, 12, 13:
	default:
		switch n % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}

	return strconv.Itoa(n) + suffix
}

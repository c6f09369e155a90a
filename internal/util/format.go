// Copyright (c) 2025 Nest App
// SPDX-License-Identifier: AGPL-3.0-or-later

package util

import (
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// printer formats numbers with English grouping ("1,234.56"). The backend
// returns bare decimal amounts; presentation is entirely client-side.
var printer = message.NewPrinter(language.English)

// FormatAmount renders a monetary value as "$1,234.56".
// Negative values render as "-$1,234.56".
func FormatAmount(v float64) string {
	if v < 0 {
		return "-" + FormatAmount(-v)
	}
	return printer.Sprintf("$%v", number.Decimal(v, number.MinFractionDigits(2), number.MaxFractionDigits(2)))
}

// FormatAmountString renders a backend amount string as currency. The REST
// API ships amounts as strings; values that do not parse are passed through
// with a "$" prefix so the raw figure is still visible.
func FormatAmountString(s string) string {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return "$" + s
	}
	return FormatAmount(v)
}

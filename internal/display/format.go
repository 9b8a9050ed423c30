package display

import (
	"fmt"
	"strconv"
	"time"

	"github.com/btcsuite/btcd/btcutil"
)

// FormatTimestamp converts a Unix timestamp to a human-readable string with
// relative time measured from now.
//
// Examples:
//   - 1231006505 -> "2009-01-03 18:15:05 UTC (6133d ago)"
//   - 0 -> "—" (unknown)
func FormatTimestamp(ts uint64, now time.Time) string {
	if ts == 0 {
		return "—"
	}
	t := time.Unix(int64(ts), 0)

	ago := now.Sub(t)
	var agoStr string
	switch {
	case ago < 0:
		agoStr = "in the future"
	case ago < time.Minute:
		agoStr = fmt.Sprintf("%ds ago", int(ago.Seconds()))
	case ago < time.Hour:
		agoStr = fmt.Sprintf("%dm ago", int(ago.Minutes()))
	case ago < 24*time.Hour:
		agoStr = fmt.Sprintf("%dh ago", int(ago.Hours()))
	default:
		agoStr = fmt.Sprintf("%dd ago", int(ago.Hours()/24))
	}

	return fmt.Sprintf("%s (%s)", t.UTC().Format("2006-01-02 15:04:05 UTC"), agoStr)
}

// FormatNumber adds thousand separators to a number for readability.
//
// Examples:
//   - 840000 -> "840,000"
//   - 123 -> "123"
func FormatNumber(n uint64) string {
	s := strconv.FormatUint(n, 10)
	if len(s) <= 3 {
		return s
	}

	var result []byte
	for i, c := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			result = append(result, ',')
		}
		result = append(result, byte(c))
	}
	return string(result)
}

// FormatSats renders an amount in satoshis as BTC, e.g. "0.98 BTC".
func FormatSats(sats int64) string {
	return btcutil.Amount(sats).String()
}

func orDash(s string) string {
	if s == "" {
		return "—"
	}
	return s
}

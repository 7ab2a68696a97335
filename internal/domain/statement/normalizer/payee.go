package normalizer

import (
	"regexp"
	"strings"
)

const maxPayeeLength = 50

// payeePrefixes are transaction-type markers banks prepend to narrations.
// They are stripped case-insensitively from the start of the text, each
// together with the separator that follows it.
var payeePrefixes = []string{
	"UPI", "NEFT", "IMPS", "RTGS", "ACH", "ATW", "ATM", "POS",
	"EAW", "VPS", "CARD", "TRANSFER", "TRF", "BIL", "MMT", "NACH",
}

// refRunPattern matches a leading 12-16 digit run followed by a separator —
// an account or reference number, not part of the merchant name.
var refRunPattern = regexp.MustCompile(`^\d{12,16}[-/\\ ]`)

// ExtractPayee derives a short merchant label from free-text narration.
// "UPI-AMAZON PAY-1234567890123456/XYZ" becomes "AMAZON PAY".
func ExtractPayee(narration string) string {
	s := strings.TrimSpace(narration)

	for stripped := true; stripped; {
		stripped = false
		upper := strings.ToUpper(s)
		for _, prefix := range payeePrefixes {
			if !strings.HasPrefix(upper, prefix) {
				continue
			}
			rest := s[len(prefix):]
			if rest != "" && !isSeparator(rest[0]) && rest[0] != ' ' {
				continue
			}
			s = strings.TrimLeft(rest, "-/\\ ")
			stripped = true
			break
		}
	}

	s = refRunPattern.ReplaceAllString(s, "")

	segments := strings.FieldsFunc(s, func(r rune) bool {
		return r == '-' || r == '/' || r == '\\'
	})

	label := ""
	for _, seg := range segments {
		if seg = strings.TrimSpace(seg); seg != "" {
			label = seg
			break
		}
	}
	if label == "" {
		label = strings.TrimSpace(s)
	}

	// Truncate on runes so multibyte merchant names never split mid-rune.
	if runes := []rune(label); len(runes) > maxPayeeLength {
		label = string(runes[:maxPayeeLength])
	}
	return label
}

func isSeparator(b byte) bool {
	return b == '-' || b == '/' || b == '\\'
}

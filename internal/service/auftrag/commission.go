package auftrag

import (
	"fmt"
	"strings"

	"next-golang/internal/storage"
)

// FormatCommissionNr normalisiert auf genau 6 Ziffern mit führenden Nullen
// (nur Basis, ohne Suffix). Mehrfaches Anwenden ändert nichts mehr.
func FormatCommissionNr(nr string) string {
	var b strings.Builder
	for _, r := range nr {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	for len(digits) < 6 {
		digits = "0" + digits
	}
	return digits[:6]
}

// BaseCommissionNr liefert die 6-stellige Basis für die Gruppierung,
// ein Suffix wie "-2" wird abgeschnitten.
func BaseCommissionNr(nr string) string {
	beforeHyphen, _, _ := strings.Cut(nr, "-")
	beforeHyphen = strings.TrimSpace(beforeHyphen)
	if beforeHyphen == "" {
		beforeHyphen = nr
	}
	return FormatCommissionNr(beforeHyphen)
}

// CommissionNrDisplay ist die Anzeige inkl. Original-Suffix (024016-1, 024016-2).
func CommissionNrDisplay(nr string) string {
	base := BaseCommissionNr(nr)
	suffix := ""
	if idx := strings.Index(nr, "-"); idx >= 0 {
		suffix = nr[idx:]
	}
	return base + suffix
}

// CommissionNrWithSuffix vergibt das nächste Suffix für eine Basis:
// 024016-1, 024016-2, ... excludeID lässt den gerade bearbeiteten Auftrag
// aus der Zählung (0 = keiner).
func CommissionNrWithSuffix(base string, auftraege []storage.Auftrag, excludeID int) string {
	normalizedBase := FormatCommissionNr(base)
	count := 0
	for _, a := range auftraege {
		if a.ID == excludeID {
			continue
		}
		if BaseCommissionNr(a.CommissionNr) == normalizedBase {
			count++
		}
	}
	return fmt.Sprintf("%s-%d", normalizedBase, count+1)
}

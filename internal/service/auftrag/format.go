package auftrag

import (
	"fmt"
	"math"
	"time"
)

// FormatMinutes rendert Minuten als Minuten'Sekunden”, 12.5 → 12'30”.
func FormatMinutes(totalMinutes float64) string {
	m := math.Floor(totalMinutes)
	s := math.Round((totalMinutes - m) * 60)
	return fmt.Sprintf("%d'%02d''", int(m), int(s))
}

// FormatMinuteSeconds ist die Live-Anzeige: bei laufendem Timer kommt das
// aktuelle Intervall dazu.
func FormatMinuteSeconds(totalMinutes float64, startedAt *time.Time, now time.Time) string {
	minutes := totalMinutes
	if startedAt != nil {
		minutes += now.Sub(*startedAt).Minutes()
	}
	return FormatMinutes(minutes)
}

// FormatDateTimeCH formatiert nach Schweizer Standard (20.02.2026, 16:00).
// Unlesbare Werte gehen unverändert zurück.
func FormatDateTimeCH(value string) string {
	t, ok := ParseDeadline(value)
	if !ok {
		return value
	}
	return t.Format("02.01.2006, 15:04")
}

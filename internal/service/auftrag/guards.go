package auftrag

import (
	"strings"
	"time"

	"next-golang/internal/storage"
)

var deadlineLayouts = []string{
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006-01-02",
}

// ParseDeadline akzeptiert die datetime-local-Formate des Frontends plus RFC3339.
func ParseDeadline(deadline string) (time.Time, bool) {
	for _, layout := range deadlineLayouts {
		if t, err := time.Parse(layout, deadline); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// CanSetReadyFuerWS: nur wenn Pläne hochgeladen und alle Pflichtfelder
// ausgefüllt sind darf der Auftrag an die Werkstatt.
func CanSetReadyFuerWS(a *storage.Auftrag) bool {
	if !a.HatReadyDatei {
		return false
	}
	if strings.TrimSpace(a.CommissionNr) == "" {
		return false
	}
	if strings.TrimSpace(a.ProjektKurzname) == "" {
		return false
	}
	if strings.TrimSpace(a.KundeName) == "" {
		return false
	}
	if strings.TrimSpace(a.BlechTyp) == "" {
		return false
	}
	if strings.TrimSpace(a.Format) == "" {
		return false
	}
	if _, ok := ParseDeadline(a.Deadline); !ok {
		return false
	}
	if a.Anzahl < 1 {
		return false
	}
	return a.HatFertigungsschritt()
}

// CanSetReadyFuerTransport: jeder erforderliche Fertigungsschritt muss
// gestoppt sein und einen Lead tragen. TB zählt nicht dazu.
func CanSetReadyFuerTransport(a *storage.Auftrag) bool {
	steps := MaterializedSteps(a)
	for _, key := range storage.Fertigungsschritte {
		st := steps[key]
		if !st.Erforderlich {
			continue
		}
		if st.IsRunning || st.IsPaused {
			return false
		}
		if strings.TrimSpace(st.Lead) == "" {
			return false
		}
	}
	return true
}

func CanSetTransportGeplant(a *storage.Auftrag) bool {
	return a.Projektstatus == storage.StatusReadyFuerTranspt
}

func CanSetFertig(a *storage.Auftrag) bool {
	return a.Projektstatus == storage.StatusTransportGeplant
}

// statusErlaubt prüft die vier bewachten Vorwärts-Übergänge. Alle übrigen
// Übergänge, auch rückwärts, sind bewusst frei — die Planung muss Fehler
// korrigieren können.
func statusErlaubt(current *storage.Auftrag, ziel storage.Projektstatus, nachUpdate *storage.Auftrag) bool {
	switch ziel {
	case storage.StatusReadyFuerWS:
		// Gegen den Stand nach dem Update geprüft, damit Pflichtfelder und
		// Status in einem Schritt gesetzt werden können.
		return CanSetReadyFuerWS(nachUpdate)
	case storage.StatusReadyFuerTranspt:
		return CanSetReadyFuerTransport(current)
	case storage.StatusTransportGeplant:
		return CanSetTransportGeplant(current)
	case storage.StatusFertig:
		return CanSetFertig(current)
	}
	return true
}

// statusNachziehen trägt die Folgen eines Statuswechsels in den Auftrag ein:
// fertigAm beim Eintritt in fertig, tb.erforderlich je nach neuem Status
// (sofern die Step-Map bereits materialisiert ist).
func statusNachziehen(next *storage.Auftrag, now time.Time) {
	if next.Projektstatus == storage.StatusFertig {
		fertigAm := now
		next.FertigAm = &fertigAm
	}
	if tb, exists := next.Steps[storage.StepTB]; exists {
		tb.Erforderlich = next.Projektstatus == storage.StatusOffen ||
			next.Projektstatus == storage.StatusBearbeitungInTB
		steps := cloneSteps(next.Steps)
		steps[storage.StepTB] = tb
		next.Steps = steps
	}
}

// ApplyUpdate wendet ein partielles Update an. Scheitert der Status-Guard,
// wird das gesamte Update verworfen (ok=false). Die Deadline eines fertigen
// Auftrags bleibt fix, der Rest des Updates greift trotzdem.
func ApplyUpdate(a storage.Auftrag, u storage.AuftragUpdate, now time.Time) (storage.Auftrag, bool) {
	next := merge(a, u)

	if u.Projektstatus != nil && !statusErlaubt(&a, *u.Projektstatus, &next) {
		return a, false
	}

	if a.Projektstatus == storage.StatusFertig && u.Deadline != nil {
		next.Deadline = a.Deadline
	}
	if u.Projektstatus != nil {
		statusNachziehen(&next, now)
	}
	return next, true
}

// ApplyStatus ist der Statuswechsel aus dem Picker, ohne weitere Felder.
func ApplyStatus(a storage.Auftrag, status storage.Projektstatus, now time.Time) (storage.Auftrag, bool) {
	next := a
	next.Projektstatus = status
	if !statusErlaubt(&a, status, &next) {
		return a, false
	}
	statusNachziehen(&next, now)
	return next, true
}

func merge(a storage.Auftrag, u storage.AuftragUpdate) storage.Auftrag {
	next := a
	if u.CommissionNr != nil {
		next.CommissionNr = *u.CommissionNr
	}
	if u.Projektleiter != nil {
		next.Projektleiter = *u.Projektleiter
	}
	if u.ProjektKurzname != nil {
		next.ProjektKurzname = *u.ProjektKurzname
	}
	if u.KundeName != nil {
		next.KundeName = *u.KundeName
	}
	if u.Prio != nil {
		next.Prio = *u.Prio
	}
	if u.Projektstatus != nil {
		next.Projektstatus = *u.Projektstatus
	}
	if u.Deadline != nil {
		next.Deadline = *u.Deadline
	}
	if u.DeadlineBestaetigt != nil {
		next.DeadlineBestaetigt = *u.DeadlineBestaetigt
	}
	if u.BlechTyp != nil {
		next.BlechTyp = *u.BlechTyp
	}
	if u.Format != nil {
		next.Format = *u.Format
	}
	if u.Transport != nil {
		next.Transport = *u.Transport
	}
	if u.Anzahl != nil {
		next.Anzahl = *u.Anzahl
	}
	if u.FlaechM2 != nil {
		next.FlaechM2 = *u.FlaechM2
	}
	if u.HatOriginalDatei != nil {
		next.HatOriginalDatei = *u.HatOriginalDatei
	}
	if u.OriginalDateiName != nil {
		next.OriginalDateiName = *u.OriginalDateiName
	}
	if u.HatReadyDatei != nil {
		next.HatReadyDatei = *u.HatReadyDatei
	}
	if u.ReadyDateiName != nil {
		next.ReadyDateiName = *u.ReadyDateiName
	}
	if u.Scheren != nil {
		next.Scheren = *u.Scheren
	}
	if u.Lasern != nil {
		next.Lasern = *u.Lasern
	}
	if u.Kanten != nil {
		next.Kanten = *u.Kanten
	}
	if u.Schweissen != nil {
		next.Schweissen = *u.Schweissen
	}
	if u.Behandeln != nil {
		next.Behandeln = *u.Behandeln
	}
	if u.EckenGefeilt != nil {
		next.EckenGefeilt = *u.EckenGefeilt
	}
	if u.Steps != nil {
		next.Steps = cloneSteps(u.Steps)
	}
	if u.AenderungenDurchPlanung != nil {
		next.AenderungenDurchPlanung = *u.AenderungenDurchPlanung
	}
	return next
}

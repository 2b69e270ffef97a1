package auftrag

import (
	"math"
	"strings"
	"time"

	"next-golang/internal/storage"
)

// IsFertigungsschritt unterscheidet die Werkstatt-Schritte vom TB-Kontrollschritt.
func IsFertigungsschritt(key storage.WorkStepKey) bool {
	return key != storage.StepTB
}

// CreateStepState leitet die initiale Step-Map aus den Planungs-Flags und dem
// Projektstatus ab. Rein lesend, der Auftrag selbst wird nicht verändert —
// sie ist der Fallback für Aufträge, die noch keine Steps tragen.
func CreateStepState(a *storage.Auftrag) map[storage.WorkStepKey]storage.WorkStepState {
	steps := make(map[storage.WorkStepKey]storage.WorkStepState, len(storage.Fertigungsschritte)+1)
	steps[storage.StepTB] = storage.WorkStepState{
		Erforderlich: a.Projektstatus == storage.StatusOffen || a.Projektstatus == storage.StatusBearbeitungInTB,
	}
	for _, key := range storage.Fertigungsschritte {
		steps[key] = storage.WorkStepState{Erforderlich: a.StepFlag(key)}
	}
	return steps
}

// MaterializedSteps liefert die Step-Map des Auftrags, notfalls frisch abgeleitet.
func MaterializedSteps(a *storage.Auftrag) map[storage.WorkStepKey]storage.WorkStepState {
	if a.Steps != nil {
		return a.Steps
	}
	return CreateStepState(a)
}

func cloneSteps(steps map[storage.WorkStepKey]storage.WorkStepState) map[storage.WorkStepKey]storage.WorkStepState {
	next := make(map[storage.WorkStepKey]storage.WorkStepState, len(steps))
	for k, v := range steps {
		next[k] = v
	}
	return next
}

// addElapsed rechnet das laufende Intervall in Minuten auf totalMinutes an.
// Der Clamp auf 0 fängt verstellte Uhren ab, negative Dauer gibt es nicht.
func addElapsed(st storage.WorkStepState, now time.Time) float64 {
	if st.StartedAt == nil {
		return st.TotalMinutes
	}
	diff := now.Sub(*st.StartedAt).Minutes()
	return math.Max(0, st.TotalMinutes+diff)
}

// EffectiveMinutes ist die Anzeige-Minutenzahl: gespeicherte Minuten plus das
// laufende Intervall, ohne den Step zu verändern.
func EffectiveMinutes(st storage.WorkStepState, now time.Time) float64 {
	if st.IsRunning && st.StartedAt != nil {
		return st.TotalMinutes + now.Sub(*st.StartedAt).Minutes()
	}
	return st.TotalMinutes
}

func firstNonBlank(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

// StepAction führt start/pause/stop auf einem Step aus und liefert den neuen
// Auftrag. Abgelehnte Aktionen lassen den Auftrag unverändert (ok=false):
// Fertigungsschritte brauchen einen Lead (Parameter oder bereits am Step),
// start braucht erforderlich oder pausiert, pause braucht laufend,
// stop braucht laufend oder pausiert.
func StepAction(a storage.Auftrag, key storage.WorkStepKey, action storage.StepActionKind, lead string, now time.Time) (storage.Auftrag, bool) {
	steps := MaterializedSteps(&a)
	current, exists := steps[key]
	if !exists {
		return a, false
	}

	lead = strings.TrimSpace(lead)
	if IsFertigungsschritt(key) && lead == "" && strings.TrimSpace(current.Lead) == "" {
		return a, false
	}

	switch action {
	case storage.StepStart:
		// Nur erforderliche Schritte starten; pausierte dürfen immer weiter,
		// auch wenn sich die Planung inzwischen geändert hat.
		if !current.Erforderlich && !current.IsPaused {
			return a, false
		}
		startedAt := now
		current.IsRunning = true
		current.IsPaused = false
		current.StartedAt = &startedAt
		current.StartedBy = firstNonBlank(lead, current.Lead, current.StartedBy)

	case storage.StepPause:
		if !current.IsRunning {
			return a, false
		}
		current.TotalMinutes = addElapsed(current, now)
		current.IsRunning = false
		current.IsPaused = true
		current.StartedAt = nil
		current.PausedBy = firstNonBlank(lead, current.Lead, current.PausedBy)

	case storage.StepStop:
		if !current.IsRunning && !current.IsPaused {
			return a, false
		}
		current.TotalMinutes = addElapsed(current, now)
		current.IsRunning = false
		current.IsPaused = false
		current.StartedAt = nil
		current.StoppedBy = firstNonBlank(lead, current.Lead, current.StoppedBy)

	default:
		return a, false
	}

	next := cloneSteps(steps)
	next[key] = current
	a.Steps = next
	return a, true
}

// ToggleStep ist der Ein-Knopf-Timer der Werkstatt-Ansicht: nicht laufend →
// starten (bzw. pausiert fortsetzen), laufend → stoppen und Zeit anrechnen.
func ToggleStep(a storage.Auftrag, key storage.WorkStepKey, now time.Time) (storage.Auftrag, bool) {
	steps := MaterializedSteps(&a)
	current, exists := steps[key]
	if !exists {
		return a, false
	}
	if !current.IsRunning && !current.IsPaused && !current.Erforderlich {
		return a, false
	}

	if !current.IsRunning {
		startedAt := now
		current.IsRunning = true
		current.IsPaused = false
		current.StartedAt = &startedAt
	} else {
		current.TotalMinutes = addElapsed(current, now)
		current.IsRunning = false
		current.IsPaused = false
		current.StartedAt = nil
	}

	next := cloneSteps(steps)
	next[key] = current
	a.Steps = next
	return a, true
}

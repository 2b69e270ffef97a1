package auftrag

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"next-golang/internal/storage"
)

func bereitFuerWS() storage.Auftrag {
	return storage.Auftrag{
		ID:              1,
		HatReadyDatei:   true,
		CommissionNr:    "1234",
		ProjektKurzname: "X",
		KundeName:       "Y",
		BlechTyp:        "Z",
		Format:          "A1",
		Deadline:        "2026-01-01T10:00",
		Anzahl:          5,
		Scheren:         true,
	}
}

func TestCanSetReadyFuerWS(t *testing.T) {
	a := bereitFuerWS()
	assert.True(t, CanSetReadyFuerWS(&a))

	cases := []struct {
		name   string
		mutate func(a *storage.Auftrag)
	}{
		{"ohne Ready-Datei", func(a *storage.Auftrag) { a.HatReadyDatei = false }},
		{"Commission leer", func(a *storage.Auftrag) { a.CommissionNr = "  " }},
		{"Kurzname leer", func(a *storage.Auftrag) { a.ProjektKurzname = "" }},
		{"Kunde leer", func(a *storage.Auftrag) { a.KundeName = "" }},
		{"Blechtyp leer", func(a *storage.Auftrag) { a.BlechTyp = "" }},
		{"Format leer", func(a *storage.Auftrag) { a.Format = "" }},
		{"Deadline unlesbar", func(a *storage.Auftrag) { a.Deadline = "irgendwann" }},
		{"Anzahl null", func(a *storage.Auftrag) { a.Anzahl = 0 }},
		{"kein Fertigungsschritt", func(a *storage.Auftrag) { a.Scheren = false }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			a := bereitFuerWS()
			tc.mutate(&a)
			assert.False(t, CanSetReadyFuerWS(&a))
		})
	}
}

func TestCanSetReadyFuerTransport(t *testing.T) {
	a := storage.Auftrag{
		Projektstatus: storage.StatusBearbeitungInWS,
		Scheren:       true,
	}

	// scheren läuft noch
	a, _ = StepAction(a, storage.StepScheren, storage.StepStart, "mifi", testNow)
	assert.False(t, CanSetReadyFuerTransport(&a))

	// gestoppt, aber ohne Lead am Step: weiterhin nein
	a, _ = StepAction(a, storage.StepScheren, storage.StepStop, "mifi", testNow.Add(time.Minute))
	assert.False(t, CanSetReadyFuerTransport(&a))

	st := a.Steps[storage.StepScheren]
	st.Lead = "mifi"
	a.Steps[storage.StepScheren] = st
	assert.True(t, CanSetReadyFuerTransport(&a))

	// pausiert zählt nicht als gestoppt
	a, _ = StepAction(a, storage.StepScheren, storage.StepStart, "mifi", testNow.Add(2*time.Minute))
	a, _ = StepAction(a, storage.StepScheren, storage.StepPause, "mifi", testNow.Add(3*time.Minute))
	assert.False(t, CanSetReadyFuerTransport(&a))
}

// Ohne erforderliche Fertigungsschritte ist der Guard trivial erfüllt
func TestCanSetReadyFuerTransport_KeineSchritte(t *testing.T) {
	a := storage.Auftrag{Projektstatus: storage.StatusBearbeitungInWS}
	assert.True(t, CanSetReadyFuerTransport(&a))
}

func TestCanSetTransportGeplantUndFertig(t *testing.T) {
	for _, status := range storage.AlleStati {
		a := storage.Auftrag{Projektstatus: status}
		assert.Equal(t, status == storage.StatusReadyFuerTranspt, CanSetTransportGeplant(&a), "status %s", status)
		assert.Equal(t, status == storage.StatusTransportGeplant, CanSetFertig(&a), "status %s", status)
	}
}

func TestApplyStatus_FertigStempeltFertigAm(t *testing.T) {
	a := storage.Auftrag{Projektstatus: storage.StatusTransportGeplant}

	next, applied := ApplyStatus(a, storage.StatusFertig, testNow)
	assert.True(t, applied)
	assert.Equal(t, storage.StatusFertig, next.Projektstatus)
	assert.NotNil(t, next.FertigAm)
	assert.Equal(t, testNow, *next.FertigAm)
}

func TestApplyStatus_GuardLehntAb(t *testing.T) {
	a := storage.Auftrag{Projektstatus: storage.StatusOffen}

	next, applied := ApplyStatus(a, storage.StatusFertig, testNow)
	assert.False(t, applied)
	assert.Equal(t, a, next)
	assert.Nil(t, next.FertigAm)
}

// Rückwärts und seitwärts bleibt alles frei
func TestApplyStatus_RueckwaertsErlaubt(t *testing.T) {
	a := storage.Auftrag{Projektstatus: storage.StatusFertig}

	next, applied := ApplyStatus(a, storage.StatusOffen, testNow)
	assert.True(t, applied)
	assert.Equal(t, storage.StatusOffen, next.Projektstatus)
}

func TestApplyStatus_TBErforderlichNachziehen(t *testing.T) {
	a := storage.Auftrag{Projektstatus: storage.StatusOffen}
	a.Steps = CreateStepState(&a)
	assert.True(t, a.Steps[storage.StepTB].Erforderlich)

	next, applied := ApplyStatus(a, storage.StatusReadyFuerWS, testNow)
	// kein Ready-File: Guard lehnt ab, tb bleibt unangetastet
	assert.False(t, applied)
	assert.True(t, next.Steps[storage.StepTB].Erforderlich)

	next, applied = ApplyStatus(a, storage.StatusBearbeitungInWS, testNow)
	assert.True(t, applied)
	assert.False(t, next.Steps[storage.StepTB].Erforderlich)

	zurueck, applied := ApplyStatus(next, storage.StatusBearbeitungInTB, testNow)
	assert.True(t, applied)
	assert.True(t, zurueck.Steps[storage.StepTB].Erforderlich)
}

func TestApplyUpdate_GuardVerwirftGanzesUpdate(t *testing.T) {
	a := storage.Auftrag{
		Projektstatus: storage.StatusOffen,
		KundeName:     "Alt",
	}
	a.Steps = CreateStepState(&a)

	kunde := "Neu"
	status := storage.StatusFertig
	next, applied := ApplyUpdate(a, storage.AuftragUpdate{
		KundeName:     &kunde,
		Projektstatus: &status,
	}, testNow)

	assert.False(t, applied)
	assert.Equal(t, "Alt", next.KundeName)
	assert.Nil(t, next.FertigAm)
	assert.True(t, next.Steps[storage.StepTB].Erforderlich)
}

// Felder und Status in einem Update: Ready für WS prüft den Stand nach dem Merge
func TestApplyUpdate_ReadyFuerWSMitFeldern(t *testing.T) {
	a := bereitFuerWS()
	a.Projektstatus = storage.StatusBearbeitungInTB
	a.KundeName = ""

	status := storage.StatusReadyFuerWS
	_, applied := ApplyUpdate(a, storage.AuftragUpdate{Projektstatus: &status}, testNow)
	assert.False(t, applied)

	kunde := "Y"
	next, applied := ApplyUpdate(a, storage.AuftragUpdate{
		KundeName:     &kunde,
		Projektstatus: &status,
	}, testNow)
	assert.True(t, applied)
	assert.Equal(t, storage.StatusReadyFuerWS, next.Projektstatus)
}

// Deadline eines fertigen Auftrags ist fix, der Rest des Updates greift
func TestApplyUpdate_DeadlineFixNachFertig(t *testing.T) {
	a := storage.Auftrag{
		Projektstatus: storage.StatusFertig,
		Deadline:      "2026-01-01T10:00",
		KundeName:     "Alt",
	}

	deadline := "2027-06-01T08:00"
	kunde := "Neu"
	next, applied := ApplyUpdate(a, storage.AuftragUpdate{
		Deadline:  &deadline,
		KundeName: &kunde,
	}, testNow)

	assert.True(t, applied)
	assert.Equal(t, "2026-01-01T10:00", next.Deadline)
	assert.Equal(t, "Neu", next.KundeName)
}

func TestParseDeadline(t *testing.T) {
	_, ok := ParseDeadline("2026-01-01T10:00")
	assert.True(t, ok)
	_, ok = ParseDeadline("2026-01-01")
	assert.True(t, ok)
	_, ok = ParseDeadline("morgen")
	assert.False(t, ok)
}

func TestFormatDateTimeCH(t *testing.T) {
	assert.Equal(t, "20.02.2026, 16:00", FormatDateTimeCH("2026-02-20T16:00"))
	// unlesbar: Rohwert zurück
	assert.Equal(t, "morgen", FormatDateTimeCH("morgen"))
}

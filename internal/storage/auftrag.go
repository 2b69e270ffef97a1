package storage

import "time"

type Projektstatus string

const (
	StatusOffen            Projektstatus = "offen"
	StatusBearbeitungInTB  Projektstatus = "Bearbeitung in TB"
	StatusReadyFuerWS      Projektstatus = "Ready für WS"
	StatusBearbeitungInWS  Projektstatus = "Bearbeitung in WS"
	StatusReadyFuerTranspt Projektstatus = "Ready für Transport"
	StatusTransportGeplant Projektstatus = "Transport geplant"
	StatusFertig           Projektstatus = "fertig"
)

var AlleStati = []Projektstatus{
	StatusOffen,
	StatusBearbeitungInTB,
	StatusReadyFuerWS,
	StatusBearbeitungInWS,
	StatusReadyFuerTranspt,
	StatusTransportGeplant,
	StatusFertig,
}

type TransportOption string

const (
	TransportKeiner            TransportOption = "Kein Transport"
	TransportZwingenBirsfelden TransportOption = "Transport Zwingen-Birsfelden"
	TransportBirsfeldenZwingen TransportOption = "Transport Birsfelden-Zwingen"
	TransportZuKunde           TransportOption = "Transport zu Kunde"
)

// Projektleiter-Kürzel, tbd = noch nicht zugewiesen
type Projektleiter string

const (
	LeiterRero Projektleiter = "rero"
	LeiterNiro Projektleiter = "niro"
	LeiterAlja Projektleiter = "alja"
	LeiterTbd  Projektleiter = "tbd"
)

type WorkStepKey string

const (
	StepTB           WorkStepKey = "tb"
	StepScheren      WorkStepKey = "scheren"
	StepLasern       WorkStepKey = "lasern"
	StepKanten       WorkStepKey = "kanten"
	StepSchweissen   WorkStepKey = "schweissen"
	StepBehandeln    WorkStepKey = "behandeln"
	StepEckenGefeilt WorkStepKey = "eckenGefeilt"
)

// Fertigungsschritte ohne den TB-Kontrollschritt, in Board-Reihenfolge.
var Fertigungsschritte = []WorkStepKey{
	StepScheren,
	StepLasern,
	StepKanten,
	StepSchweissen,
	StepBehandeln,
	StepEckenGefeilt,
}

var WorkStepLabels = map[WorkStepKey]string{
	StepTB:           "TB",
	StepScheren:      "Scheren",
	StepLasern:       "Lasern",
	StepKanten:       "Kanten",
	StepSchweissen:   "Schweissen",
	StepBehandeln:    "Behandeln",
	StepEckenGefeilt: "Ecken gefeilt",
}

type WorkStepState struct {
	Erforderlich bool       `json:"erforderlich"`
	IsRunning    bool       `json:"isRunning"`
	IsPaused     bool       `json:"isPaused"`
	StartedAt    *time.Time `json:"startedAt,omitempty"`
	TotalMinutes float64    `json:"totalMinutes"`
	// Lead-Mitarbeiter (4-Buchstaben-Kürzel, z.B. mifi, kaku)
	Lead      string `json:"lead,omitempty"`
	StartedBy string `json:"startedBy,omitempty"`
	PausedBy  string `json:"pausedBy,omitempty"`
	StoppedBy string `json:"stoppedBy,omitempty"`
}

type Auftrag struct {
	ID                 int             `json:"id"`
	CommissionNr       string          `json:"commissionNr"`
	Projektleiter      Projektleiter   `json:"projektleiter"`
	ProjektKurzname    string          `json:"projektKurzname"`
	KundeName          string          `json:"kundeName"`
	Prio               int             `json:"prio"`
	Projektstatus      Projektstatus   `json:"projektstatus"`
	Deadline           string          `json:"deadline"`
	DeadlineBestaetigt bool            `json:"deadlineBestaetigt"`
	FertigAm           *time.Time      `json:"fertigAm,omitempty"`
	BlechTyp           string          `json:"blechTyp"`
	Format             string          `json:"format"`
	Transport          TransportOption `json:"transport"`
	Anzahl             int             `json:"anzahl"`
	FlaechM2           float64         `json:"flaechM2"`

	// Datei-Infos, die Bytes selbst liegen im DateiStore
	HatOriginalDatei  bool   `json:"hatOriginalDatei"`
	OriginalDateiName string `json:"originalDateiName,omitempty"`
	HatReadyDatei     bool   `json:"hatReadyDatei"`
	ReadyDateiName    string `json:"readyDateiName,omitempty"`

	// geplante Fertigungsschritte
	Scheren      bool `json:"scheren"`
	Lasern       bool `json:"lasern"`
	Kanten       bool `json:"kanten"`
	Schweissen   bool `json:"schweissen"`
	Behandeln    bool `json:"behandeln"`
	EckenGefeilt bool `json:"eckenGefeilt"`

	Steps map[WorkStepKey]WorkStepState `json:"steps,omitempty"`

	// true wenn Planung Änderungen gemacht hat, während das Projekt in Bearbeitung in WS war
	AenderungenDurchPlanung bool `json:"aenderungenDurchPlanung,omitempty"`
}

// StepFlag liefert das Planungs-Flag eines Fertigungsschritts.
func (a *Auftrag) StepFlag(key WorkStepKey) bool {
	switch key {
	case StepScheren:
		return a.Scheren
	case StepLasern:
		return a.Lasern
	case StepKanten:
		return a.Kanten
	case StepSchweissen:
		return a.Schweissen
	case StepBehandeln:
		return a.Behandeln
	case StepEckenGefeilt:
		return a.EckenGefeilt
	}
	return false
}

func (a *Auftrag) HatFertigungsschritt() bool {
	return a.Scheren || a.Lasern || a.Kanten || a.Schweissen || a.Behandeln || a.EckenGefeilt
}

// NeuerAuftrag ist die Eingabe der Planung beim Erfassen eines Auftrags.
type NeuerAuftrag struct {
	CommissionNr       string          `json:"commissionNr"`
	Projektleiter      Projektleiter   `json:"projektleiter"`
	ProjektKurzname    string          `json:"projektKurzname"`
	KundeName          string          `json:"kundeName"`
	Prio               int             `json:"prio"`
	Projektstatus      Projektstatus   `json:"projektstatus"`
	Deadline           string          `json:"deadline"`
	DeadlineBestaetigt bool            `json:"deadlineBestaetigt"`
	BlechTyp           string          `json:"blechTyp"`
	Format             string          `json:"format"`
	Transport          TransportOption `json:"transport"`
	Anzahl             int             `json:"anzahl"`
	FlaechM2           float64         `json:"flaechM2"`
	Scheren            bool            `json:"scheren"`
	Lasern             bool            `json:"lasern"`
	Kanten             bool            `json:"kanten"`
	Schweissen         bool            `json:"schweissen"`
	Behandeln          bool            `json:"behandeln"`
	EckenGefeilt       bool            `json:"eckenGefeilt"`
}

// AuftragUpdate trägt ein partielles Update, nil-Felder bleiben unberührt.
type AuftragUpdate struct {
	CommissionNr       *string          `json:"commissionNr"`
	Projektleiter      *Projektleiter   `json:"projektleiter"`
	ProjektKurzname    *string          `json:"projektKurzname"`
	KundeName          *string          `json:"kundeName"`
	Prio               *int             `json:"prio"`
	Projektstatus      *Projektstatus   `json:"projektstatus"`
	Deadline           *string          `json:"deadline"`
	DeadlineBestaetigt *bool            `json:"deadlineBestaetigt"`
	BlechTyp           *string          `json:"blechTyp"`
	Format             *string          `json:"format"`
	Transport          *TransportOption `json:"transport"`
	Anzahl             *int             `json:"anzahl"`
	FlaechM2           *float64         `json:"flaechM2"`
	HatOriginalDatei   *bool            `json:"hatOriginalDatei"`
	OriginalDateiName  *string          `json:"originalDateiName"`
	HatReadyDatei      *bool            `json:"hatReadyDatei"`
	ReadyDateiName     *string          `json:"readyDateiName"`
	Scheren            *bool            `json:"scheren"`
	Lasern             *bool            `json:"lasern"`
	Kanten             *bool            `json:"kanten"`
	Schweissen         *bool            `json:"schweissen"`
	Behandeln          *bool            `json:"behandeln"`
	EckenGefeilt       *bool            `json:"eckenGefeilt"`

	// Ersetzt die komplette Step-Map, z.B. beim Setzen des Leads. nil = unberührt.
	Steps map[WorkStepKey]WorkStepState `json:"steps"`

	AenderungenDurchPlanung *bool `json:"aenderungenDurchPlanung"`
}

type StepActionKind string

const (
	StepStart StepActionKind = "start"
	StepPause StepActionKind = "pause"
	StepStop  StepActionKind = "stop"
)

// DateiEintrag hält die hochgeladenen Pläne eines Auftrags.
type DateiEintrag struct {
	Original []byte
	Ready    []byte
}

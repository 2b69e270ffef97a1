package storage

type BenutzerRolle string

const (
	RolleAdmin            BenutzerRolle = "Admin"
	RolleProjektleiter    BenutzerRolle = "Projektleiter"
	RolleTechnischesBuero BenutzerRolle = "Technisches Büro"
	RolleWerkstatt        BenutzerRolle = "Werkstatt"
)

var BenutzerRollen = []BenutzerRolle{
	RolleAdmin,
	RolleProjektleiter,
	RolleTechnischesBuero,
	RolleWerkstatt,
}

type Benutzer struct {
	ID       int           `json:"id"`
	Vorname  string        `json:"vorname"`
	Nachname string        `json:"nachname"`
	Email    string        `json:"email"`
	Rolle    BenutzerRolle `json:"rolle"`
}

// NeuerBenutzer ist die Eingabe der Benutzerverwaltung, die ID vergibt der Store.
type NeuerBenutzer struct {
	Vorname  string        `json:"vorname"`
	Nachname string        `json:"nachname"`
	Email    string        `json:"email"`
	Rolle    BenutzerRolle `json:"rolle"`
}

// BenutzerUpdate trägt ein partielles Update, nil-Felder bleiben unberührt.
type BenutzerUpdate struct {
	Vorname  *string        `json:"vorname"`
	Nachname *string        `json:"nachname"`
	Email    *string        `json:"email"`
	Rolle    *BenutzerRolle `json:"rolle"`
}

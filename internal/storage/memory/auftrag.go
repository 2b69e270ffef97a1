package memory

import (
	"context"
	"sort"
	"strings"

	service "next-golang/internal/service/auftrag"
	"next-golang/internal/storage"
)

// Frühe Stati, in denen ein Auftrag noch gelöscht werden darf.
var loeschbareStati = []storage.Projektstatus{
	storage.StatusOffen,
	storage.StatusBearbeitungInTB,
	storage.StatusReadyFuerWS,
}

func kopie(a storage.Auftrag) storage.Auftrag {
	next := a
	if a.Steps != nil {
		steps := make(map[storage.WorkStepKey]storage.WorkStepState, len(a.Steps))
		for k, v := range a.Steps {
			steps[k] = v
		}
		next.Steps = steps
	}
	return next
}

// lesekopie materialisiert die Step-Map, damit Views nie mit fehlenden
// Steps umgehen müssen.
func lesekopie(a storage.Auftrag) storage.Auftrag {
	next := kopie(a)
	if next.Steps == nil {
		next.Steps = service.CreateStepState(&next)
	}
	return next
}

func (s *Storage) index(id int) int {
	for i := range s.auftraege {
		if s.auftraege[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Storage) nextAuftragID() int {
	max := 0
	for i := range s.auftraege {
		if s.auftraege[i].ID > max {
			max = s.auftraege[i].ID
		}
	}
	return max + 1
}

// sortiere ordnet nach Prio aufsteigend, bei gleicher Prio nach ID.
func (s *Storage) sortiere() {
	sort.SliceStable(s.auftraege, func(i, j int) bool {
		if s.auftraege[i].Prio == s.auftraege[j].Prio {
			return s.auftraege[i].ID < s.auftraege[j].ID
		}
		return s.auftraege[i].Prio < s.auftraege[j].Prio
	})
}

func (s *Storage) GetAuftraege(ctx context.Context) ([]storage.Auftrag, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]storage.Auftrag, 0, len(s.auftraege))
	for _, a := range s.auftraege {
		result = append(result, lesekopie(a))
	}
	return result, nil
}

func (s *Storage) GetAuftrag(ctx context.Context, id int) (storage.Auftrag, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.index(id)
	if i < 0 {
		return storage.Auftrag{}, storage.ErrAuftragNotFound
	}
	return lesekopie(s.auftraege[i]), nil
}

func (s *Storage) SaveAuftrag(ctx context.Context, neu storage.NeuerAuftrag) (storage.Auftrag, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	base := service.FormatCommissionNr(strings.TrimSpace(neu.CommissionNr))
	created := storage.Auftrag{
		ID:                 s.nextAuftragID(),
		CommissionNr:       service.CommissionNrWithSuffix(base, s.auftraege, 0),
		Projektleiter:      neu.Projektleiter,
		ProjektKurzname:    strings.TrimSpace(neu.ProjektKurzname),
		KundeName:          strings.TrimSpace(neu.KundeName),
		Prio:               neu.Prio,
		Projektstatus:      neu.Projektstatus,
		Deadline:           neu.Deadline,
		DeadlineBestaetigt: neu.DeadlineBestaetigt,
		BlechTyp:           strings.TrimSpace(neu.BlechTyp),
		Format:             strings.TrimSpace(neu.Format),
		Transport:          neu.Transport,
		Anzahl:             neu.Anzahl,
		FlaechM2:           neu.FlaechM2,
		Scheren:            neu.Scheren,
		Lasern:             neu.Lasern,
		Kanten:             neu.Kanten,
		Schweissen:         neu.Schweissen,
		Behandeln:          neu.Behandeln,
		EckenGefeilt:       neu.EckenGefeilt,
	}

	s.auftraege = append(s.auftraege, created)
	s.sortiere()
	return lesekopie(created), nil
}

// CopyAuftrag dupliziert einen Auftrag: neue ID, neues Commission-Suffix,
// Dateien und Step-Zustand werden nicht übernommen.
func (s *Storage) CopyAuftrag(ctx context.Context, id int) (storage.Auftrag, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.index(id)
	if i < 0 {
		return storage.Auftrag{}, storage.ErrAuftragNotFound
	}

	original := s.auftraege[i]
	dupe := original
	dupe.ID = s.nextAuftragID()
	dupe.HatOriginalDatei = false
	dupe.OriginalDateiName = ""
	dupe.HatReadyDatei = false
	dupe.ReadyDateiName = ""
	dupe.Steps = nil
	dupe.FertigAm = nil
	dupe.AenderungenDurchPlanung = false

	base := service.BaseCommissionNr(original.CommissionNr)
	dupe.CommissionNr = service.CommissionNrWithSuffix(base, s.auftraege, 0)

	s.auftraege = append(s.auftraege, dupe)
	s.sortiere()
	return lesekopie(dupe), nil
}

// UpdateAuftrag wendet ein partielles Update an. applied=false heisst: ein
// Status-Guard hat das komplette Update verworfen, der Auftrag ist unverändert.
func (s *Storage) UpdateAuftrag(ctx context.Context, id int, upd storage.AuftragUpdate) (storage.Auftrag, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updateLocked(id, upd, false)
}

// UpdateAuftragVonPlanung ist das Update aus der Planungsansicht: es
// normalisiert eine geänderte Commission-Nr und markiert den Auftrag als
// von der Planung angefasst, wenn die Werkstatt ihn gerade bearbeitet.
func (s *Storage) UpdateAuftragVonPlanung(ctx context.Context, id int, upd storage.AuftragUpdate) (storage.Auftrag, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updateLocked(id, upd, true)
}

func (s *Storage) updateLocked(id int, upd storage.AuftragUpdate, vonPlanung bool) (storage.Auftrag, bool, error) {
	i := s.index(id)
	if i < 0 {
		return storage.Auftrag{}, false, storage.ErrAuftragNotFound
	}
	existing := s.auftraege[i]

	if vonPlanung && upd.CommissionNr != nil {
		base := service.FormatCommissionNr(strings.TrimSpace(*upd.CommissionNr))
		if base == service.BaseCommissionNr(existing.CommissionNr) {
			// Basis unverändert: bestehendes Suffix behalten
			upd.CommissionNr = nil
		} else {
			nr := service.CommissionNrWithSuffix(base, s.auftraege, id)
			upd.CommissionNr = &nr
		}
	}

	next, applied := service.ApplyUpdate(kopie(existing), upd, s.now())
	if !applied {
		return lesekopie(existing), false, nil
	}

	if vonPlanung && existing.Projektstatus == storage.StatusBearbeitungInWS {
		next.AenderungenDurchPlanung = true
	}

	s.auftraege[i] = next
	s.sortiere()
	return lesekopie(next), true, nil
}

func (s *Storage) UpdateProjektstatus(ctx context.Context, id int, status storage.Projektstatus) (storage.Auftrag, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.index(id)
	if i < 0 {
		return storage.Auftrag{}, false, storage.ErrAuftragNotFound
	}

	next, applied := service.ApplyStatus(kopie(s.auftraege[i]), status, s.now())
	if !applied {
		return lesekopie(s.auftraege[i]), false, nil
	}
	s.auftraege[i] = next
	return lesekopie(next), true, nil
}

func (s *Storage) StepAction(ctx context.Context, id int, key storage.WorkStepKey, action storage.StepActionKind, lead string) (storage.Auftrag, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.index(id)
	if i < 0 {
		return storage.Auftrag{}, false, storage.ErrAuftragNotFound
	}

	next, applied := service.StepAction(kopie(s.auftraege[i]), key, action, lead, s.now())
	if !applied {
		return lesekopie(s.auftraege[i]), false, nil
	}
	s.auftraege[i] = next
	return lesekopie(next), true, nil
}

func (s *Storage) ToggleStep(ctx context.Context, id int, key storage.WorkStepKey) (storage.Auftrag, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.index(id)
	if i < 0 {
		return storage.Auftrag{}, false, storage.ErrAuftragNotFound
	}

	next, applied := service.ToggleStep(kopie(s.auftraege[i]), key, s.now())
	if !applied {
		return lesekopie(s.auftraege[i]), false, nil
	}
	s.auftraege[i] = next
	return lesekopie(next), true, nil
}

// ChangePrio verschiebt die Priorität um delta (Untergrenze 1) und sortiert
// die Liste neu, damit die Zeile im Board mitwandert.
func (s *Storage) ChangePrio(ctx context.Context, id int, delta int) (storage.Auftrag, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.index(id)
	if i < 0 {
		return storage.Auftrag{}, storage.ErrAuftragNotFound
	}

	next := kopie(s.auftraege[i])
	next.Prio = next.Prio + delta
	if next.Prio < 1 {
		next.Prio = 1
	}
	if next.Projektstatus == storage.StatusBearbeitungInWS {
		next.AenderungenDurchPlanung = true
	}
	s.auftraege[i] = next
	s.sortiere()
	return lesekopie(next), nil
}

// ReplaceAuftraege ersetzt die komplette Liste, z.B. nach einer Umsortierung
// im Frontend.
func (s *Storage) ReplaceAuftraege(ctx context.Context, auftraege []storage.Auftrag) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]storage.Auftrag, 0, len(auftraege))
	for _, a := range auftraege {
		next = append(next, kopie(a))
	}
	s.auftraege = next
	return nil
}

// DeleteAuftrag entfernt einen Auftrag samt Dateien, aber nur in frühen Stati.
func (s *Storage) DeleteAuftrag(ctx context.Context, id int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.index(id)
	if i < 0 {
		return false, storage.ErrAuftragNotFound
	}

	deletable := false
	for _, status := range loeschbareStati {
		if s.auftraege[i].Projektstatus == status {
			deletable = true
			break
		}
	}
	if !deletable {
		return false, nil
	}

	s.auftraege = append(s.auftraege[:i], s.auftraege[i+1:]...)
	delete(s.dateien, id)
	return true, nil
}

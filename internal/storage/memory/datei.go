package memory

import (
	"context"

	service "next-golang/internal/service/auftrag"
	"next-golang/internal/storage"
)

// AddOriginalDatei legt den Original-Plan ab und setzt die Datei-Flags
// am Auftrag. Läuft der Auftrag gerade in der Werkstatt, wird er als von
// der Planung angefasst markiert.
func (s *Storage) AddOriginalDatei(ctx context.Context, id int, name string, data []byte) (storage.Auftrag, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.index(id)
	if i < 0 {
		return storage.Auftrag{}, storage.ErrAuftragNotFound
	}

	eintrag := s.dateien[id]
	eintrag.Original = data
	s.dateien[id] = eintrag

	hat := true
	a, _, err := s.updateLocked(id, storage.AuftragUpdate{
		HatOriginalDatei:  &hat,
		OriginalDateiName: &name,
	}, true)
	return a, err
}

// AddReadyDatei legt den Ready-Plan ab. Erfüllt der Auftrag damit alle
// Bedingungen für die Werkstatt, wird der Status im selben Zug auf
// "Ready für WS" gehoben.
func (s *Storage) AddReadyDatei(ctx context.Context, id int, name string, data []byte) (storage.Auftrag, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.index(id)
	if i < 0 {
		return storage.Auftrag{}, storage.ErrAuftragNotFound
	}

	eintrag := s.dateien[id]
	eintrag.Ready = data
	s.dateien[id] = eintrag

	hat := true
	upd := storage.AuftragUpdate{
		HatReadyDatei:  &hat,
		ReadyDateiName: &name,
	}

	mitDatei := kopie(s.auftraege[i])
	mitDatei.HatReadyDatei = true
	if service.CanSetReadyFuerWS(&mitDatei) {
		status := storage.StatusReadyFuerWS
		upd.Projektstatus = &status
	}

	a, _, err := s.updateLocked(id, upd, true)
	return a, err
}

func (s *Storage) GetDatei(ctx context.Context, id int) (storage.DateiEintrag, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	eintrag, exists := s.dateien[id]
	if !exists {
		return storage.DateiEintrag{}, storage.ErrDateiNotFound
	}
	return eintrag, nil
}

package memory

import (
	"context"

	"next-golang/internal/storage"
)

func (s *Storage) GetBenutzer(ctx context.Context) ([]storage.Benutzer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]storage.Benutzer, len(s.benutzer))
	copy(result, s.benutzer)
	return result, nil
}

func (s *Storage) SaveBenutzer(ctx context.Context, neu storage.NeuerBenutzer) (storage.Benutzer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	max := 0
	for _, b := range s.benutzer {
		if b.ID > max {
			max = b.ID
		}
	}
	created := storage.Benutzer{
		ID:       max + 1,
		Vorname:  neu.Vorname,
		Nachname: neu.Nachname,
		Email:    neu.Email,
		Rolle:    neu.Rolle,
	}
	s.benutzer = append(s.benutzer, created)
	return created, nil
}

func (s *Storage) UpdateBenutzer(ctx context.Context, id int, upd storage.BenutzerUpdate) (storage.Benutzer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.benutzer {
		if s.benutzer[i].ID != id {
			continue
		}
		if upd.Vorname != nil {
			s.benutzer[i].Vorname = *upd.Vorname
		}
		if upd.Nachname != nil {
			s.benutzer[i].Nachname = *upd.Nachname
		}
		if upd.Email != nil {
			s.benutzer[i].Email = *upd.Email
		}
		if upd.Rolle != nil {
			s.benutzer[i].Rolle = *upd.Rolle
		}
		return s.benutzer[i], nil
	}
	return storage.Benutzer{}, storage.ErrBenutzerNotFound
}

func (s *Storage) DeleteBenutzer(ctx context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.benutzer {
		if s.benutzer[i].ID == id {
			s.benutzer = append(s.benutzer[:i], s.benutzer[i+1:]...)
			return nil
		}
	}
	return storage.ErrBenutzerNotFound
}

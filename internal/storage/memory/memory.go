package memory

import (
	"sync"
	"time"

	"next-golang/internal/storage"
)

// Storage hält den kompletten Zustand des Boards im Prozessspeicher:
// die Auftragsliste, die hochgeladenen Dateien und die Benutzer. Nichts
// davon überlebt einen Neustart, das ist so gewollt. Der Mutex serialisiert
// die Handler-Goroutinen, inhaltlich gilt last-writer-wins wie im Frontend.
type Storage struct {
	mu        sync.RWMutex
	auftraege []storage.Auftrag
	dateien   map[int]storage.DateiEintrag
	benutzer  []storage.Benutzer

	// now ist austauschbar, damit Tests mit fixer Uhr laufen können.
	now func() time.Time
}

func New() *Storage {
	return &Storage{
		dateien: make(map[int]storage.DateiEintrag),
		benutzer: []storage.Benutzer{
			{ID: 1, Vorname: "Max", Nachname: "Muster", Email: "max.muster@example.ch", Rolle: storage.RolleAdmin},
			{ID: 2, Vorname: "Anna", Nachname: "Beispiel", Email: "anna.beispiel@example.ch", Rolle: storage.RolleProjektleiter},
		},
		now: time.Now,
	}
}

// SetClock ersetzt die Uhr des Stores, nur für Tests gedacht.
func (s *Storage) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

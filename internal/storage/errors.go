package storage

import "errors"

var (
	ErrAuftragNotFound  = errors.New("auftrag not found")
	ErrBenutzerNotFound = errors.New("benutzer not found")
	ErrDateiNotFound    = errors.New("datei not found")
)

package report

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/xuri/excelize/v2"
	"golang.org/x/sync/errgroup"

	auftragsvc "next-golang/internal/service/auftrag"
	"next-golang/internal/storage"
)

type AuswertungStorage interface {
	GetAuftraege(ctx context.Context) ([]storage.Auftrag, error)
	GetBenutzer(ctx context.Context) ([]storage.Benutzer, error)
}

type AuswertungService struct {
	storage AuswertungStorage
}

func NewAuswertungService(storage AuswertungStorage) *AuswertungService {
	return &AuswertungService{storage: storage}
}

// kuerzel bildet das 4-Buchstaben-Kürzel eines Benutzers (mifi = Michael
// Fischer), mit dem die Werkstatt ihre Leads einträgt.
func kuerzel(b storage.Benutzer) string {
	vor := strings.ToLower(b.Vorname)
	nach := strings.ToLower(b.Nachname)
	if len(vor) > 2 {
		vor = vor[:2]
	}
	if len(nach) > 2 {
		nach = nach[:2]
	}
	return vor + nach
}

// GenerateExcel exportiert alle fertigen Aufträge mit den erfassten
// Minuten pro Arbeitsschritt, neueste Deadline zuoberst.
func (g *AuswertungService) GenerateExcel(ctx context.Context) ([]byte, error) {
	var (
		auftraege []storage.Auftrag
		benutzer  []storage.Benutzer
	)

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		var err error
		auftraege, err = g.storage.GetAuftraege(egCtx)
		return err
	})
	eg.Go(func() error {
		var err error
		benutzer, err = g.storage.GetBenutzer(egCtx)
		return err
	})
	if err := eg.Wait(); err != nil {
		return nil, fmt.Errorf("fetch data: %w", err)
	}

	fertige := make([]storage.Auftrag, 0, len(auftraege))
	for _, a := range auftraege {
		if a.Projektstatus == storage.StatusFertig {
			fertige = append(fertige, a)
		}
	}
	sort.SliceStable(fertige, func(i, j int) bool {
		di, okI := auftragsvc.ParseDeadline(fertige[i].Deadline)
		dj, okJ := auftragsvc.ParseDeadline(fertige[j].Deadline)
		if !okI || !okJ {
			return okI
		}
		return di.After(dj)
	})

	leadNamen := make(map[string]string, len(benutzer))
	for _, b := range benutzer {
		leadNamen[kuerzel(b)] = b.Vorname + " " + b.Nachname
	}

	f := excelize.NewFile()
	defer f.Close()
	sheet := "Auswertung"
	f.SetSheetName("Sheet1", sheet)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true},
		Fill:   excelize.Fill{Type: "pattern", Color: []string{"E0E0E0"}, Pattern: 1},
		Border: []excelize.Border{{Type: "bottom", Color: "000000", Style: 2}},
	})

	baseHeaders := []string{
		"Commission", "Projekt", "Kunde", "Projektleiter", "Deadline",
		"Fertig am", "Anzahl", "Fläche m²",
	}
	stepKeys := append([]storage.WorkStepKey{storage.StepTB}, storage.Fertigungsschritte...)

	for i, name := range baseHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, name)
	}
	baseLen := len(baseHeaders)
	for i, key := range stepKeys {
		cell, _ := excelize.CoordinatesToCellName(baseLen+i+1, 1)
		f.SetCellValue(sheet, cell, storage.WorkStepLabels[key])
	}
	totalCol := baseLen + len(stepKeys) + 1
	cell, _ := excelize.CoordinatesToCellName(totalCol, 1)
	f.SetCellValue(sheet, cell, "Total")

	lastCol, _ := excelize.CoordinatesToCellName(totalCol, 1)
	f.SetCellStyle(sheet, "A1", lastCol, headerStyle)

	for rowIdx, a := range fertige {
		rowNum := rowIdx + 2

		fertigAm := ""
		if a.FertigAm != nil {
			fertigAm = a.FertigAm.Format("02.01.2006, 15:04")
		}

		f.SetCellValue(sheet, cellName(1, rowNum), auftragsvc.CommissionNrDisplay(a.CommissionNr))
		f.SetCellValue(sheet, cellName(2, rowNum), a.ProjektKurzname)
		f.SetCellValue(sheet, cellName(3, rowNum), a.KundeName)
		f.SetCellValue(sheet, cellName(4, rowNum), leiterName(a.Projektleiter, leadNamen))
		f.SetCellValue(sheet, cellName(5, rowNum), auftragsvc.FormatDateTimeCH(a.Deadline))
		f.SetCellValue(sheet, cellName(6, rowNum), fertigAm)
		f.SetCellValue(sheet, cellName(7, rowNum), a.Anzahl)
		f.SetCellValue(sheet, cellName(8, rowNum), a.FlaechM2)

		total := 0.0
		for i, key := range stepKeys {
			st := a.Steps[key]
			col := baseLen + i + 1
			if st.Erforderlich || st.TotalMinutes > 0 {
				f.SetCellValue(sheet, cellName(col, rowNum), auftragsvc.FormatMinutes(st.TotalMinutes))
				total += st.TotalMinutes
			}
		}
		f.SetCellValue(sheet, cellName(totalCol, rowNum), auftragsvc.FormatMinutes(total))
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write excel: %w", err)
	}
	return buf.Bytes(), nil
}

func leiterName(leiter storage.Projektleiter, leadNamen map[string]string) string {
	if name, exists := leadNamen[string(leiter)]; exists {
		return fmt.Sprintf("%s (%s)", leiter, name)
	}
	return string(leiter)
}

func cellName(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}

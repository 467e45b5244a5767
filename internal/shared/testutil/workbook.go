package testutil

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/paulaandreaia-bit/Dashboard-transformacion/pkg/contracts/domain"
)

// WriteWorkbook saves a single-sheet workbook with the given header and rows.
// Nil cells are left empty.
func WriteWorkbook(t *testing.T, path, sheetName string, header []string, rows [][]interface{}) {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	require.NoError(t, f.SetSheetName(f.GetSheetName(0), sheetName))

	for c, h := range header {
		cell, err := excelize.CoordinatesToCellName(c+1, 1)
		require.NoError(t, err)
		require.NoError(t, f.SetCellValue(sheetName, cell, h))
	}
	for r, row := range rows {
		for c, v := range row {
			if v == nil {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue(sheetName, cell, v))
		}
	}
	require.NoError(t, f.SaveAs(path))
}

// InterventionRow builds a row in domain.InterventionColumns order. Phase,
// cohort, municipality and the four indicators get fixed values.
func InterventionRow(program, sector, gender, topic string, year int, hours interface{}, taxID, company, person interface{}) []interface{} {
	return []interface{}{
		program, "Fase 1", 1, year, "ARMENIA", sector, gender, topic,
		hours, 0.8, 0.1, 0.5, 0.4, taxID, company, person,
	}
}

// SampleSources writes a small interventions workbook and a workshops
// workbook into dir and returns their paths.
func SampleSources(t *testing.T, dir string) (interventions, workshops string) {
	t.Helper()
	interventions = filepath.Join(dir, "interventions.xlsx")
	WriteWorkbook(t, interventions, "Datos", domain.InterventionColumns, [][]interface{}{
		InterventionRow("ZASCA", "Textiles", "FEMENINO", "Ventas", 2023, 4, "900111", "Acme SAS", nil),
		InterventionRow("ZASCA", "Textiles", "FEMENINO", "Marketing", 2024, 3, "900111", "Acme SAS", nil),
		InterventionRow("ZASCA", "NAN", "MASCULINO", "Ventas", 2024, 2, "900222", "Beta Ltda", nil),
		InterventionRow("Fábricas", "Turismo", "FEMENINO", "Finanzas", 2024, 1.5, nil, nil, "Ana Pérez"),
	})

	workshops = filepath.Join(dir, "workshops.xlsx")
	WriteWorkbook(t, workshops, "Talleres", domain.WorkshopColumns, [][]interface{}{
		{"Marketing digital", 30, 4, "15 de marzo de 2024"},
		{"Finanzas", 45, 3, "2024-04-02"},
	})
	return interventions, workshops
}

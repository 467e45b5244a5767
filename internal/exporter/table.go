package exporter

import (
	"github.com/paulaandreaia-bit/Dashboard-transformacion/pkg/contracts/domain"
)

// Table is a sheet-shaped view of export data. Nil cells stay empty.
type Table struct {
	Name    string
	Headers []string
	Rows    [][]interface{}
}

// Sheet names used by the exported workbooks.
const (
	SheetData         = "Datos"
	SheetTopCompanies = "Top Empresas"
	SheetSummary      = "Resumen"
	SheetBreakdowns   = "Distribuciones"
	SheetHistogram    = "Intervenciones por Empresa"
	SheetWorkshops    = "Talleres"
)

// CompanyTableHeaders are the column titles of the top-companies table.
var CompanyTableHeaders = []string{
	"#", "Empresa", "Intervenciones", "Total Horas", "Municipio", "Sector", "Programas",
}

// InterventionsTable lays out records in source column order.
func InterventionsTable(records []domain.InterventionRecord) Table {
	t := Table{Name: SheetData, Headers: domain.InterventionColumns}
	t.Rows = make([][]interface{}, len(records))
	for i := range records {
		r := &records[i]
		t.Rows[i] = []interface{}{
			r.Program, strCell(r.Phase), strCell(r.Cohort), intCell(r.ExecutionYear),
			strCell(r.Municipality), strCell(r.Sector), strCell(r.Gender), r.Topic,
			floatCell(r.ConsultingHours), floatCell(r.SatisfactionIndicator), floatCell(r.SalesIndicator),
			floatCell(r.TechProcessesIndicator), floatCell(r.OnlinePresenceIndicator),
			strCell(r.TaxID), strCell(r.CompanyName), strCell(r.PersonName),
		}
	}
	return t
}

// CompanyTable lays out the ranked company rows.
func CompanyTable(rows []domain.CompanyTableRow) Table {
	t := Table{Name: SheetTopCompanies, Headers: CompanyTableHeaders}
	t.Rows = make([][]interface{}, len(rows))
	for i, r := range rows {
		t.Rows[i] = []interface{}{
			r.Rank, strCell(r.Company), r.Interventions, r.TotalHours,
			strCell(r.Municipality), strCell(r.Sector), r.Programs,
		}
	}
	return t
}

// SummaryTable lists the headline metrics and the applied filters.
func SummaryTable(d *domain.Dashboard) Table {
	t := Table{Name: SheetSummary, Headers: []string{"Métrica", "Valor"}}
	add := func(k string, v interface{}) { t.Rows = append(t.Rows, []interface{}{k, v}) }

	add("Total intervenciones", d.Summary.TotalInterventions)
	add("Empresas únicas", d.Summary.DistinctCompanies)
	add("Municipios", d.Summary.Municipalities)
	add("Corregimientos", d.Summary.Corregimientos)
	add("Sectores atendidos", d.Summary.SectorsServed)
	add("Horas de consultoría", d.Summary.TotalConsultingHours)
	add("Empresas con 1 intervención", d.Profile.Single.Companies)
	add("Empresas recurrentes (5+)", d.Profile.Recurring.Companies)
	add("Empresas altamente activas (10+)", d.Profile.HighlyActive.Companies)
	if s := d.Indicators.Satisfaction; s != nil {
		add("Satisfacción promedio", s.Average)
		add("Altamente satisfechas (%)", s.HighlySatisfiedShare)
	}
	if s := d.Indicators.Sales; s != nil {
		add("Empresas que mejoraron ventas", s.Improved)
	}
	if g := d.Indicators.TechProcesses; g != nil {
		add("Procesos tecnológicos promedio", g.Average)
	}
	if g := d.Indicators.OnlinePresence; g != nil {
		add("Presencia en línea promedio", g.Average)
	}
	for _, dim := range domain.FilterDimensions {
		add("Filtro "+string(dim), joinValues(d.Filters[dim]))
	}
	return t
}

// BreakdownsTable stacks the categorical breakdowns as (series, category,
// count, percent) rows.
func BreakdownsTable(b domain.Breakdowns) Table {
	t := Table{Name: SheetBreakdowns, Headers: []string{"Serie", "Categoría", "Cantidad", "Porcentaje"}}
	counts := func(series string, cs []domain.CategoryCount) {
		for _, c := range cs {
			t.Rows = append(t.Rows, []interface{}{series, c.Category, c.Count, c.Percent})
		}
	}
	values := func(series string, vs []domain.CategoryValue) {
		for _, v := range vs {
			t.Rows = append(t.Rows, []interface{}{series, v.Category, v.Value, v.Percent})
		}
	}
	counts("Tema", b.Topics)
	counts("Género", b.Gender)
	counts("Municipio", b.Municipalities)
	counts("Programa", b.Programs)
	counts("Top sectores", b.TopSectors)
	values("Horas por tema", b.HoursByTopic)
	values("Promedio horas por tema", b.AverageHoursByTopic)
	counts("Empresas por municipio", b.CompaniesByMunicipality)
	counts("Empresas por sector", b.CompaniesBySector)
	for _, y := range b.InterventionsByYear {
		t.Rows = append(t.Rows, []interface{}{"Año", y.Year, y.Count, nil})
	}
	return t
}

// HistogramTable lists the company histogram bins.
func HistogramTable(bins []domain.HistogramBin) Table {
	t := Table{Name: SheetHistogram, Headers: []string{"Rango", "Empresas"}}
	for _, b := range bins {
		t.Rows = append(t.Rows, []interface{}{b.Label, b.Companies})
	}
	return t
}

// WorkshopsTable lists participants per workshop topic.
func WorkshopsTable(s *domain.WorkshopSummary) Table {
	t := Table{Name: SheetWorkshops, Headers: []string{"Tema", "Participantes", "Porcentaje"}}
	if s == nil {
		return t
	}
	for _, v := range s.ParticipantsByTopic {
		t.Rows = append(t.Rows, []interface{}{v.Category, v.Value, v.Percent})
	}
	return t
}

func strCell(s *string) interface{} {
	if s == nil {
		return nil
	}
	return *s
}

func intCell(i *int) interface{} {
	if i == nil {
		return nil
	}
	return *i
}

func floatCell(f *float64) interface{} {
	if f == nil {
		return nil
	}
	return *f
}

package domain

// Source column names of the interventions workbook.
const (
	ColProgram         = "Programa"
	ColPhase           = "Fase"
	ColCohort          = "Cohorte"
	ColExecutionYear   = "Año_Ejecución"
	ColMunicipality    = "Municipio"
	ColSector          = "Sector"
	ColGender          = "Género"
	ColTopic           = "Tema"
	ColConsultingHours = "No_horas_de_consultoría"
	ColSatisfaction    = "Indicador_satisfacción"
	ColSales           = "Indicador_ventas"
	ColTechProcesses   = "Indicador_procesos_tecnologicos"
	ColOnlinePresence  = "Indicador_presencia_en_linea"
	ColTaxID           = "Nit"
	ColCompanyName     = "Nombre_de_la_empresa"
	ColPersonName      = "Nombre"
)

// InterventionColumns lists every column the interventions loader maps, in
// source order. Exports reuse the same order.
var InterventionColumns = []string{
	ColProgram, ColPhase, ColCohort, ColExecutionYear, ColMunicipality,
	ColSector, ColGender, ColTopic, ColConsultingHours, ColSatisfaction,
	ColSales, ColTechProcesses, ColOnlinePresence, ColTaxID, ColCompanyName,
	ColPersonName,
}

// InterventionRecord is one consulting engagement delivered to a company
// under a program. Nil pointers mean the source cell was absent or could
// not be coerced.
type InterventionRecord struct {
	Program       string  `json:"program"`
	Phase         *string `json:"phase"`
	Cohort        *string `json:"cohort"`
	ExecutionYear *int    `json:"execution_year"`
	Municipality  *string `json:"municipality"`
	Sector        *string `json:"sector"`
	Gender        *string `json:"gender"`
	Topic         string  `json:"topic"`

	ConsultingHours *float64 `json:"consulting_hours"`

	SatisfactionIndicator   *float64 `json:"satisfaction_indicator"`
	SalesIndicator          *float64 `json:"sales_indicator"`
	TechProcessesIndicator  *float64 `json:"tech_processes_indicator"`
	OnlinePresenceIndicator *float64 `json:"online_presence_indicator"`

	TaxID       *string `json:"tax_id"`
	CompanyName *string `json:"company_name"`
	PersonName  *string `json:"person_name"`

	// CompanyID is derived once at load time from TaxID, CompanyName and
	// PersonName and must not be recomputed afterwards.
	CompanyID *string `json:"company_id"`
}

// DisplayName returns the name shown for the record's company: the company
// name if present, otherwise the person name. The tax id is never a display
// name.
func (r *InterventionRecord) DisplayName() *string {
	if r.CompanyName != nil {
		return r.CompanyName
	}
	return r.PersonName
}

// StringPtr returns a pointer to s.
func StringPtr(s string) *string { return &s }

// IntPtr returns a pointer to i.
func IntPtr(i int) *int { return &i }

// Float64Ptr returns a pointer to f.
func Float64Ptr(f float64) *float64 { return &f }

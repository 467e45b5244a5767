package analytics

import (
	"fmt"

	"github.com/paulaandreaia-bit/Dashboard-transformacion/pkg/contracts/domain"
)

// rec is a compact builder for intervention records in tests.
type rec struct {
	program, phase, cohort, municipality, sector, gender, topic string
	year                                                        int
	hours                                                       *float64
	taxID, company, person                                      string
}

func str(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func f64(v float64) *float64 { return &v }

func (r rec) build() domain.InterventionRecord {
	out := domain.InterventionRecord{
		Program:         r.program,
		Phase:           str(r.phase),
		Cohort:          str(r.cohort),
		Municipality:    str(r.municipality),
		Sector:          str(r.sector),
		Gender:          str(r.gender),
		Topic:           r.topic,
		ConsultingHours: r.hours,
		TaxID:           str(r.taxID),
		CompanyName:     str(r.company),
		PersonName:      str(r.person),
	}
	if r.year != 0 {
		out.ExecutionYear = domain.IntPtr(r.year)
	}
	for _, v := range []*string{out.TaxID, out.CompanyName, out.PersonName} {
		if v != nil {
			id := *v
			out.CompanyID = &id
			break
		}
	}
	return out
}

func build(rs ...rec) []domain.InterventionRecord {
	out := make([]domain.InterventionRecord, len(rs))
	for i, r := range rs {
		out[i] = r.build()
	}
	return out
}

// sampleTable is a varied table used by the property tests.
func sampleTable() []domain.InterventionRecord {
	programs := []string{"ZASCA", "Fábricas de Productividad", "Transformación Digital"}
	phases := []string{"Fase 1", "Fase 2", ""}
	cohorts := []string{"1", "2", "3", ""}
	municipalities := []string{"ARMENIA", "CALARCA", "BARCELONA", "MONTENEGRO", ""}
	sectors := []string{"Textiles", "Turismo", "NAN", "Comercio", ""}
	genders := []string{"FEMENINO", "MASCULINO", "NO APLICA"}
	topics := []string{"Ventas", "Marketing", "Finanzas", ""}

	var out []domain.InterventionRecord
	for i := 0; i < 120; i++ {
		r := rec{
			program:      programs[i%len(programs)],
			phase:        phases[i%len(phases)],
			cohort:       cohorts[(i/2)%len(cohorts)],
			municipality: municipalities[(i/3)%len(municipalities)],
			sector:       sectors[(i/5)%len(sectors)],
			gender:       genders[(i/7)%len(genders)],
			topic:        topics[i%len(topics)],
			year:         2021 + i%4,
			hours:        f64(float64(i%9) + 0.5),
			company:      fmt.Sprintf("Empresa %d", i%17),
		}
		if i%4 == 0 {
			r.taxID = fmt.Sprintf("900%03d", i%13)
		}
		if i%11 == 0 {
			r.company = ""
			r.person = fmt.Sprintf("Persona %d", i%3)
		}
		out = append(out, r.build())
	}
	return out
}

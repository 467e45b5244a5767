package dataprocessing

import "github.com/paulaandreaia-bit/Dashboard-transformacion/pkg/contracts/domain"

type identityField func(*domain.InterventionRecord) *string

// identityChain is evaluated left to right; the first present field wins.
var identityChain = []identityField{
	func(r *domain.InterventionRecord) *string { return r.TaxID },
	func(r *domain.InterventionRecord) *string { return r.CompanyName },
	func(r *domain.InterventionRecord) *string { return r.PersonName },
}

// ResolveCompanyID returns the record's company key: the tax id, else the
// company name, else the person name. It returns nil when all three are
// absent, and such records take no part in company-keyed aggregations.
func ResolveCompanyID(r *domain.InterventionRecord) *string {
	for _, field := range identityChain {
		if v := field(r); v != nil {
			id := *v
			return &id
		}
	}
	return nil
}

// AssignCompanyIDs stamps every record with its resolved company key.
func AssignCompanyIDs(records []domain.InterventionRecord) {
	for i := range records {
		records[i].CompanyID = ResolveCompanyID(&records[i])
	}
}

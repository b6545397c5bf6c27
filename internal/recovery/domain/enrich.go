package domain

import "time"

// UnknownPatientName is used when a bill's visit cannot be resolved.
const UnknownPatientName = "Unknown"

// Enrich joins bills with their visit and patient rows and derives status,
// age and aging bucket for each. Input order is preserved and inputs are
// never mutated. Missing joins fall back to sentinel values.
func Enrich(bills []RawBill, visits []RawVisit, patients []RawPatient, now time.Time) []EnrichedBill {
	visitsByID := make(map[string]RawVisit, len(visits))
	for _, v := range visits {
		visitsByID[v.VisitID] = v
	}
	namesByPatient := make(map[string]string, len(patients))
	for _, p := range patients {
		namesByPatient[p.ID] = p.Name
	}

	enriched := make([]EnrichedBill, 0, len(bills))
	for _, b := range bills {
		e := EnrichedBill{
			RawBill:     b,
			PatientName: UnknownPatientName,
		}
		if e.PayerType == "" {
			e.PayerType = DefaultPayerType
		}
		if v, ok := visitsByID[b.VisitID]; ok {
			e.PatientID = v.PatientID
			e.ClaimID = v.ClaimID
			if name, ok := namesByPatient[v.PatientID]; ok {
				e.PatientName = name
			}
		}

		e.BillAgeDays = DaysSince(b.DateOfSubmission, now)
		e.OverdueDays = DaysOverdue(b.ExpectedPaymentDate, now)
		e.AgingBucket = AgingBucketFor(e.OverdueDays)
		e.Status = ClassifyStatus(StatusInput{
			InfoQuery:           b.InfoQuery,
			InfoQueryAnsweredAt: b.InfoQueryAnsweredAt,
			ReceivedDate:        b.ReceivedDate,
			ReceivedAmount:      b.ReceivedAmount,
			BillAmount:          b.BillAmount,
			OverdueDays:         e.OverdueDays,
		})

		enriched = append(enriched, e)
	}
	return enriched
}

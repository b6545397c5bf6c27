package domain

import "sort"

// ByPayer groups bills by payer type and accumulates per-payer totals,
// sorted descending by total amount. Bills without a resolvable visit still
// count toward amounts but are excluded from the distinct patient count.
func ByPayer(bills []RawBill, visits []RawVisit) []PayerSummary {
	patientByVisit := make(map[string]string, len(visits))
	for _, v := range visits {
		patientByVisit[v.VisitID] = v.PatientID
	}

	summaries := make(map[string]*PayerSummary)
	patients := make(map[string]map[string]struct{})

	for _, b := range bills {
		payer := b.PayerType
		if payer == "" {
			payer = DefaultPayerType
		}
		s := summaries[payer]
		if s == nil {
			s = &PayerSummary{PayerType: payer}
			summaries[payer] = s
			patients[payer] = make(map[string]struct{})
		}

		s.TotalBills++
		s.TotalAmount += b.BillAmount

		if b.ReceivedDate != nil {
			s.ReceivedCount++
			if b.ReceivedAmount != nil {
				s.ReceivedAmount += *b.ReceivedAmount
			}
		} else {
			s.PendingCount++
			s.PendingAmount += b.BillAmount
		}

		if hasInfoQuery(b) {
			s.NMICount++
		}

		if patientID, ok := patientByVisit[b.VisitID]; ok && patientID != "" {
			patients[payer][patientID] = struct{}{}
		}
	}

	out := make([]PayerSummary, 0, len(summaries))
	for payer, s := range summaries {
		s.PatientCount = len(patients[payer])
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].TotalAmount != out[j].TotalAmount {
			return out[i].TotalAmount > out[j].TotalAmount
		}
		return out[i].PayerType < out[j].PayerType
	})
	return out
}

// Summarize reduces the full bill set into one hospital-wide metrics object.
// The pending/received partition is binary on receipt date presence, and the
// info-query count includes answered queries (unlike the nmi status).
func Summarize(bills []RawBill) RecoverySummary {
	var s RecoverySummary
	for _, b := range bills {
		s.TotalBills++
		s.TotalAmount += b.BillAmount
		if b.DeductionAmount != nil {
			s.DeductionAmount += *b.DeductionAmount
		}
		if hasInfoQuery(b) {
			s.NMICount++
		}

		if b.ReceivedDate != nil {
			s.ReceivedBills++
			if b.ReceivedAmount != nil {
				s.ReceivedAmount += *b.ReceivedAmount
			}
		} else {
			s.PendingBills++
			s.PendingAmount += b.BillAmount
		}
	}
	return s
}

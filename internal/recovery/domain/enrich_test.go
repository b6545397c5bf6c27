package domain

import (
	"reflect"
	"testing"
)

func testFixtures() ([]RawBill, []RawVisit, []RawPatient) {
	claimID := "CLM-801"
	bills := []RawBill{
		{
			ID:                  "b1",
			VisitID:             "v1",
			BillAmount:          10000,
			ExpectedPaymentDate: daysAgo(45),
			PayerType:           "ESIC Mumbai",
		},
		{
			ID:             "b2",
			VisitID:        "v2",
			BillAmount:     20000,
			ReceivedAmount: amount(20000),
			ReceivedDate:   daysAgo(3),
			PayerType:      "CGHS",
		},
		{
			ID:         "b3",
			VisitID:    "missing-visit",
			BillAmount: 5000,
		},
	}
	visits := []RawVisit{
		{VisitID: "v1", PatientID: "p1", ClaimID: &claimID},
		{VisitID: "v2", PatientID: "p2"},
	}
	patients := []RawPatient{
		{ID: "p1", Name: "Mumbai Shah"},
		{ID: "p2", Name: "Asha Patil"},
	}
	return bills, visits, patients
}

func TestEnrichJoinsAndDerives(t *testing.T) {
	bills, visits, patients := testFixtures()
	out := Enrich(bills, visits, patients, testNow)
	if len(out) != 3 {
		t.Fatalf("got %d bills, want 3", len(out))
	}

	b1 := out[0]
	if b1.PatientName != "Mumbai Shah" || b1.PatientID != "p1" {
		t.Fatalf("b1 join: got %q/%q", b1.PatientName, b1.PatientID)
	}
	if b1.ClaimID == nil || *b1.ClaimID != "CLM-801" {
		t.Fatalf("b1 claim id not joined")
	}
	if b1.OverdueDays != 45 || b1.AgingBucket != AgingBucket31To60 || b1.Status != BillStatusOverdue {
		t.Fatalf("b1 derivation: days=%d bucket=%q status=%q", b1.OverdueDays, b1.AgingBucket, b1.Status)
	}

	b2 := out[1]
	if b2.Status != BillStatusReceived {
		t.Fatalf("b2 status: got %q", b2.Status)
	}
	if b2.OverdueDays != 0 || b2.AgingBucket != AgingBucketNone {
		t.Fatalf("b2 aging: days=%d bucket=%q", b2.OverdueDays, b2.AgingBucket)
	}
}

func TestEnrichUnresolvableVisit(t *testing.T) {
	bills, visits, patients := testFixtures()
	out := Enrich(bills, visits, patients, testNow)

	b3 := out[2]
	if b3.PatientName != UnknownPatientName || b3.PatientID != "" || b3.ClaimID != nil {
		t.Fatalf("missing join fallback: name=%q id=%q claim=%v", b3.PatientName, b3.PatientID, b3.ClaimID)
	}
	if b3.PayerType != DefaultPayerType {
		t.Fatalf("empty payer should default to %q, got %q", DefaultPayerType, b3.PayerType)
	}
	if b3.Status != BillStatusPending {
		t.Fatalf("b3 status: got %q", b3.Status)
	}
}

func TestEnrichDoesNotMutateInput(t *testing.T) {
	bills, visits, patients := testFixtures()
	before := make([]RawBill, len(bills))
	copy(before, bills)

	Enrich(bills, visits, patients, testNow)

	if !reflect.DeepEqual(before, bills) {
		t.Fatal("Enrich mutated its input slice")
	}
}

func TestEnrichIdempotent(t *testing.T) {
	bills, visits, patients := testFixtures()
	first := Enrich(bills, visits, patients, testNow)
	second := Enrich(bills, visits, patients, testNow)
	if !reflect.DeepEqual(first, second) {
		t.Fatal("repeated enrichment with the same now diverged")
	}
}

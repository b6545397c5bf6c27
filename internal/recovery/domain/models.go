package domain

import "time"

// BillStatus is the derived lifecycle state of a claim bill.
type BillStatus string

const (
	BillStatusPending  BillStatus = "pending"
	BillStatusReceived BillStatus = "received"
	BillStatusPartial  BillStatus = "partial"
	BillStatusNMI      BillStatus = "nmi"
	BillStatusOverdue  BillStatus = "overdue"
)

// DefaultPayerType is used when a bill carries no payer identifier.
const DefaultPayerType = "private"

// AgingBucket labels how long a bill has been past its expected payment date.
type AgingBucket string

const (
	AgingBucketNone     AgingBucket = "-"
	AgingBucket0To30    AgingBucket = "0-30"
	AgingBucket31To60   AgingBucket = "31-60"
	AgingBucket61To90   AgingBucket = "61-90"
	AgingBucket91To180  AgingBucket = "91-180"
	AgingBucket181To365 AgingBucket = "181-365"
	AgingBucketOver365  AgingBucket = "365+"
)

// RawBill is a claim bill as supplied by the store. Amounts are in paise.
// Optional fields are nil/empty when the payer has not reported them yet.
type RawBill struct {
	ID                  string     `json:"id"`
	VisitID             string     `json:"visit_id"`
	BillAmount          int64      `json:"bill_amount"`
	ExpectedAmount      *int64     `json:"expected_amount,omitempty"`
	ReceivedAmount      *int64     `json:"received_amount,omitempty"`
	DeductionAmount     *int64     `json:"deduction_amount,omitempty"`
	DateOfSubmission    *time.Time `json:"date_of_submission,omitempty"`
	ExpectedPaymentDate *time.Time `json:"expected_payment_date,omitempty"`
	ReceivedDate        *time.Time `json:"received_date,omitempty"`
	InfoQuery           string     `json:"info_query,omitempty"`
	InfoQueryAnsweredAt *time.Time `json:"info_query_answered_at,omitempty"`
	PayerType           string     `json:"payer_type"`
}

// RawVisit links a bill's visit to a patient and an optional payer claim.
type RawVisit struct {
	VisitID   string  `json:"visit_id"`
	PatientID string  `json:"patient_id"`
	ClaimID   *string `json:"claim_id,omitempty"`
}

// RawPatient is the minimal patient identity needed for display.
type RawPatient struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// EnrichedBill is a RawBill joined with patient identity and the derived
// status, age and aging bucket.
type EnrichedBill struct {
	RawBill

	PatientName string  `json:"patient_name"`
	PatientID   string  `json:"patient_id"`
	ClaimID     *string `json:"claim_id,omitempty"`

	Status      BillStatus  `json:"status"`
	BillAgeDays int         `json:"bill_age_days"`
	OverdueDays int         `json:"overdue_days"`
	AgingBucket AgingBucket `json:"aging_bucket"`
}

// PayerSummary aggregates one payer's bills. The pending/received split is
// coarser than BillStatus: presence of a received date decides the side.
type PayerSummary struct {
	PayerType      string `json:"payer_type"`
	TotalBills     int    `json:"total_bills"`
	TotalAmount    int64  `json:"total_amount"`
	PendingCount   int    `json:"pending_count"`
	ReceivedCount  int    `json:"received_count"`
	PendingAmount  int64  `json:"pending_amount"`
	ReceivedAmount int64  `json:"received_amount"`
	PatientCount   int    `json:"patient_count"`
	NMICount       int    `json:"nmi_count"`
}

// RecoverySummary is the hospital-wide metrics object behind the dashboard
// cards. It is recomputed on every request and never persisted.
type RecoverySummary struct {
	TotalBills      int   `json:"total_bills"`
	TotalAmount     int64 `json:"total_amount"`
	PendingBills    int   `json:"pending_bills"`
	PendingAmount   int64 `json:"pending_amount"`
	ReceivedBills   int   `json:"received_bills"`
	ReceivedAmount  int64 `json:"received_amount"`
	DeductionAmount int64 `json:"deduction_amount"`
	NMICount        int   `json:"nmi_count"`
}

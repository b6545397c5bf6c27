package domain

import (
	"context"
	"time"
)

// BillInput is one claim row arriving through the create or import
// endpoints. Import rows come pre-structured from the external extraction
// step; Metadata keeps the raw payload for later inspection.
type BillInput struct {
	PatientName         string         `json:"patient_name"`
	ClaimID             *string        `json:"claim_id"`
	PayerType           string         `json:"payer_type"`
	BillAmount          int64          `json:"bill_amount"`
	ExpectedAmount      *int64         `json:"expected_amount"`
	DateOfSubmission    *time.Time     `json:"date_of_submission"`
	ExpectedPaymentDate *time.Time     `json:"expected_payment_date"`
	AdmittedAt          *time.Time     `json:"admitted_at"`
	Metadata            map[string]any `json:"metadata"`
}

// UpdateBillRequest patches payment progress onto an existing bill. Nil
// fields are left untouched.
type UpdateBillRequest struct {
	ReceivedAmount      *int64     `json:"received_amount"`
	ReceivedDate        *time.Time `json:"received_date"`
	DeductionAmount     *int64     `json:"deduction_amount"`
	ExpectedAmount      *int64     `json:"expected_amount"`
	ExpectedPaymentDate *time.Time `json:"expected_payment_date"`
	InfoQuery           *string    `json:"info_query"`
	InfoQueryAnsweredAt *time.Time `json:"info_query_answered_at"`
	PayerType           *string    `json:"payer_type"`
}

// ImportResult reports how many rows an import stored.
type ImportResult struct {
	Created int `json:"created"`
}

// Service covers the claim mutations. Reads go through the recovery
// service instead.
type Service interface {
	Create(ctx context.Context, input BillInput) (*Bill, error)
	Import(ctx context.Context, inputs []BillInput) (ImportResult, error)
	Update(ctx context.Context, id string, req UpdateBillRequest) (*Bill, error)
}

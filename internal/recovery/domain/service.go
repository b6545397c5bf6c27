package domain

import (
	"context"
	"errors"
)

// ListBillsRequest filters and windows the enriched bill list.
type ListBillsRequest struct {
	PayerType string
	Status    string
	Search    string
	Limit     int
	Offset    int
}

// ListBillsResponse is one page of enriched bills plus the filtered total.
type ListBillsResponse struct {
	Bills  []EnrichedBill `json:"bills"`
	Count  int            `json:"count"`
	Limit  int            `json:"limit"`
	Offset int            `json:"offset"`
}

// PayerSummariesResponse lists per-payer aggregates for the summary cards.
type PayerSummariesResponse struct {
	Payers []PayerSummary `json:"payers"`
}

// SummaryResponse wraps the hospital-wide recovery metrics.
type SummaryResponse struct {
	Summary RecoverySummary `json:"summary"`
}

// Service exposes the recovery dashboard reads.
type Service interface {
	ListBills(ctx context.Context, req ListBillsRequest) (ListBillsResponse, error)
	PayerSummaries(ctx context.Context) (PayerSummariesResponse, error)
	Summary(ctx context.Context) (SummaryResponse, error)
}

var (
	ErrInvalidHospital = errors.New("invalid_hospital")
	ErrInvalidStatus   = errors.New("invalid_status")
	ErrInvalidLimit    = errors.New("invalid_limit")
	ErrInvalidOffset   = errors.New("invalid_offset")
)

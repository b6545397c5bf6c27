package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
)

// Repository loads and mutates the claim records the derivation pipeline
// reads. Persistence mechanics stay behind this interface; the pipeline
// itself never issues writes.
type Repository interface {
	ListBills(ctx context.Context, hospitalID snowflake.ID) ([]Bill, error)
	ListVisits(ctx context.Context, hospitalID snowflake.ID) ([]Visit, error)
	ListPatients(ctx context.Context, hospitalID snowflake.ID) ([]Patient, error)

	GetBill(ctx context.Context, hospitalID, id snowflake.ID) (*Bill, error)
	CreateBill(ctx context.Context, bill *Bill) error
	CreateBills(ctx context.Context, bills []Bill) error
	UpdateBill(ctx context.Context, bill *Bill) error
}

var (
	ErrBillNotFound    = errors.New("bill_not_found")
	ErrInvalidBillID   = errors.New("invalid_bill_id")
	ErrInvalidAmount   = errors.New("invalid_amount")
	ErrInvalidVisit    = errors.New("invalid_visit")
	ErrInvalidPatient  = errors.New("invalid_patient")
	ErrInvalidHospital = errors.New("invalid_hospital")
	ErrEmptyImport     = errors.New("empty_import")
)

package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"

	recoverydomain "github.com/zerorisk/claimledger/internal/recovery/domain"
)

// Bill is a submitted claim bill. Monetary columns are in paise. Metadata
// holds the raw extraction payload for rows imported from scanned bills.
type Bill struct {
	ID                  snowflake.ID      `gorm:"primaryKey"`
	HospitalID          snowflake.ID      `gorm:"not null;index"`
	VisitID             snowflake.ID      `gorm:"not null;index"`
	BillAmount          int64             `gorm:"not null"`
	ExpectedAmount      *int64            `gorm:"column:expected_amount"`
	ReceivedAmount      *int64            `gorm:"column:received_amount"`
	DeductionAmount     *int64            `gorm:"column:deduction_amount"`
	DateOfSubmission    *time.Time        `gorm:"column:date_of_submission"`
	ExpectedPaymentDate *time.Time        `gorm:"column:expected_payment_date;index"`
	ReceivedDate        *time.Time        `gorm:"column:received_date"`
	InfoQuery           *string           `gorm:"column:info_query;type:text"`
	InfoQueryAnsweredAt *time.Time        `gorm:"column:info_query_answered_at"`
	PayerType           string            `gorm:"type:text;not null;default:'';index"`
	Metadata            datatypes.JSONMap `gorm:"type:jsonb"`
	CreatedAt           time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt           time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (Bill) TableName() string { return "bills" }

// Visit links a bill to a patient and an optional payer claim reference.
type Visit struct {
	ID         snowflake.ID `gorm:"primaryKey"`
	HospitalID snowflake.ID `gorm:"not null;index"`
	PatientID  snowflake.ID `gorm:"not null;index"`
	ClaimID    *string      `gorm:"column:claim_id;type:text"`
	AdmittedAt *time.Time   `gorm:"column:admitted_at"`
	CreatedAt  time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (Visit) TableName() string { return "visits" }

// Patient is the identity record joined into the bills table view.
type Patient struct {
	ID         snowflake.ID `gorm:"primaryKey"`
	HospitalID snowflake.ID `gorm:"not null;index"`
	Name       string       `gorm:"type:text;not null"`
	CreatedAt  time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (Patient) TableName() string { return "patients" }

// ToRaw converts a stored bill into the derivation pipeline's input record.
// An empty or whitespace info query column becomes the no-query sentinel.
func (b Bill) ToRaw() recoverydomain.RawBill {
	raw := recoverydomain.RawBill{
		ID:                  b.ID.String(),
		VisitID:             b.VisitID.String(),
		BillAmount:          b.BillAmount,
		ExpectedAmount:      b.ExpectedAmount,
		ReceivedAmount:      b.ReceivedAmount,
		DeductionAmount:     b.DeductionAmount,
		DateOfSubmission:    b.DateOfSubmission,
		ExpectedPaymentDate: b.ExpectedPaymentDate,
		ReceivedDate:        b.ReceivedDate,
		InfoQueryAnsweredAt: b.InfoQueryAnsweredAt,
		PayerType:           b.PayerType,
	}
	if b.InfoQuery != nil {
		raw.InfoQuery = *b.InfoQuery
	}
	return raw
}

// ToRaw converts a stored visit into the pipeline's join record.
func (v Visit) ToRaw() recoverydomain.RawVisit {
	return recoverydomain.RawVisit{
		VisitID:   v.ID.String(),
		PatientID: v.PatientID.String(),
		ClaimID:   v.ClaimID,
	}
}

// ToRaw converts a stored patient into the pipeline's identity record.
func (p Patient) ToRaw() recoverydomain.RawPatient {
	return recoverydomain.RawPatient{
		ID:   p.ID.String(),
		Name: p.Name,
	}
}

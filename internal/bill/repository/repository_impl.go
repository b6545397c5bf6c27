package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"

	billdomain "github.com/zerorisk/claimledger/internal/bill/domain"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) billdomain.Repository {
	return &Repository{db: db}
}

func (r *Repository) ListBills(ctx context.Context, hospitalID snowflake.ID) ([]billdomain.Bill, error) {
	var bills []billdomain.Bill
	err := r.db.WithContext(ctx).
		Where("hospital_id = ?", hospitalID).
		Order("created_at ASC, id ASC").
		Find(&bills).Error
	if err != nil {
		return nil, err
	}
	return bills, nil
}

func (r *Repository) ListVisits(ctx context.Context, hospitalID snowflake.ID) ([]billdomain.Visit, error) {
	var visits []billdomain.Visit
	err := r.db.WithContext(ctx).
		Where("hospital_id = ?", hospitalID).
		Find(&visits).Error
	if err != nil {
		return nil, err
	}
	return visits, nil
}

func (r *Repository) ListPatients(ctx context.Context, hospitalID snowflake.ID) ([]billdomain.Patient, error) {
	var patients []billdomain.Patient
	err := r.db.WithContext(ctx).
		Where("hospital_id = ?", hospitalID).
		Find(&patients).Error
	if err != nil {
		return nil, err
	}
	return patients, nil
}

func (r *Repository) GetBill(ctx context.Context, hospitalID, id snowflake.ID) (*billdomain.Bill, error) {
	var bill billdomain.Bill
	err := r.db.WithContext(ctx).
		Where("hospital_id = ? AND id = ?", hospitalID, id).
		First(&bill).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, billdomain.ErrBillNotFound
		}
		return nil, err
	}
	return &bill, nil
}

func (r *Repository) CreateBill(ctx context.Context, bill *billdomain.Bill) error {
	return r.db.WithContext(ctx).Create(bill).Error
}

func (r *Repository) CreateBills(ctx context.Context, bills []billdomain.Bill) error {
	if len(bills) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).CreateInBatches(bills, 200).Error
}

func (r *Repository) UpdateBill(ctx context.Context, bill *billdomain.Bill) error {
	return r.db.WithContext(ctx).Save(bill).Error
}

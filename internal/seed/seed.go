package seed

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"

	authdomain "github.com/zerorisk/claimledger/internal/auth/domain"
	"github.com/zerorisk/claimledger/internal/auth/password"
)

const (
	defaultHospitalName  = "Main Hospital"
	defaultAdminUsername = "admin"
	defaultAdminPassword = "admin"
)

// EnsureDefaultHospital seeds the default hospital for startup bootstrap.
func EnsureDefaultHospital(db *gorm.DB) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		return err
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		_, err := ensureDefaultHospitalTx(ctx, tx, node)
		return err
	})
}

// EnsureDefaultHospitalAndAdmin seeds the default hospital and a
// super-admin login for single-tenant installs.
func EnsureDefaultHospitalAndAdmin(db *gorm.DB) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		return err
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		hospital, err := ensureDefaultHospitalTx(ctx, tx, node)
		if err != nil {
			return err
		}

		var user authdomain.User
		err = tx.WithContext(ctx).
			Where("username = ?", defaultAdminUsername).
			First(&user).Error
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		hashed, err := password.Hash(defaultAdminPassword)
		if err != nil {
			return err
		}
		user = authdomain.User{
			ID:           node.Generate(),
			HospitalID:   hospital.ID,
			Username:     strings.ToLower(defaultAdminUsername),
			PasswordHash: hashed,
			Role:         authdomain.RoleSuperAdmin,
			CreatedAt:    time.Now().UTC(),
		}
		return tx.WithContext(ctx).Create(&user).Error
	})
}

func ensureDefaultHospitalTx(ctx context.Context, tx *gorm.DB, node *snowflake.Node) (authdomain.Hospital, error) {
	var hospital authdomain.Hospital
	err := tx.WithContext(ctx).Where("name = ?", defaultHospitalName).First(&hospital).Error
	if err == nil {
		return hospital, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return hospital, err
	}

	hospital = authdomain.Hospital{
		ID:        node.Generate(),
		Name:      defaultHospitalName,
		CreatedAt: time.Now().UTC(),
	}
	if err := tx.WithContext(ctx).Create(&hospital).Error; err != nil {
		return hospital, err
	}
	return hospital, nil
}

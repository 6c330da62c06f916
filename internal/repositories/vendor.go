package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"rentme/internal/models"

	"gorm.io/gorm"
)

var ErrVendorNotFound = errors.New("vendor not found")

// VendorRepository is the vendor record store.
type VendorRepository interface {
	GetByID(ctx context.Context, id string) (*models.Vendor, error)
	Create(ctx context.Context, vendor *models.Vendor) error
	Update(ctx context.Context, id string, fields map[string]interface{}) error

	// SetStripeAccountIfAbsent links accountID only while the vendor has no
	// account yet. It reports whether this call performed the write.
	SetStripeAccountIfAbsent(ctx context.Context, id, accountID string) (bool, error)

	// MarkOnboardingComplete flips the onboarding flag false->true. It never
	// writes false and reports whether this call flipped it.
	MarkOnboardingComplete(ctx context.Context, id string) (bool, error)
}

type vendorRepository struct {
	db *gorm.DB
}

func NewVendorRepository(db *gorm.DB) VendorRepository {
	return &vendorRepository{
		db: db,
	}
}

func (r *vendorRepository) GetByID(ctx context.Context, id string) (*models.Vendor, error) {
	var vendor models.Vendor
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&vendor).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVendorNotFound
		}
		return nil, err
	}
	return &vendor, nil
}

func (r *vendorRepository) Create(ctx context.Context, vendor *models.Vendor) error {
	return r.db.WithContext(ctx).Create(vendor).Error
}

func (r *vendorRepository) Update(ctx context.Context, id string, fields map[string]interface{}) error {
	result := r.db.WithContext(ctx).Model(&models.Vendor{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrVendorNotFound
	}
	return nil
}

func (r *vendorRepository) SetStripeAccountIfAbsent(ctx context.Context, id, accountID string) (bool, error) {
	if accountID == "" {
		return false, fmt.Errorf("cannot link empty account id to vendor %s", id)
	}
	result := r.db.WithContext(ctx).Model(&models.Vendor{}).
		Where("id = ? AND (stripe_account_id IS NULL OR stripe_account_id = '')", id).
		Updates(map[string]interface{}{
			"stripe_account_id":          accountID,
			"stripe_onboarding_complete": false,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *vendorRepository) MarkOnboardingComplete(ctx context.Context, id string) (bool, error) {
	result := r.db.WithContext(ctx).Model(&models.Vendor{}).
		Where("id = ? AND stripe_onboarding_complete = ?", id, false).
		Updates(map[string]interface{}{
			"stripe_onboarding_complete": true,
			"onboarding_completed_at":    time.Now().UTC(),
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

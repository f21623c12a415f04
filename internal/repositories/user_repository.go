package repositories

import (
	"errors"
	"time"

	"websewa_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrUserNotFound = errors.New("user not found")
)

type UserRepository interface {
	FindByID(id string) (*models.User, error)
	FindByEmail(email string) (*models.User, error)
	Create(user *models.User) error

	// ApplyMembershipGrant performs the combined entitlement update from
	// fulfillment as a single UPDATE: membership activation, expiry and
	// an additive credit increment together, so a reader never observes
	// an activated membership without its credits.
	ApplyMembershipGrant(userID, membershipID string, expiresAt time.Time, credits int) error

	// ExpireMemberships flips active memberships past their expiry to
	// expired. Used by the background worker.
	ExpireMemberships(now time.Time) (int64, error)
}

type UserRepositoryImpl struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &UserRepositoryImpl{db: db}
}

func (r *UserRepositoryImpl) FindByID(id string) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) FindByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) Create(user *models.User) error {
	return r.db.Create(user).Error
}

func (r *UserRepositoryImpl) ApplyMembershipGrant(userID, membershipID string, expiresAt time.Time, credits int) error {
	result := r.db.Model(&models.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"membership_id":         membershipID,
			"membership_status":     models.MembershipStatusActive,
			"membership_expires_at": expiresAt,
			"advanced_credits":      gorm.Expr("advanced_credits + ?", credits),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *UserRepositoryImpl) ExpireMemberships(now time.Time) (int64, error) {
	result := r.db.Model(&models.User{}).
		Where("membership_status = ? AND membership_expires_at < ?", models.MembershipStatusActive, now).
		Update("membership_status", models.MembershipStatusExpired)
	return result.RowsAffected, result.Error
}

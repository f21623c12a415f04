package repositories

import (
	"errors"

	"websewa_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrItemNotFound = errors.New("catalog item not found")
)

// ItemSnapshot is the immutable purchase-time copy of catalog data. Orders
// carry these values so later catalog edits never change what was bought.
type ItemSnapshot struct {
	ID       string
	Title    string
	Slug     string
	Price    float64
	Currency string
}

type CatalogRepository interface {
	FindMembershipByID(id string) (*models.Membership, error)
	FindActiveMemberships() ([]models.Membership, error)
	FindHostingPlanByID(id string) (*models.HostingPlan, error)

	// SnapshotItem resolves an item category + id to the snapshot stored
	// on the order. Hosting plans are priced per billing cycle and are
	// resolved separately.
	SnapshotItem(category models.ItemCategory, id string) (*ItemSnapshot, error)
}

type CatalogRepositoryImpl struct {
	db *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) CatalogRepository {
	return &CatalogRepositoryImpl{db: db}
}

func (r *CatalogRepositoryImpl) FindMembershipByID(id string) (*models.Membership, error) {
	var membership models.Membership
	if err := r.db.First(&membership, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}
	return &membership, nil
}

func (r *CatalogRepositoryImpl) FindActiveMemberships() ([]models.Membership, error) {
	var memberships []models.Membership
	err := r.db.Where("is_active = ?", true).Order("price ASC").Find(&memberships).Error
	return memberships, err
}

func (r *CatalogRepositoryImpl) FindHostingPlanByID(id string) (*models.HostingPlan, error) {
	var plan models.HostingPlan
	if err := r.db.First(&plan, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}
	return &plan, nil
}

func (r *CatalogRepositoryImpl) SnapshotItem(category models.ItemCategory, id string) (*ItemSnapshot, error) {
	switch category {
	case models.ItemCategoryService:
		var item models.Service
		if err := r.first(&item, id); err != nil {
			return nil, err
		}
		return &ItemSnapshot{ID: item.ID, Title: item.Title, Slug: item.Slug, Price: item.Price, Currency: item.Currency}, nil
	case models.ItemCategoryBundle:
		var item models.Bundle
		if err := r.first(&item, id); err != nil {
			return nil, err
		}
		return &ItemSnapshot{ID: item.ID, Title: item.Title, Slug: item.Slug, Price: item.Price, Currency: item.Currency}, nil
	case models.ItemCategoryClass:
		var item models.Class
		if err := r.first(&item, id); err != nil {
			return nil, err
		}
		return &ItemSnapshot{ID: item.ID, Title: item.Title, Slug: item.Slug, Price: item.Price, Currency: item.Currency}, nil
	case models.ItemCategoryMembership:
		item, err := r.FindMembershipByID(id)
		if err != nil {
			return nil, err
		}
		return &ItemSnapshot{ID: item.ID, Title: item.Name, Slug: item.Slug, Price: item.Price, Currency: item.Currency}, nil
	default:
		return nil, ErrItemNotFound
	}
}

func (r *CatalogRepositoryImpl) first(dest interface{}, id string) error {
	if err := r.db.First(dest, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrItemNotFound
		}
		return err
	}
	return nil
}

package services

import (
	"context"

	"websewa_backend/internal/models"
	"websewa_backend/internal/repositories"
	"websewa_backend/pkg/apperrors"
)

type CatalogService interface {
	ListMemberships(ctx context.Context) ([]models.Membership, error)
}

type catalogService struct {
	catalogRepo repositories.CatalogRepository
}

func NewCatalogService(catalogRepo repositories.CatalogRepository) CatalogService {
	return &catalogService{catalogRepo: catalogRepo}
}

func (s *catalogService) ListMemberships(ctx context.Context) ([]models.Membership, error) {
	memberships, err := s.catalogRepo.FindActiveMemberships()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return memberships, nil
}

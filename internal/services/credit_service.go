package services

import (
	"context"

	"websewa_backend/internal/auth"
	"websewa_backend/internal/logger"
	"websewa_backend/internal/models"
	"websewa_backend/internal/repositories"
	"websewa_backend/pkg/apperrors"
)

// CreditService fronts the credit ledger for usage-debiting endpoints.
// Advanced features reserve credits here before they run; the provider
// call itself is outside this core.
type CreditService interface {
	UseCredits(ctx context.Context, principal auth.Principal, amount int, feature string) error
	Balance(ctx context.Context, ownerID string) (int, error)
	History(ctx context.Context, ownerID string, page, pageSize int) ([]models.CreditTransaction, int64, error)
}

type creditService struct {
	creditRepo repositories.CreditRepository
}

func NewCreditService(creditRepo repositories.CreditRepository) CreditService {
	return &creditService{creditRepo: creditRepo}
}

func (s *creditService) UseCredits(ctx context.Context, principal auth.Principal, amount int, feature string) error {
	if amount <= 0 {
		return apperrors.ErrInvalidCreditAmount
	}

	err := s.creditRepo.Debit(principal.UserID, amount, "usage: "+feature, map[string]interface{}{
		"feature": feature,
	})
	if err != nil {
		switch err {
		case repositories.ErrInsufficientCredits:
			return apperrors.ErrInsufficientCredits
		case repositories.ErrInvalidCreditAmount:
			return apperrors.ErrInvalidCreditAmount
		case repositories.ErrUserNotFound:
			return apperrors.NewNotFoundError("User not found")
		default:
			return apperrors.InternalError(err)
		}
	}

	logger.CtxInfo(ctx, "credits debited",
		"owner_id", principal.UserID, "amount", amount, "feature", feature)
	return nil
}

func (s *creditService) Balance(ctx context.Context, ownerID string) (int, error) {
	balance, err := s.creditRepo.Balance(ownerID)
	if err != nil {
		if err == repositories.ErrUserNotFound {
			return 0, apperrors.NewNotFoundError("User not found")
		}
		return 0, apperrors.InternalError(err)
	}
	return balance, nil
}

func (s *creditService) History(ctx context.Context, ownerID string, page, pageSize int) ([]models.CreditTransaction, int64, error) {
	transactions, total, err := s.creditRepo.History(ownerID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, 0, apperrors.InternalError(err)
	}
	return transactions, total, nil
}

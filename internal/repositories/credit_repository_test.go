package repositories

import (
	"testing"

	"websewa_backend/internal/models"
	"websewa_backend/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreditRepository_CreditAndDebit(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewCreditRepository(db)

	user := testutil.CreateUser(t, db, "user@test.com", models.UserRoleUser, 0)

	require.NoError(t, repo.Credit(user.ID, 100, "grant", nil))
	require.NoError(t, repo.Debit(user.ID, 30, "usage: seo-audit", map[string]interface{}{"feature": "seo-audit"}))

	balance, err := repo.Balance(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 70, balance)

	// Ledger stays in lockstep with the cached balance.
	sum, err := repo.SumForOwner(user.ID)
	require.NoError(t, err)
	assert.Equal(t, balance, sum)
}

func TestCreditRepository_DebitInsufficientBalance(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewCreditRepository(db)

	user := testutil.CreateUser(t, db, "user@test.com", models.UserRoleUser, 20)

	err := repo.Debit(user.ID, 21, "usage: too-much", nil)
	assert.ErrorIs(t, err, ErrInsufficientCredits)

	// A failed debit writes nothing, neither balance nor ledger.
	balance, err := repo.Balance(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 20, balance)

	var count int64
	require.NoError(t, db.Model(&models.CreditTransaction{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestCreditRepository_ExactBalanceDebitAllowed(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewCreditRepository(db)

	user := testutil.CreateUser(t, db, "user@test.com", models.UserRoleUser, 20)

	require.NoError(t, repo.Debit(user.ID, 20, "usage: all-in", nil))

	balance, err := repo.Balance(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, balance)
}

func TestCreditRepository_RejectsNonPositiveAmounts(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewCreditRepository(db)

	user := testutil.CreateUser(t, db, "user@test.com", models.UserRoleUser, 10)

	assert.ErrorIs(t, repo.Credit(user.ID, 0, "zero", nil), ErrInvalidCreditAmount)
	assert.ErrorIs(t, repo.Credit(user.ID, -5, "negative", nil), ErrInvalidCreditAmount)
	assert.ErrorIs(t, repo.Debit(user.ID, 0, "zero", nil), ErrInvalidCreditAmount)
	assert.ErrorIs(t, repo.Debit(user.ID, -5, "negative", nil), ErrInvalidCreditAmount)
}

func TestCreditRepository_UnknownUser(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewCreditRepository(db)

	err := repo.Credit("3f0e7c9a-0000-0000-0000-000000000003", 10, "grant", nil)
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = repo.Balance("3f0e7c9a-0000-0000-0000-000000000003")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestCreditRepository_History(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewCreditRepository(db)

	user := testutil.CreateUser(t, db, "user@test.com", models.UserRoleUser, 0)
	other := testutil.CreateUser(t, db, "other@test.com", models.UserRoleUser, 0)

	require.NoError(t, repo.Credit(user.ID, 100, "grant", nil))
	require.NoError(t, repo.Debit(user.ID, 10, "usage: a", nil))
	require.NoError(t, repo.Debit(user.ID, 20, "usage: b", nil))
	require.NoError(t, repo.Credit(other.ID, 5, "grant", nil))

	entries, total, err := repo.History(user.ID, 2, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, entries, 2)
	for _, e := range entries {
		assert.Equal(t, user.ID, e.OwnerID)
	}

	// Signed amounts: debits are negative in the ledger.
	sum, err := repo.SumForOwner(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 70, sum)
}

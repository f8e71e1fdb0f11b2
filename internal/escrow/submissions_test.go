package escrow

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/the-foundingengineer/ShadowDrop-Smc/internal/models"
	"github.com/the-foundingengineer/ShadowDrop-Smc/internal/pkg/apperror"
)

func testSubmission(party uuid.UUID) *models.Submission {
	return &models.Submission{
		ContentHash: strings.Repeat("ab", 32),
		Submitter:   party,
		PayoutID:    party,
		AccessFee:   10,
		StakeAmount: 100,
	}
}

func TestSubmissionStore_IDsMonotonic(t *testing.T) {
	store := NewSubmissionStore(10)
	party := uuid.New()

	id1, err := store.Add(testSubmission(party))
	assert.NoError(t, err)
	id2, err := store.Add(testSubmission(party))
	assert.NoError(t, err)

	assert.Equal(t, uint64(1), id1)
	assert.Equal(t, uint64(2), id2)
}

func TestSubmissionStore_RateLimit(t *testing.T) {
	store := NewSubmissionStore(3)
	party := uuid.New()

	for i := 0; i < 3; i++ {
		_, err := store.Add(testSubmission(party))
		assert.NoError(t, err)
	}

	_, err := store.Add(testSubmission(party))
	assert.ErrorIs(t, err, apperror.ErrRateLimited)

	// Лимит считается по отправителю, другой участник не задет.
	_, err = store.Add(testSubmission(uuid.New()))
	assert.NoError(t, err)
}

func TestSubmissionStore_GetNotFound(t *testing.T) {
	store := NewSubmissionStore(10)

	_, err := store.Get(42)
	assert.ErrorIs(t, err, apperror.ErrSubmissionNotFound)

	_, err = store.Snapshot(42)
	assert.ErrorIs(t, err, apperror.ErrSubmissionNotFound)
}

func TestValidateHash(t *testing.T) {
	assert.True(t, ValidateHash(strings.Repeat("ab", 32)))
	assert.True(t, ValidateHash(strings.Repeat("AB", 32)))

	assert.False(t, ValidateHash(""))
	assert.False(t, ValidateHash("abc"))
	assert.False(t, ValidateHash(strings.Repeat("0", 64)))
	assert.False(t, ValidateHash(strings.Repeat("g", 64)))
}

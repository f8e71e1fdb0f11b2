package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

const testSecret = "test-secret-key-for-identity-tokens"

func TestTokenManager_IssueAndParse(t *testing.T) {
	manager := NewTokenManager(testSecret, time.Hour)

	issued, err := manager.IssueNew()
	assert.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, issued.Identity)
	assert.NotEmpty(t, issued.Token)
	assert.Equal(t, time.Hour, issued.ExpiresIn)

	identity, err := manager.Parse(issued.Token)
	assert.NoError(t, err)
	assert.Equal(t, issued.Identity, identity)
}

func TestTokenManager_IssueNewDistinctIdentities(t *testing.T) {
	manager := NewTokenManager(testSecret, time.Hour)

	first, err := manager.IssueNew()
	assert.NoError(t, err)
	second, err := manager.IssueNew()
	assert.NoError(t, err)

	assert.NotEqual(t, first.Identity, second.Identity)
}

func TestTokenManager_ParseRejectsWrongSecret(t *testing.T) {
	manager := NewTokenManager(testSecret, time.Hour)
	other := NewTokenManager("совсем-другой-секрет-для-проверки", time.Hour)

	issued, err := manager.Issue(uuid.New())
	assert.NoError(t, err)

	_, err = other.Parse(issued.Token)
	assert.Error(t, err)
}

func TestTokenManager_ParseRejectsGarbage(t *testing.T) {
	manager := NewTokenManager(testSecret, time.Hour)

	_, err := manager.Parse("не.токен.вовсе")
	assert.Error(t, err)
}

func TestTokenManager_ParseRejectsExpired(t *testing.T) {
	manager := NewTokenManager(testSecret, -time.Minute)

	issued, err := manager.Issue(uuid.New())
	assert.NoError(t, err)

	_, err = manager.Parse(issued.Token)
	assert.Error(t, err)
}

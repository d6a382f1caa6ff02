package entity

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStampCreate(t *testing.T) {
	by := uuid.New()
	todo := &Todo{Title: "buy milk"}

	todo.StampCreate(by)

	assert.False(t, todo.CreatedAt.IsZero())
	assert.Equal(t, todo.CreatedAt, todo.UpdatedAt)
	assert.Equal(t, by, todo.CreatedBy)
	assert.Nil(t, todo.UpdatedBy)
	assert.Nil(t, todo.DeletedAt)
	assert.False(t, todo.IsDeleted())
}

func TestStampUpdateAdvancesTogether(t *testing.T) {
	creator := uuid.New()
	updater := uuid.New()

	todo := &Todo{Title: "buy milk"}
	todo.StampCreate(creator)
	created := todo.CreatedAt

	time.Sleep(5 * time.Millisecond)
	todo.StampUpdate(updater)

	assert.Equal(t, created, todo.CreatedAt, "created_at must not move on update")
	assert.True(t, todo.UpdatedAt.After(created))
	require.NotNil(t, todo.UpdatedBy)
	assert.Equal(t, updater, *todo.UpdatedBy)
}

func TestStampDeleteSetsPairAndRestamps(t *testing.T) {
	first := uuid.New()
	second := uuid.New()

	todo := &Todo{Title: "buy milk"}
	todo.StampCreate(first)

	todo.StampDelete(first)
	require.NotNil(t, todo.DeletedAt)
	require.NotNil(t, todo.DeletedBy)
	assert.Equal(t, first, *todo.DeletedBy)
	assert.True(t, todo.IsDeleted())

	firstDeletedAt := *todo.DeletedAt
	time.Sleep(5 * time.Millisecond)

	// 重复删除重新盖章
	todo.StampDelete(second)
	assert.True(t, todo.DeletedAt.After(firstDeletedAt))
	assert.Equal(t, second, *todo.DeletedBy)
}

func TestLlmProviderString(t *testing.T) {
	assert.Equal(t, "openai", LlmProviderOpenAI.String())
	assert.Equal(t, "anthropic", LlmProviderAnthropic.String())
	assert.Equal(t, "azure", LlmProviderAzure.String())
	assert.Equal(t, "unknown", LlmProvider(99).String())
}

func TestUserPassword(t *testing.T) {
	user := NewUser("me@example.com", "Me")
	require.NoError(t, user.SetPassword("correct horse battery"))

	assert.True(t, user.CheckPassword("correct horse battery"))
	assert.False(t, user.CheckPassword("wrong"))
	assert.NotContains(t, user.PasswordHash, "correct horse")
}

package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askpaper/askpaper-cli/internal/adapters/driven/storage/memory"
	"github.com/askpaper/askpaper-cli/internal/core/domain"
)

func TestConversationManager_BuildPrompt_IncludesSources(t *testing.T) {
	mgr := NewConversationManager(memory.NewSessionStore(), 3000)

	session := &domain.Session{ID: "s1"}
	retrieved := []domain.RetrievedChunk{
		{Chunk: domain.Chunk{ID: "c1", Content: "photosynthesis converts light"}, Filename: "bio.txt", Score: 0.9},
		{Chunk: domain.Chunk{ID: "c2", Content: "chlorophyll absorbs red light"}, Filename: "bio.txt", Score: 0.7},
	}

	prompt := mgr.BuildPrompt(session, retrieved, "how do plants make energy?")

	assert.Contains(t, prompt, "Source: bio.txt")
	assert.Contains(t, prompt, "photosynthesis converts light")
	assert.Contains(t, prompt, "chlorophyll absorbs red light")
	assert.Contains(t, prompt, "Question: how do plants make energy?")

	// Higher-scored excerpt comes first.
	assert.Less(t,
		strings.Index(prompt, "photosynthesis"),
		strings.Index(prompt, "chlorophyll"))
}

func TestConversationManager_BuildPrompt_NoSources(t *testing.T) {
	mgr := NewConversationManager(memory.NewSessionStore(), 3000)

	prompt := mgr.BuildPrompt(&domain.Session{ID: "s1"}, nil, "anything?")

	assert.NotContains(t, prompt, "Source excerpts:")
	assert.Contains(t, prompt, "Question: anything?")
}

func TestConversationManager_BuildPrompt_IncludesHistory(t *testing.T) {
	mgr := NewConversationManager(memory.NewSessionStore(), 3000)

	session := &domain.Session{
		ID: "s1",
		Turns: []domain.Turn{
			{Role: domain.RoleUser, Content: "what is ATP?"},
			{Role: domain.RoleAssistant, Content: "ATP is the cell's energy currency."},
		},
	}

	prompt := mgr.BuildPrompt(session, nil, "where is it produced?")

	assert.Contains(t, prompt, "Conversation so far:")
	assert.Contains(t, prompt, "User: what is ATP?")
	assert.Contains(t, prompt, "Assistant: ATP is the cell's energy currency.")

	// History reads in chronological order, before the question.
	assert.Less(t, strings.Index(prompt, "User: what is ATP?"), strings.Index(prompt, "Assistant:"))
	assert.Less(t, strings.Index(prompt, "Assistant:"), strings.Index(prompt, "Question:"))
}

func TestConversationManager_BuildPrompt_BudgetDropsOldestTurns(t *testing.T) {
	// Budget of 10 tokens = 40 chars; only the newest turn fits.
	mgr := NewConversationManager(memory.NewSessionStore(), 10)

	session := &domain.Session{
		ID: "s1",
		Turns: []domain.Turn{
			{Role: domain.RoleUser, Content: strings.Repeat("old ", 10)},      // 40 chars
			{Role: domain.RoleAssistant, Content: "recent short answer"},      // 19 chars
		},
	}

	prompt := mgr.BuildPrompt(session, nil, "next question")

	assert.Contains(t, prompt, "recent short answer")
	assert.NotContains(t, prompt, "old old")
}

func TestConversationManager_BuildPrompt_DoesNotMutateHistory(t *testing.T) {
	store := memory.NewSessionStore()
	mgr := NewConversationManager(store, 1)
	ctx := context.Background()

	_, err := mgr.GetOrCreate(ctx, "s1")
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		require.NoError(t, mgr.Record(ctx, "s1", domain.Turn{
			Role:      domain.RoleUser,
			Content:   strings.Repeat("x", 50),
			CreatedAt: time.Now(),
		}))
	}

	session, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	mgr.BuildPrompt(session, nil, "q")

	after, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Len(t, after.Turns, 5)
}

func TestWindowTurns_AllFit(t *testing.T) {
	turns := []domain.Turn{
		{Content: "aaaa"},
		{Content: "bbbb"},
	}

	got := windowTurns(turns, 100)
	assert.Len(t, got, 2)
}

func TestWindowTurns_ZeroBudget(t *testing.T) {
	turns := []domain.Turn{{Content: "aaaa"}}

	assert.Empty(t, windowTurns(turns, 0))
}

func TestWindowTurns_SuffixSelected(t *testing.T) {
	turns := []domain.Turn{
		{Content: strings.Repeat("a", 30)},
		{Content: strings.Repeat("b", 30)},
		{Content: strings.Repeat("c", 30)},
	}

	got := windowTurns(turns, 65)
	require.Len(t, got, 2)
	assert.Equal(t, strings.Repeat("b", 30), got[0].Content)
	assert.Equal(t, strings.Repeat("c", 30), got[1].Content)
}

package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMessageService(t *testing.T) {
	ctx := context.Background()

	t.Run("create assigns id and timestamp", func(t *testing.T) {
		repos := newTestRepos(t)
		svc := NewMessageService(repos.messages, zap.NewNop())

		msg, err := svc.Create(ctx, MessageInput{
			Name:  "Joe",
			Email: "joe@example.com",
			Phone: "+44 1234567899",
			Body:  "Do you list cafes outside London?",
		})
		require.NoError(t, err)
		assert.NotZero(t, msg.ID)
		assert.False(t, msg.CreatedAt.IsZero())
	})

	t.Run("list returns newest first", func(t *testing.T) {
		repos := newTestRepos(t)
		svc := NewMessageService(repos.messages, zap.NewNop())

		first, err := svc.Create(ctx, MessageInput{Name: "A", Email: "a@example.com", Body: "first"})
		require.NoError(t, err)
		second, err := svc.Create(ctx, MessageInput{Name: "B", Email: "b@example.com", Body: "second"})
		require.NoError(t, err)

		messages, err := svc.List(ctx)
		require.NoError(t, err)
		require.Len(t, messages, 2)
		assert.Equal(t, second.ID, messages[0].ID)
		assert.Equal(t, first.ID, messages[1].ID)
	})

	t.Run("delete is idempotent", func(t *testing.T) {
		repos := newTestRepos(t)
		svc := NewMessageService(repos.messages, zap.NewNop())

		msg, err := svc.Create(ctx, MessageInput{Name: "A", Email: "a@example.com", Body: "hi"})
		require.NoError(t, err)

		require.NoError(t, svc.Delete(ctx, msg.ID))
		assert.NoError(t, svc.Delete(ctx, msg.ID))

		messages, err := svc.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, messages)
	})
}

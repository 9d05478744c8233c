package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	repomocks "campuslink/internal/chat/repository/mocks"
	"campuslink/internal/common"
	"campuslink/internal/dbmysql"
	"campuslink/internal/realtime"
	rtmocks "campuslink/internal/realtime/mocks"
)

func newTestService(t *testing.T) (*chatService, *repomocks.MockChatRepository, *rtmocks.MockRoomBroker) {
	ctrl := gomock.NewController(t)
	repo := repomocks.NewMockChatRepository(ctrl)
	broker := rtmocks.NewMockRoomBroker(ctrl)
	svc := &chatService{repo: repo, broker: broker, now: time.Now}
	return svc, repo, broker
}

func conversationAB() *dbmysql.Conversation {
	return &dbmysql.Conversation{
		ID:           "conv-1",
		TenantID:     "tenant-1",
		ParticipantA: "user-a",
		ParticipantB: "user-b",
	}
}

func TestChatService_SendMessage(t *testing.T) {
	tests := []struct {
		name          string
		senderID      string
		content       string
		kind          string
		confirmSender bool
		mockSetup     func(repo *repomocks.MockChatRepository, broker *rtmocks.MockRoomBroker)
		expectErr     error
	}{
		{
			name:     "successful send notifies receiver only",
			senderID: "user-a",
			content:  "hello",
			mockSetup: func(repo *repomocks.MockChatRepository, broker *rtmocks.MockRoomBroker) {
				repo.EXPECT().ConversationByID(gomock.Any(), "conv-1").Return(conversationAB(), nil)
				repo.EXPECT().CreateMessage(gomock.Any(), gomock.Any()).
					DoAndReturn(func(ctx context.Context, msg *dbmysql.Message) error {
						assert.Equal(t, "user-b", msg.ReceiverID)
						assert.Equal(t, dbmysql.StatusSent, msg.Status)
						assert.Equal(t, dbmysql.KindText, msg.Kind)
						assert.NotEmpty(t, msg.ID)
						return nil
					})
				broker.EXPECT().Publish(realtime.UserRoom("user-b"), realtime.EventChatReceive, gomock.Any()).Return(1)
			},
		},
		{
			name:          "synchronous path confirms sender",
			senderID:      "user-a",
			content:       "hello",
			confirmSender: true,
			mockSetup: func(repo *repomocks.MockChatRepository, broker *rtmocks.MockRoomBroker) {
				repo.EXPECT().ConversationByID(gomock.Any(), "conv-1").Return(conversationAB(), nil)
				repo.EXPECT().CreateMessage(gomock.Any(), gomock.Any()).Return(nil)
				broker.EXPECT().Publish(realtime.UserRoom("user-b"), realtime.EventChatReceive, gomock.Any()).Return(0)
				broker.EXPECT().Publish(realtime.UserRoom("user-a"), realtime.EventChatSentConfirmation, gomock.Any()).Return(1)
			},
		},
		{
			name:      "empty content",
			senderID:  "user-a",
			content:   "   ",
			mockSetup: func(repo *repomocks.MockChatRepository, broker *rtmocks.MockRoomBroker) {},
			expectErr: common.ErrValidation,
		},
		{
			name:      "unsupported kind",
			senderID:  "user-a",
			content:   "hello",
			kind:      "VOICE",
			mockSetup: func(repo *repomocks.MockChatRepository, broker *rtmocks.MockRoomBroker) {},
			expectErr: common.ErrValidation,
		},
		{
			name:     "conversation missing",
			senderID: "user-a",
			content:  "hello",
			mockSetup: func(repo *repomocks.MockChatRepository, broker *rtmocks.MockRoomBroker) {
				repo.EXPECT().ConversationByID(gomock.Any(), "conv-1").
					Return(nil, common.ErrNotFound)
			},
			expectErr: common.ErrNotFound,
		},
		{
			name:     "sender not a participant",
			senderID: "user-x",
			content:  "hello",
			mockSetup: func(repo *repomocks.MockChatRepository, broker *rtmocks.MockRoomBroker) {
				repo.EXPECT().ConversationByID(gomock.Any(), "conv-1").Return(conversationAB(), nil)
			},
			expectErr: common.ErrForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, broker := newTestService(t)
			tt.mockSetup(repo, broker)

			view, result, err := svc.SendMessage(context.Background(), tt.senderID, "conv-1", tt.content, tt.kind, tt.confirmSender)

			if tt.expectErr != nil {
				assert.ErrorIs(t, err, tt.expectErr)
				assert.Nil(t, view)
				assert.False(t, result.Persisted)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, view)
				assert.True(t, result.Persisted)
				assert.Equal(t, string(dbmysql.StatusSent), view.Status)
			}
		})
	}
}

func TestChatService_AcknowledgeDelivered(t *testing.T) {
	t.Run("groups notifications by sender", func(t *testing.T) {
		svc, repo, broker := newTestService(t)

		affected := []*dbmysql.Message{
			{ID: "m1", SenderID: "user-a", Status: dbmysql.StatusDelivered},
			{ID: "m2", SenderID: "user-a", Status: dbmysql.StatusDelivered},
			{ID: "m3", SenderID: "user-c", Status: dbmysql.StatusDelivered},
		}
		repo.EXPECT().MarkDelivered(gomock.Any(), "user-b", []string{"m1", "m2", "m3"}).Return(affected, nil)
		broker.EXPECT().Publish(realtime.UserRoom("user-a"), realtime.EventChatStatusUpdate, StatusUpdatePayload{
			MessageIDs: []string{"m1", "m2"},
			Status:     string(dbmysql.StatusDelivered),
		}).Return(1)
		broker.EXPECT().Publish(realtime.UserRoom("user-c"), realtime.EventChatStatusUpdate, StatusUpdatePayload{
			MessageIDs: []string{"m3"},
			Status:     string(dbmysql.StatusDelivered),
		}).Return(1)

		updated, err := svc.AcknowledgeDelivered(context.Background(), "user-b", []string{"m1", "m2", "m3"})
		assert.NoError(t, err)
		assert.Equal(t, 3, updated)
	})

	t.Run("replay is a silent no-op", func(t *testing.T) {
		svc, repo, _ := newTestService(t)

		repo.EXPECT().MarkDelivered(gomock.Any(), "user-b", []string{"m1"}).Return(nil, nil)

		updated, err := svc.AcknowledgeDelivered(context.Background(), "user-b", []string{"m1"})
		assert.NoError(t, err)
		assert.Zero(t, updated)
	})

	t.Run("empty id list touches nothing", func(t *testing.T) {
		svc, _, _ := newTestService(t)

		updated, err := svc.AcknowledgeDelivered(context.Background(), "user-b", nil)
		assert.NoError(t, err)
		assert.Zero(t, updated)
	})
}

func TestChatService_DeliverPending(t *testing.T) {
	t.Run("connect-time sweep flips and notifies", func(t *testing.T) {
		svc, repo, broker := newTestService(t)

		pending := []*dbmysql.Message{
			{ID: "m1", SenderID: "user-a", Status: dbmysql.StatusSent},
			{ID: "m2", SenderID: "user-a", Status: dbmysql.StatusSent},
		}
		delivered := []*dbmysql.Message{
			{ID: "m1", SenderID: "user-a", Status: dbmysql.StatusDelivered},
			{ID: "m2", SenderID: "user-a", Status: dbmysql.StatusDelivered},
		}
		repo.EXPECT().PendingSent(gomock.Any(), "user-b").Return(pending, nil)
		repo.EXPECT().MarkDelivered(gomock.Any(), "user-b", []string{"m1", "m2"}).Return(delivered, nil)
		broker.EXPECT().Publish(realtime.UserRoom("user-a"), realtime.EventChatStatusUpdate, StatusUpdatePayload{
			MessageIDs: []string{"m1", "m2"},
			Status:     string(dbmysql.StatusDelivered),
		}).Return(1)

		updated, err := svc.DeliverPending(context.Background(), "user-b")
		assert.NoError(t, err)
		assert.Equal(t, 2, updated)
	})

	t.Run("nothing pending, nothing published", func(t *testing.T) {
		svc, repo, _ := newTestService(t)

		repo.EXPECT().PendingSent(gomock.Any(), "user-b").Return(nil, nil)

		updated, err := svc.DeliverPending(context.Background(), "user-b")
		assert.NoError(t, err)
		assert.Zero(t, updated)
	})
}

func TestChatService_AcknowledgeRead(t *testing.T) {
	msg := func(status dbmysql.MessageStatus) *dbmysql.Message {
		return &dbmysql.Message{
			ID:             "m1",
			ConversationID: "conv-1",
			SenderID:       "user-a",
			ReceiverID:     "user-b",
			Status:         status,
		}
	}

	t.Run("transitions and notifies sender", func(t *testing.T) {
		svc, repo, broker := newTestService(t)

		repo.EXPECT().MessageByID(gomock.Any(), "m1").Return(msg(dbmysql.StatusDelivered), nil)
		repo.EXPECT().MarkRead(gomock.Any(), "m1").Return(nil)
		broker.EXPECT().Publish(realtime.UserRoom("user-a"), realtime.EventChatReadReceipt, ReadReceiptPayload{
			MessageID:      "m1",
			ConversationID: "conv-1",
			Status:         string(dbmysql.StatusRead),
		}).Return(1)

		result, err := svc.AcknowledgeRead(context.Background(), "user-b", "m1")
		assert.NoError(t, err)
		assert.True(t, result.Persisted)
		assert.True(t, result.Notified)
	})

	t.Run("already read is idempotent", func(t *testing.T) {
		svc, repo, _ := newTestService(t)

		repo.EXPECT().MessageByID(gomock.Any(), "m1").Return(msg(dbmysql.StatusRead), nil)

		result, err := svc.AcknowledgeRead(context.Background(), "user-b", "m1")
		assert.NoError(t, err)
		assert.True(t, result.Persisted)
		assert.False(t, result.Notified)
	})

	t.Run("caller is not the receiver", func(t *testing.T) {
		svc, repo, _ := newTestService(t)

		repo.EXPECT().MessageByID(gomock.Any(), "m1").Return(msg(dbmysql.StatusDelivered), nil)

		_, err := svc.AcknowledgeRead(context.Background(), "user-a", "m1")
		assert.ErrorIs(t, err, common.ErrNotFound)
	})
}

func TestChatService_AcknowledgeConversationRead(t *testing.T) {
	t.Run("first call notifies, replay stays quiet", func(t *testing.T) {
		svc, repo, broker := newTestService(t)

		repo.EXPECT().ConversationByID(gomock.Any(), "conv-1").Return(conversationAB(), nil).Times(2)
		gomock.InOrder(
			repo.EXPECT().MarkConversationRead(gomock.Any(), "conv-1", "user-b").Return(int64(3), nil),
			repo.EXPECT().MarkConversationRead(gomock.Any(), "conv-1", "user-b").Return(int64(0), nil),
		)
		broker.EXPECT().Publish(realtime.UserRoom("user-a"), realtime.EventChatConversationRead, ConversationReadPayload{
			ConversationID: "conv-1",
			ReceiverID:     "user-b",
		}).Return(1).Times(1)

		updated, notified, err := svc.AcknowledgeConversationRead(context.Background(), "user-b", "conv-1")
		assert.NoError(t, err)
		assert.Equal(t, int64(3), updated)
		assert.True(t, notified)

		updated, notified, err = svc.AcknowledgeConversationRead(context.Background(), "user-b", "conv-1")
		assert.NoError(t, err)
		assert.Zero(t, updated)
		assert.False(t, notified)
	})

	t.Run("caller must be a participant", func(t *testing.T) {
		svc, repo, _ := newTestService(t)

		repo.EXPECT().ConversationByID(gomock.Any(), "conv-1").Return(conversationAB(), nil)

		_, _, err := svc.AcknowledgeConversationRead(context.Background(), "user-x", "conv-1")
		assert.ErrorIs(t, err, common.ErrForbidden)
	})
}

func TestChatService_GetOrCreateConversation(t *testing.T) {
	caller := common.Identity{ID: "user-a", TenantID: "tenant-1", Role: common.RoleStaff}
	otherUser := &dbmysql.User{UserID: "user-b", TenantID: "tenant-1", Name: "B", Role: "STAFF", Status: "active"}

	t.Run("existing pair is returned for either ordering", func(t *testing.T) {
		svc, repo, _ := newTestService(t)

		conv := conversationAB()
		repo.EXPECT().UserInTenant(gomock.Any(), "tenant-1", "user-b").Return(otherUser, nil)
		repo.EXPECT().FindByParticipants(gomock.Any(), "tenant-1", "user-a", "user-b").Return(conv, nil)
		repo.EXPECT().UserByID(gomock.Any(), "user-b").Return(otherUser, nil)
		repo.EXPECT().LatestMessage(gomock.Any(), "conv-1").Return(nil, nil)
		repo.EXPECT().UnreadCount(gomock.Any(), "conv-1", "user-a").Return(int64(0), nil)

		first, err := svc.GetOrCreateConversation(context.Background(), caller, "user-b")
		assert.NoError(t, err)

		callerB := common.Identity{ID: "user-b", TenantID: "tenant-1", Role: common.RoleStaff}
		userA := &dbmysql.User{UserID: "user-a", TenantID: "tenant-1", Status: "active"}
		repo.EXPECT().UserInTenant(gomock.Any(), "tenant-1", "user-a").Return(userA, nil)
		repo.EXPECT().FindByParticipants(gomock.Any(), "tenant-1", "user-b", "user-a").Return(conv, nil)
		repo.EXPECT().UserByID(gomock.Any(), "user-a").Return(userA, nil)
		repo.EXPECT().LatestMessage(gomock.Any(), "conv-1").Return(nil, nil)
		repo.EXPECT().UnreadCount(gomock.Any(), "conv-1", "user-b").Return(int64(0), nil)

		second, err := svc.GetOrCreateConversation(context.Background(), callerB, "user-a")
		assert.NoError(t, err)

		assert.Equal(t, first.ID, second.ID)
	})

	t.Run("creates lazily when absent", func(t *testing.T) {
		svc, repo, _ := newTestService(t)

		repo.EXPECT().UserInTenant(gomock.Any(), "tenant-1", "user-b").Return(otherUser, nil)
		repo.EXPECT().FindByParticipants(gomock.Any(), "tenant-1", "user-a", "user-b").Return(nil, nil)
		repo.EXPECT().CreateConversation(gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, conv *dbmysql.Conversation) error {
				assert.NotEmpty(t, conv.ID)
				assert.Equal(t, "tenant-1", conv.TenantID)
				assert.False(t, conv.LastMessageAt.IsZero())
				return nil
			})
		repo.EXPECT().UserByID(gomock.Any(), "user-b").Return(otherUser, nil)
		repo.EXPECT().LatestMessage(gomock.Any(), gomock.Any()).Return(nil, nil)
		repo.EXPECT().UnreadCount(gomock.Any(), gomock.Any(), "user-a").Return(int64(0), nil)

		summary, err := svc.GetOrCreateConversation(context.Background(), caller, "user-b")
		assert.NoError(t, err)
		assert.Equal(t, "user-b", summary.OtherParticipant.ID)
	})

	t.Run("conversation with yourself", func(t *testing.T) {
		svc, _, _ := newTestService(t)

		_, err := svc.GetOrCreateConversation(context.Background(), caller, "user-a")
		assert.ErrorIs(t, err, common.ErrBadRequest)
	})

	t.Run("other user missing from tenant", func(t *testing.T) {
		svc, repo, _ := newTestService(t)

		repo.EXPECT().UserInTenant(gomock.Any(), "tenant-1", "ghost").Return(nil, common.ErrNotFound)

		_, err := svc.GetOrCreateConversation(context.Background(), caller, "ghost")
		assert.ErrorIs(t, err, common.ErrNotFound)
	})
}

func TestChatService_ListMessages(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	messages := func(n int) []*dbmysql.Message {
		// newest first, as the repository returns them
		msgs := make([]*dbmysql.Message, n)
		for i := 0; i < n; i++ {
			msgs[i] = &dbmysql.Message{
				ID:             string(rune('a' + i)),
				ConversationID: "conv-1",
				SenderID:       "user-a",
				ReceiverID:     "user-b",
				CreatedAt:      base.Add(-time.Duration(i) * time.Minute),
			}
		}
		return msgs
	}

	t.Run("full page returns chronological order and a cursor", func(t *testing.T) {
		svc, repo, _ := newTestService(t)

		repo.EXPECT().ConversationByID(gomock.Any(), "conv-1").Return(conversationAB(), nil)
		repo.EXPECT().MessagesBefore(gomock.Any(), "conv-1", nil, 3).Return(messages(3), nil)

		page, err := svc.ListMessages(context.Background(), "user-a", "conv-1", nil, 3)
		assert.NoError(t, err)
		assert.Len(t, page.Data, 3)
		assert.True(t, page.Data[0].CreatedAt.Before(page.Data[1].CreatedAt))
		// cursor is the createdAt of the oldest item returned
		assert.NotNil(t, page.NextCursor)
		assert.Equal(t, page.Data[0].CreatedAt, *page.NextCursor)
	})

	t.Run("short page has no cursor", func(t *testing.T) {
		svc, repo, _ := newTestService(t)

		repo.EXPECT().ConversationByID(gomock.Any(), "conv-1").Return(conversationAB(), nil)
		repo.EXPECT().MessagesBefore(gomock.Any(), "conv-1", nil, 10).Return(messages(2), nil)

		page, err := svc.ListMessages(context.Background(), "user-a", "conv-1", nil, 10)
		assert.NoError(t, err)
		assert.Len(t, page.Data, 2)
		assert.Nil(t, page.NextCursor)
	})

	t.Run("non-participant is rejected", func(t *testing.T) {
		svc, repo, _ := newTestService(t)

		repo.EXPECT().ConversationByID(gomock.Any(), "conv-1").Return(conversationAB(), nil)

		_, err := svc.ListMessages(context.Background(), "user-x", "conv-1", nil, 10)
		assert.ErrorIs(t, err, common.ErrForbidden)
	})
}

func TestChatService_ListConversations(t *testing.T) {
	svc, repo, _ := newTestService(t)

	conv := conversationAB()
	last := &dbmysql.Message{ID: "m9", ConversationID: "conv-1", SenderID: "user-b", ReceiverID: "user-a", Status: dbmysql.StatusSent}
	repo.EXPECT().ConversationsFor(gomock.Any(), "user-a").Return([]*dbmysql.Conversation{conv}, nil)
	repo.EXPECT().UserByID(gomock.Any(), "user-b").Return(nil, errors.New("gone"))
	repo.EXPECT().LatestMessage(gomock.Any(), "conv-1").Return(last, nil)
	repo.EXPECT().UnreadCount(gomock.Any(), "conv-1", "user-a").Return(int64(4), nil)

	summaries, err := svc.ListConversations(context.Background(), "user-a")
	assert.NoError(t, err)
	assert.Len(t, summaries, 1)
	// deactivated accounts still show up, id only
	assert.Equal(t, "user-b", summaries[0].OtherParticipant.ID)
	assert.Empty(t, summaries[0].OtherParticipant.Name)
	assert.Equal(t, int64(4), summaries[0].UnreadCount)
	assert.Equal(t, "m9", summaries[0].LastMessage.ID)
}

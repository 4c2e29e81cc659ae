package impl

import (
	"context"
	"testing"

	"lifelink/internal/domain/entity"
	domainerrors "lifelink/internal/domain/errors"
	"lifelink/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type chatTestDeps struct {
	listingRepo *fakeListingRepo
	requestRepo *fakeRequestRepo
	chatRepo    *fakeChatRepo
	userRepo    *fakeUserRepo
	broker      *fakeBroker
}

func newChatServiceForTest() (usecase.ChatUsecase, *chatTestDeps) {
	deps := &chatTestDeps{
		listingRepo: newFakeListingRepo(),
		userRepo:    newFakeUserRepo(),
		chatRepo:    &fakeChatRepo{},
		broker:      &fakeBroker{},
	}
	deps.requestRepo = newFakeRequestRepo(deps.listingRepo)

	svc := NewChatService(ChatServiceParams{
		RequestRepo: deps.requestRepo,
		ChatRepo:    deps.chatRepo,
		UserRepo:    deps.userRepo,
		Broker:      deps.broker,
		Logger:      testLogger(),
	})

	return svc, deps
}

func seedChatRoom(t *testing.T, deps *chatTestDeps) (request *entity.SupplyRequest, requester, provider *entity.User) {
	t.Helper()

	requester = &entity.User{Email: "ana@example.com", Name: "Ana", Role: entity.RoleUser}
	require.NoError(t, deps.userRepo.Create(context.Background(), requester))
	provider = &entity.User{Email: "luis@example.com", Name: "Luis", Role: entity.RoleUser}
	require.NoError(t, deps.userRepo.Create(context.Background(), provider))

	listing := &entity.Listing{
		ProviderID: provider.ID,
		Name:       "Silla de ruedas",
		Category:   entity.CategoryOrthopedic,
		Mode:       entity.ModeDonation,
		Status:     entity.ListingReserved,
	}
	require.NoError(t, deps.listingRepo.Create(context.Background(), listing))

	request = &entity.SupplyRequest{
		RequesterID: requester.ID,
		ListingID:   listing.ID,
		Status:      entity.RequestCoordinating,
	}
	require.NoError(t, deps.requestRepo.Create(context.Background(), request))

	return request, requester, provider
}

func TestChatService_PostPersistsAndRelays(t *testing.T) {
	svc, deps := newChatServiceForTest()
	request, requester, _ := seedChatRoom(t, deps)

	message, err := svc.Post(context.Background(), usecase.PostMessageInput{
		RequestID: request.ID,
		SenderID:  requester.ID,
		Body:      "  ¿A qué hora puedo pasar?  ",
	})
	require.NoError(t, err)
	assert.Equal(t, "¿A qué hora puedo pasar?", message.Body)
	assert.Equal(t, "Ana", message.SenderName)

	require.Len(t, deps.chatRepo.messages, 1)
	require.Len(t, deps.broker.published, 1)
	assert.Equal(t, message.ID, deps.broker.published[0].ID)
}

func TestChatService_PostEmptyBody(t *testing.T) {
	svc, deps := newChatServiceForTest()
	request, requester, _ := seedChatRoom(t, deps)

	_, err := svc.Post(context.Background(), usecase.PostMessageInput{
		RequestID: request.ID,
		SenderID:  requester.ID,
		Body:      "   ",
	})
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
	assert.Empty(t, deps.broker.published)
}

func TestChatService_NonParticipantDenied(t *testing.T) {
	svc, deps := newChatServiceForTest()
	request, _, _ := seedChatRoom(t, deps)
	intruder := uuid.New()

	_, err := svc.Post(context.Background(), usecase.PostMessageInput{
		RequestID: request.ID,
		SenderID:  intruder,
		Body:      "hola",
	})
	assert.ErrorIs(t, err, domainerrors.ErrNotParticipant)

	_, err = svc.History(context.Background(), intruder, request.ID)
	assert.ErrorIs(t, err, domainerrors.ErrNotParticipant)

	_, err = svc.Stream(context.Background(), intruder, request.ID)
	assert.ErrorIs(t, err, domainerrors.ErrNotParticipant)
}

func TestChatService_HistoryOrdersByArrival(t *testing.T) {
	svc, deps := newChatServiceForTest()
	request, requester, provider := seedChatRoom(t, deps)

	for _, post := range []struct {
		sender uuid.UUID
		body   string
	}{
		{requester.ID, "¿Sigue disponible?"},
		{provider.ID, "Sí, puedes pasar hoy"},
	} {
		_, err := svc.Post(context.Background(), usecase.PostMessageInput{
			RequestID: request.ID,
			SenderID:  post.sender,
			Body:      post.body,
		})
		require.NoError(t, err)
	}

	history, err := svc.History(context.Background(), provider.ID, request.ID)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "¿Sigue disponible?", history[0].Body)
	assert.Equal(t, "Sí, puedes pasar hoy", history[1].Body)
}

func TestChatService_StreamReceivesPosts(t *testing.T) {
	svc, deps := newChatServiceForTest()
	request, requester, provider := seedChatRoom(t, deps)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stream, err := svc.Stream(ctx, provider.ID, request.ID)
	require.NoError(t, err)

	_, err = svc.Post(context.Background(), usecase.PostMessageInput{
		RequestID: request.ID,
		SenderID:  requester.ID,
		Body:      "Voy en camino",
	})
	require.NoError(t, err)

	received := <-stream
	require.NotNil(t, received)
	assert.Equal(t, "Voy en camino", received.Body)
}

func TestChatService_UnknownRoom(t *testing.T) {
	svc, _ := newChatServiceForTest()

	_, err := svc.History(context.Background(), uuid.New(), uuid.New())
	assert.ErrorIs(t, err, domainerrors.ErrRequestNotFound)
}

package impl

import (
	"context"
	"testing"

	"lifelink/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSupportService_SubmitAndList(t *testing.T) {
	ticketRepo := &fakeTicketRepo{}
	svc := NewSupportService(SupportServiceParams{
		TicketRepo: ticketRepo,
		Logger:     testLogger(),
	})

	userID := uuid.New()
	ticket, err := svc.Submit(context.Background(), usecase.SubmitTicketInput{
		UserID:  userID,
		Subject: "No puedo publicar mi donación",
		Message: "La aplicación marca un error al subir la imagen.",
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, ticket.ID)
	assert.Equal(t, userID, ticket.UserID)

	tickets, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, tickets, 1)
	assert.Equal(t, "No puedo publicar mi donación", tickets[0].Subject)
}

package qrcode

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQRCodeService_GenerateAndParse(t *testing.T) {
	svc := NewQRCodeService(256, "M")
	requestID := uuid.New()

	png, err := svc.GenerateHandoffQR(requestID)
	require.NoError(t, err)
	assert.NotEmpty(t, png)

	// Round-trip the payload directly, the PNG itself is opaque.
	payload, err := json.Marshal(QRCodeData{RequestID: requestID.String(), Type: "handoff"})
	require.NoError(t, err)

	parsed, err := svc.ParseHandoffQR(string(payload))
	require.NoError(t, err)
	assert.Equal(t, requestID, parsed)
}

func TestQRCodeService_ParseRejectsWrongType(t *testing.T) {
	svc := NewQRCodeService(256, "M")

	payload, err := json.Marshal(QRCodeData{RequestID: uuid.New().String(), Type: "subscription"})
	require.NoError(t, err)

	_, err = svc.ParseHandoffQR(string(payload))
	assert.Error(t, err)
}

func TestQRCodeService_ParseRejectsGarbage(t *testing.T) {
	svc := NewQRCodeService(256, "M")

	_, err := svc.ParseHandoffQR("not json")
	assert.Error(t, err)
}

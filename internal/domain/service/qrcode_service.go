package service

import (
	"github.com/google/uuid"
)

// QRCodeService defines the interface for QR code generation and parsing services
type QRCodeService interface {
	// GenerateHandoffQR generates the QR code a provider scans to confirm a
	// supply request handoff.
	GenerateHandoffQR(requestID uuid.UUID) ([]byte, error)

	// ParseHandoffQR parses QR code data and returns the request ID
	ParseHandoffQR(qrData string) (uuid.UUID, error)
}

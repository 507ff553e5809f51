package wallet

import (
	"context"
	"encoding/base64"
	"fmt"

	"pkwallet/internal/model"

	"github.com/skip2/go-qrcode"
)

// Receive returns the connected wallet's address with a QR code for
// scanning.
func (s *Service) Receive(ctx context.Context) (*model.ReceiveResponse, error) {
	rec, err := s.currentSession(ctx)
	if err != nil {
		return nil, err
	}

	qr, err := generateQRCode(rec.Address)
	if err != nil {
		return nil, err
	}

	return &model.ReceiveResponse{
		Address: rec.Address,
		QR:      qr,
	}, nil
}

// generateQRCode generates a QR code of the address in base64
func generateQRCode(address string) (string, error) {
	qr, err := qrcode.New(address, qrcode.Medium)
	if err != nil {
		return "", fmt.Errorf("failed to create QR code: %w", err)
	}

	png, err := qr.PNG(256)
	if err != nil {
		return "", fmt.Errorf("failed to generate PNG: %w", err)
	}

	return base64.StdEncoding.EncodeToString(png), nil
}

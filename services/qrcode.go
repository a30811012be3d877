package services

import (
	"github.com/skip2/go-qrcode"
)

type QRGenerator interface {
	Generate(orderCode string) ([]byte, error)
}

// DefaultQRGenerator renders the order code itself as a 256px PNG.
type DefaultQRGenerator struct{}

func (DefaultQRGenerator) Generate(orderCode string) ([]byte, error) {
	return qrcode.Encode(orderCode, qrcode.Medium, 256)
}

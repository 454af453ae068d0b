package service

import (
	"fmt"

	"github.com/skip2/go-qrcode"
)

type QRGenerator interface {
	Generate(orderID int) ([]byte, error)
}

// DefaultQRGenerator renders the QRIS deep link a payment app scans to
// confirm the order out of band.
type DefaultQRGenerator struct {
	BaseURL string
}

func (g DefaultQRGenerator) Generate(orderID int) ([]byte, error) {
	qrData := fmt.Sprintf("%s/autoProcess?orderId=%d&paymentSuccess=true&autoConfirm=true", g.BaseURL, orderID)
	return qrcode.Encode(qrData, qrcode.Medium, 256)
}

// Package qr renders booking vouchers as QR codes.
package qr

import (
	"fmt"

	qrcode "github.com/skip2/go-qrcode"
)

const voucherSize = 256

// VoucherPNG encodes the voucher payload as a PNG image.
func VoucherPNG(payload string) ([]byte, error) {
	if payload == "" {
		return nil, fmt.Errorf("qr: empty payload")
	}
	png, err := qrcode.Encode(payload, qrcode.Medium, voucherSize)
	if err != nil {
		return nil, fmt.Errorf("qr: encode: %w", err)
	}
	return png, nil
}

// VoucherPayload is the text scanned at the front desk.
func VoucherPayload(code, checkIn, checkOut string) string {
	return fmt.Sprintf("%s|%s|%s", code, checkIn, checkOut)
}

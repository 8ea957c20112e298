// utils/qr.go
package utils

import (
	"fmt"
	"os"
	"path/filepath"

	qrcode "github.com/skip2/go-qrcode"
)

// WriteStoreQR renders the store's PromptPay target as a QR PNG under
// qr/{storeID}/ and returns its public URL path.
func WriteStoreQR(root string, storeID uint, promptPayID string) (string, error) {
	folder := filepath.Join(root, "qr", fmt.Sprintf("%d", storeID))
	if err := os.MkdirAll(folder, 0755); err != nil {
		return "", err
	}
	path := filepath.Join(folder, "promptpay.png")
	if err := qrcode.WriteFile(promptPayID, qrcode.Medium, 512, path); err != nil {
		return "", err
	}
	return fmt.Sprintf("/uploads/qr/%d/promptpay.png", storeID), nil
}

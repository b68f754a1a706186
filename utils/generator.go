package utils

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/anjiri1684/stackfit/models"
	"gorm.io/gorm"
)

const receiptCodeLength = 8
const letterBytes = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateUniqueReceiptNumber produces a RCP-XXXXXXXX code not yet used by
// any payment row.
func GenerateUniqueReceiptNumber(tx *gorm.DB) (string, error) {
	seededRand := rand.New(rand.NewSource(time.Now().UnixNano()))

	for {
		b := make([]byte, receiptCodeLength)
		for i := range b {
			b[i] = letterBytes[seededRand.Intn(len(letterBytes))]
		}
		code := fmt.Sprintf("RCP-%s", string(b))

		var payment models.Payment
		err := tx.Where("receipt_number = ?", code).First(&payment).Error
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return code, nil
			}
			return "", err
		}
	}
}

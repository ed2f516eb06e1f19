package auth

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"
)

const OTPLength = 6

var otpMax = big.NewInt(1_000_000)

// GenerateOTP returns a zero-padded six digit code.
func GenerateOTP() (string, error) {
	return generateOTP(rand.Reader)
}

func generateOTP(r io.Reader) (string, error) {
	n, err := rand.Int(r, otpMax)
	if err != nil {
		return "", fmt.Errorf("generate otp: %w", err)
	}
	return fmt.Sprintf("%0*d", OTPLength, n.Int64()), nil
}

func ValidOTPFormat(code string) bool {
	if len(code) != OTPLength {
		return false
	}
	for _, r := range code {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

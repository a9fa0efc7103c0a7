package cryptox

import (
	"io"
	"strings"

	"github.com/dmitrijs2005/evote/internal/common"
)

// VerificationCodePrefix starts every receipt code.
const VerificationCodePrefix = "VER-"

const verificationCodeBytes = 8

// NewVerificationCode returns "VER-" followed by 16 uppercase hex digits
// read from random. Uniqueness is the storage layer's job.
func NewVerificationCode(random io.Reader) (string, error) {
	digits, err := common.MakeRandHexString(random, verificationCodeBytes)
	if err != nil {
		return "", err
	}
	return VerificationCodePrefix + strings.ToUpper(digits), nil
}

// IsVerificationCode reports whether s has the receipt code format.
func IsVerificationCode(s string) bool {
	digits, ok := strings.CutPrefix(s, VerificationCodePrefix)
	if !ok || len(digits) != verificationCodeBytes*2 {
		return false
	}
	for _, c := range digits {
		if !(c >= '0' && c <= '9' || c >= 'A' && c <= 'F') {
			return false
		}
	}
	return true
}

// Package hash 封装操作员密码的 bcrypt 哈希。
package hash

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// MinPasswordLength 是操作员密码的最小长度。
const MinPasswordLength = 6

var ErrPasswordTooShort = errors.New("password too short")

// HashPassword 校验长度后使用 bcrypt 哈希密码。
func HashPassword(password string) (string, error) {
	if len(password) < MinPasswordLength {
		return "", ErrPasswordTooShort
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// CheckPasswordHash 检查密码是否与哈希匹配
func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

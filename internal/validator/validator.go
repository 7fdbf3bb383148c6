package validator

import (
	"errors"
	"net/mail"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

const MinPasswordLength = 6

var (
	// 入力が不正
	ErrUsernameRequired  = errors.New("username is required")
	ErrInvalidEmail      = errors.New("invalid email")
	ErrPasswordTooShort  = errors.New("password must be at least 6 characters")
	ErrCategoryName      = errors.New("category name must contain only letters and spaces")
	ErrProductName       = errors.New("product name is required")
	ErrProductDesc       = errors.New("product description is required")
	ErrNegativePrice     = errors.New("price must not be negative")
	ErrPriceScale        = errors.New("price must have at most 2 decimal places")
	ErrNegativeStock     = errors.New("stock quantity must not be negative")
	ErrCredentialMissing = errors.New("username and password are required")
)

var categoryNameRe = regexp.MustCompile(`^[A-Za-z ]+$`)

// 会員登録の入力を検証
func ValidateRegister(username, password, email string) error {
	if strings.TrimSpace(username) == "" {
		return ErrUsernameRequired
	}
	if !IsEmail(email) {
		return ErrInvalidEmail
	}
	if len(password) < MinPasswordLength {
		return ErrPasswordTooShort
	}
	return nil
}

// ログインの入力を検証
func ValidateLogin(username, password string) error {
	if strings.TrimSpace(username) == "" || password == "" {
		return ErrCredentialMissing
	}
	return nil
}

// 空の項目は「変更しない」
func ValidateProfileUpdate(password, email string) error {
	if email != "" && !IsEmail(email) {
		return ErrInvalidEmail
	}
	if password != "" && len(password) < MinPasswordLength {
		return ErrPasswordTooShort
	}
	return nil
}

func ValidateCategoryName(name string) error {
	if strings.TrimSpace(name) == "" || !categoryNameRe.MatchString(name) {
		return ErrCategoryName
	}
	return nil
}

func ValidateProduct(name, description string, price decimal.Decimal, stock int64) error {
	if strings.TrimSpace(name) == "" {
		return ErrProductName
	}
	if strings.TrimSpace(description) == "" {
		return ErrProductDesc
	}
	if price.IsNegative() {
		return ErrNegativePrice
	}
	if !price.Equal(price.Round(2)) {
		return ErrPriceScale
	}
	if stock < 0 {
		return ErrNegativeStock
	}
	return nil
}

// メールチェック
func IsEmail(email string) bool {
	trimmed := strings.TrimSpace(email)
	if trimmed == "" {
		return false
	}
	addr, err := mail.ParseAddress(trimmed)
	// "Name <a@b>" 形式は通さない
	return err == nil && addr.Address == trimmed
}

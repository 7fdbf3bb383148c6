package validator_test

import (
	"testing"

	"ecommerce/internal/validator"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestValidateRegister(t *testing.T) {
	assert.NoError(t, validator.ValidateRegister("alice", "secret1", "alice@example.com"))
	assert.ErrorIs(t, validator.ValidateRegister(" ", "secret1", "alice@example.com"), validator.ErrUsernameRequired)
	assert.ErrorIs(t, validator.ValidateRegister("alice", "12345", "alice@example.com"), validator.ErrPasswordTooShort)
	assert.ErrorIs(t, validator.ValidateRegister("alice", "secret1", "Alice <alice@example.com>"), validator.ErrInvalidEmail)
}

func TestValidateCategoryName(t *testing.T) {
	assert.NoError(t, validator.ValidateCategoryName("Home Goods"))
	assert.Error(t, validator.ValidateCategoryName(""))
	assert.Error(t, validator.ValidateCategoryName("Books2"))
	assert.Error(t, validator.ValidateCategoryName("Toys & Games"))
}

func TestValidateProduct(t *testing.T) {
	price := decimal.RequireFromString("9.99")
	assert.NoError(t, validator.ValidateProduct("Mug", "ceramic", price, 0))
	assert.ErrorIs(t, validator.ValidateProduct("", "ceramic", price, 0), validator.ErrProductName)
	assert.ErrorIs(t, validator.ValidateProduct("Mug", "", price, 0), validator.ErrProductDesc)
	assert.ErrorIs(t, validator.ValidateProduct("Mug", "ceramic", price.Neg(), 0), validator.ErrNegativePrice)
	assert.ErrorIs(t, validator.ValidateProduct("Mug", "ceramic", decimal.RequireFromString("9.999"), 0), validator.ErrPriceScale)
	assert.NoError(t, validator.ValidateProduct("Mug", "ceramic", decimal.RequireFromString("9.990"), 0))
	assert.ErrorIs(t, validator.ValidateProduct("Mug", "ceramic", price, -1), validator.ErrNegativeStock)
}

func TestValidateProfileUpdate(t *testing.T) {
	assert.NoError(t, validator.ValidateProfileUpdate("", ""))
	assert.Error(t, validator.ValidateProfileUpdate("123", ""))
	assert.Error(t, validator.ValidateProfileUpdate("", "bad"))
}

package validator

import (
	"errors"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/x-xyz/collectibles/domain"
)

// IsValidAddress returns is an address valid or not
func IsValidAddress(address string) bool {
	if !common.IsHexAddress(address) {
		return false
	}
	checksum := common.HexToAddress(address).Hex()
	return strings.ToLower(checksum) == strings.ToLower(address)
}

func New() *validator.Validate {
	return validator.New()
}

func NewCustomValidator(v *validator.Validate) echo.Validator {
	return &CustomValidator{v}
}

type CustomValidator struct {
	validator *validator.Validate
}

func (v *CustomValidator) Validate(i interface{}) error {
	if err := v.validator.Struct(i); err != nil {
		return Collect(err, nil)
	}
	return nil
}

// Collect appends every field error of err to verr and returns it. A nil
// verr starts a new ValidationError.
func Collect(err error, verr *domain.ValidationError) *domain.ValidationError {
	if verr == nil {
		verr = &domain.ValidationError{}
	}
	if err == nil {
		return verr
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		verr.Add("", err.Error())
		return verr
	}
	for _, fe := range fieldErrs {
		verr.Add(lowerFirst(fe.Field()), reason(fe))
	}
	return verr
}

func reason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "oneof":
		return "must be one of " + fe.Param()
	case "eth_addr":
		return "must be an address"
	case "max":
		return "must be at most " + fe.Param() + " long"
	}
	return "failed on " + fe.Tag()
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}

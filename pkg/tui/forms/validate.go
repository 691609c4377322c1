package forms

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/salcops/ncadmin/pkg/format"
)

func required(v Values, key, label string) error {
	if strings.TrimSpace(v[key]) == "" {
		return fmt.Errorf("%s é obrigatório", label)
	}
	return nil
}

func amount(v Values, key, label string) (float64, error) {
	n, err := format.ParseAmount(v[key])
	if err != nil {
		return 0, fmt.Errorf("%s: %v", label, err)
	}
	if n < 0.01 {
		return 0, fmt.Errorf("%s deve ser no mínimo R$ 0,01", label)
	}
	return n, nil
}

func date(v Values, key, label string) (time.Time, error) {
	t, err := format.ParseDate(v[key])
	if err != nil {
		return time.Time{}, fmt.Errorf("%s: %v", label, err)
	}
	return t, nil
}

func expenseNature(s string) error {
	if len(s) != 6 {
		return errors.New("ND deve ter exatamente 6 dígitos")
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return errors.New("ND deve conter apenas dígitos")
		}
	}
	return nil
}

// passwordStrength mirrors the server's account policy so weak passwords are
// rejected before the request is sent.
func passwordStrength(s string) error {
	if len(s) < 8 {
		return errors.New("senha deve ter no mínimo 8 caracteres")
	}
	var upper, lower, digit bool
	for _, r := range s {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	if !upper || !lower || !digit {
		return errors.New("senha deve combinar maiúsculas, minúsculas e dígitos")
	}
	return nil
}

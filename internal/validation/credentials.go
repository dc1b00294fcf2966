package validation

import (
	"errors"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
)

const (
	// MaxUsernameLen максимальная длина username
	MaxUsernameLen = 64
	// MaxPasswordLen максимальная длина пароля в байтах
	MaxPasswordLen = 128
)

var (
	// ErrBlank значение пустое или состоит только из пробелов
	ErrBlank = errors.New("cannot be blank")
	// ErrPasswordMismatch пароль и подтверждение не совпадают
	ErrPasswordMismatch = errors.New("passwords do not match")
)

// notBlank отклоняет пустые строки и строки из одних пробелов.
// validation.Required считает "   " заполненным значением, поэтому свое правило.
var notBlank = validation.By(func(value interface{}) error {
	s, _ := value.(string)
	if strings.TrimSpace(s) == "" {
		return ErrBlank
	}
	return nil
})

// equalTo проверяет, что строка совпадает с other
func equalTo(other string) validation.Rule {
	return validation.By(func(value interface{}) error {
		s, _ := value.(string)
		if s != other {
			return ErrPasswordMismatch
		}
		return nil
	})
}

// Registration входные данные регистрации
type Registration struct {
	Username        string `json:"username"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

// Validate проверяет, что все поля заполнены и пароли совпадают
func (r Registration) Validate() error {
	confirmRules := []validation.Rule{notBlank}
	if strings.TrimSpace(r.Password) != "" {
		confirmRules = append(confirmRules, equalTo(r.Password))
	}

	return validation.ValidateStruct(&r,
		validation.Field(&r.Username, notBlank, validation.Length(1, MaxUsernameLen)),
		validation.Field(&r.Password, notBlank, validation.Length(1, MaxPasswordLen)),
		validation.Field(&r.ConfirmPassword, confirmRules...),
	)
}

// Login входные данные для входа
type Login struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Validate проверяет, что оба поля заполнены.
// Длину не проверяем: неверные данные должны давать общую ошибку аутентификации.
func (l Login) Validate() error {
	return validation.ValidateStruct(&l,
		validation.Field(&l.Username, notBlank),
		validation.Field(&l.Password, notBlank),
	)
}

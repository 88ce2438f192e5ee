package user

import (
	"errors"
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	ErrInvalidEmail    = errors.New("invalid email format")
	ErrInvalidRole     = errors.New("invalid role")
	ErrPasswordTooWeak = errors.New("password must be at least 8 characters long")
	ErrInvalidName     = errors.New("name is required")
	ErrInvalidPhone    = errors.New("invalid phone number")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
)

const maxProfileFieldLength = 200

var (
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	phoneRegex = regexp.MustCompile(`^\+?[0-9 ()\-]{6,20}$`)
)

type Email struct {
	value string
}

func NewEmail(s string) (Email, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if !emailRegex.MatchString(s) {
		return Email{}, ErrInvalidEmail
	}
	return Email{value: s}, nil
}

func (e Email) Value() string {
	return e.value
}

type Password struct {
	value string
}

func NewPassword(s string) (Password, error) {
	if len(s) < 8 {
		return Password{}, ErrPasswordTooWeak
	}
	return Password{value: s}, nil
}

func (p Password) Value() string {
	return p.value
}

// Profile holds the contact details shown to recipients next to a donor's posts.
type Profile struct {
	name    string
	phone   string
	address string
}

func NewProfile(name, phone, address string) (Profile, error) {
	name = strings.TrimSpace(name)
	phone = strings.TrimSpace(phone)
	address = strings.TrimSpace(address)

	if name == "" {
		return Profile{}, ErrInvalidName
	}
	if phone != "" && !phoneRegex.MatchString(phone) {
		return Profile{}, ErrInvalidPhone
	}
	for _, v := range []string{name, address} {
		if utf8.RuneCountInString(v) > maxProfileFieldLength {
			return Profile{}, ErrFieldTooLong
		}
	}
	return Profile{name: name, phone: phone, address: address}, nil
}

func (p Profile) Name() string    { return p.name }
func (p Profile) Phone() string   { return p.phone }
func (p Profile) Address() string { return p.address }

type Credentials struct {
	email    Email
	password Password
}

func NewCredentials(email, password string) (Credentials, error) {
	e, err := NewEmail(email)
	if err != nil {
		return Credentials{}, err
	}
	p, err := NewPassword(password)
	if err != nil {
		return Credentials{}, err
	}
	return Credentials{email: e, password: p}, nil
}

func (c Credentials) Email() Email       { return c.email }
func (c Credentials) Password() Password { return c.password }

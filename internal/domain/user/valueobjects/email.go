package valueobjects

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

const (
	maxEmailLen = 254
	maxLocalLen = 64
)

var ErrInvalidEmail = errors.New("invalid email")

var (
	localPart  = regexp.MustCompile(`^[a-z0-9._%+-]+$`)
	domainPart = regexp.MustCompile(`^([a-z0-9-]+\.)+[a-z]{2,}$`)
)

// Email is stored trimmed and lower-cased; lookups rely on that.
type Email struct {
	value string
}

func NewEmail(raw string) (Email, error) {
	v := strings.ToLower(strings.TrimSpace(raw))
	if v == "" {
		return Email{}, fmt.Errorf("%w: empty", ErrInvalidEmail)
	}
	if len(v) > maxEmailLen {
		return Email{}, fmt.Errorf("%w: longer than %d characters", ErrInvalidEmail, maxEmailLen)
	}

	local, domain, ok := strings.Cut(v, "@")
	if !ok || len(local) > maxLocalLen || !localPart.MatchString(local) || !domainPart.MatchString(domain) {
		return Email{}, fmt.Errorf("%w: %q", ErrInvalidEmail, raw)
	}
	return Email{value: v}, nil
}

func (e Email) String() string { return e.value }

// ReconstructEmail wraps a value read back from storage.
func ReconstructEmail(value string) Email {
	return Email{value: value}
}

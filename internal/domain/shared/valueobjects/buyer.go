package valueobjects

import (
	"fmt"
	"net/mail"
	"strings"
)

// IDType is the Venezuelan identity document prefix.
type IDType string

const (
	IDTypeVenezuelan IDType = "V"
	IDTypeForeign    IDType = "E"
	IDTypePassport   IDType = "P"
	IDTypeCompany    IDType = "J"
	IDTypeGovernment IDType = "G"
)

var validIDTypes = map[IDType]bool{
	IDTypeVenezuelan: true,
	IDTypeForeign:    true,
	IDTypePassport:   true,
	IDTypeCompany:    true,
	IDTypeGovernment: true,
}

func (t IDType) IsValid() bool {
	return validIDTypes[t]
}

func (t IDType) String() string {
	return string(t)
}

// Buyer identifies who paid for a set of tickets. The same data becomes the
// owner of every ticket claimed for that payment.
type Buyer struct {
	Name     string
	Email    string
	Phone    string
	IDType   IDType
	IDNumber string
}

// NewBuyer normalizes and validates buyer contact data. Email is lowercased so
// lookups by email are case insensitive.
func NewBuyer(name, email, phone string, idType IDType, idNumber string) (Buyer, error) {
	b := Buyer{
		Name:     strings.TrimSpace(name),
		Email:    strings.ToLower(strings.TrimSpace(email)),
		Phone:    strings.TrimSpace(phone),
		IDType:   IDType(strings.ToUpper(strings.TrimSpace(string(idType)))),
		IDNumber: strings.TrimSpace(idNumber),
	}
	if err := b.Validate(); err != nil {
		return Buyer{}, err
	}
	return b, nil
}

func (b Buyer) Validate() error {
	if b.Name == "" {
		return fmt.Errorf("buyer name is required")
	}
	if b.Email == "" {
		return fmt.Errorf("buyer email is required")
	}
	if addr, err := mail.ParseAddress(b.Email); err != nil || addr.Address != b.Email {
		return fmt.Errorf("buyer email %q is not valid", b.Email)
	}
	if b.Phone == "" {
		return fmt.Errorf("buyer phone is required")
	}
	if b.IDType != "" && !b.IDType.IsValid() {
		return fmt.Errorf("invalid id type: %s", b.IDType)
	}
	return nil
}

func (b Buyer) IsZero() bool {
	return b == Buyer{}
}

package service

import (
	"golang.org/x/crypto/bcrypt"
)

// PasswordEncoder turns raw passwords into their stored form and checks
// raw candidates against it.
type PasswordEncoder interface {
	Encode(raw string) (string, error)
	Matches(raw, encoded string) bool
}

type BcryptPasswordEncoder struct {
	cost int
}

// NewBcryptPasswordEncoder falls back to bcrypt.DefaultCost when cost is
// outside the range bcrypt accepts.
func NewBcryptPasswordEncoder(cost int) *BcryptPasswordEncoder {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptPasswordEncoder{cost: cost}
}

func (e *BcryptPasswordEncoder) Encode(raw string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(raw), e.cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func (e *BcryptPasswordEncoder) Matches(raw, encoded string) bool {
	return bcrypt.CompareHashAndPassword([]byte(encoded), []byte(raw)) == nil
}

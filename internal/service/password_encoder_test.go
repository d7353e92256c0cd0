package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptPasswordEncoder(t *testing.T) {
	enc := NewBcryptPasswordEncoder(bcrypt.MinCost)

	hashed, err := enc.Encode("correct horse")
	require.NoError(t, err)
	require.NotEqual(t, "correct horse", hashed)

	require.True(t, enc.Matches("correct horse", hashed))
	require.False(t, enc.Matches("wrong horse", hashed))
	require.False(t, enc.Matches("correct horse", "not-a-hash"))
}

func TestBcryptPasswordEncoder_CostFallback(t *testing.T) {
	require.Equal(t, bcrypt.DefaultCost, NewBcryptPasswordEncoder(0).cost)
	require.Equal(t, bcrypt.DefaultCost, NewBcryptPasswordEncoder(bcrypt.MaxCost+1).cost)
	require.Equal(t, 12, NewBcryptPasswordEncoder(12).cost)
}

func TestBcryptPasswordEncoder_TooLong(t *testing.T) {
	enc := NewBcryptPasswordEncoder(bcrypt.MinCost)

	_, err := enc.Encode(strings.Repeat("a", 73))
	require.ErrorIs(t, err, bcrypt.ErrPasswordTooLong)
}

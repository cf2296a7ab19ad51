package common

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func newRandomTestAccount(t *testing.T) *Account {
	account, err := NewRandomAccount()
	require.NoError(t, err)
	return account
}

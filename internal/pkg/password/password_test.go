package password

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashAndVerify(t *testing.T) {
	hash, err := Hash("Sup3rSecret")
	require.NoError(t, err)
	require.NotEqual(t, "Sup3rSecret", hash)

	ok, err := Verify("Sup3rSecret", hash)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = Verify("wrong-password", hash)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestVerifyMalformedHash(t *testing.T) {
	// A corrupted stored hash must fail closed, not error out.
	ok, err := Verify("anything", "not-a-bcrypt-hash")
	require.NoError(t, err)
	require.False(t, ok)

	ok, err = Verify("anything", "")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		password string
		problems int
	}{
		{name: "valid", password: "Abcdefg1", problems: 0},
		{name: "too short", password: "Ab1cdef", problems: 1},
		{name: "missing digit", password: "Abcdefgh", problems: 1},
		{name: "missing uppercase", password: "abcdefg1", problems: 1},
		{name: "missing lowercase", password: "ABCDEFG1", problems: 1},
		{name: "all rules violated at once", password: "???", problems: 4},
		{name: "empty", password: "", problems: 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			problems := Validate(tt.password)
			require.Len(t, problems, tt.problems)
		})
	}
}

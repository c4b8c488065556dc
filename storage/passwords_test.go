package storage

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var testHashParams = Argon2idParams{
	Time:        1,
	MemoryKiB:   1024,
	Parallelism: 1,
	KeyLen:      16,
	SaltLen:     8,
}

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("1234567890", testHashParams)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hash, argon2idPrefix))
	assert.True(t, IsPasswordHash(hash))

	again, err := HashPassword(hash, testHashParams)
	require.NoError(t, err)
	assert.Equal(t, hash, again)

	other, err := HashPassword("1234567890", testHashParams)
	require.NoError(t, err)
	assert.NotEqual(t, hash, other, "salts must differ")

	assert.False(t, IsPasswordHash("1234567890"))
	assert.False(t, IsPasswordHash("$argon2id$broken"))
}

func TestVerifyPassword(t *testing.T) {
	hash, err := HashPassword("1234567890", testHashParams)
	require.NoError(t, err)

	ok, upgrade, err := verifyPassword(hash, "1234567890", testHashParams)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.False(t, upgrade)

	ok, _, err = verifyPassword(hash, "0987654321", testHashParams)
	require.NoError(t, err)
	assert.False(t, ok)

	stronger := testHashParams
	stronger.Time = 2
	ok, upgrade, err = verifyPassword(hash, "1234567890", stronger)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, upgrade)
}

func TestVerifyPasswordBcrypt(t *testing.T) {
	legacy, err := bcrypt.GenerateFromPassword([]byte("1234567890"), bcrypt.MinCost)
	require.NoError(t, err)
	assert.True(t, IsPasswordHash(string(legacy)))

	kept, err := HashPassword(string(legacy), testHashParams)
	require.NoError(t, err)
	assert.Equal(t, string(legacy), kept)

	ok, upgrade, err := verifyPassword(string(legacy), "1234567890", testHashParams)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, upgrade)

	ok, upgrade, err = verifyPassword(string(legacy), "wrong", testHashParams)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.False(t, upgrade)
}

func TestParseArgon2id(t *testing.T) {
	hash, err := hashPasswordArgon2id("secret", testHashParams)
	require.NoError(t, err)
	params, salt, key, err := parseArgon2id(hash)
	require.NoError(t, err)
	assert.True(t, argon2idParamsEqual(testHashParams, params))
	assert.Len(t, salt, int(testHashParams.SaltLen))
	assert.Len(t, key, int(testHashParams.KeyLen))

	for _, broken := range []string{
		"",
		"$argon2id$v=19$m=1024,t=1$c2FsdA$a2V5",
		"$argon2i$v=19$m=1024,t=1,p=1$c2FsdA$a2V5",
		"$argon2id$v=19$m=1024,t=1,p=1$!!!$a2V5",
	} {
		_, _, _, err = parseArgon2id(broken)
		assert.Error(t, err, broken)
	}
}

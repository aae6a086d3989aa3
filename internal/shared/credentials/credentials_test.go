package credentials_test

import (
	"testing"

	"go-elms/internal/shared/credentials"

	"github.com/stretchr/testify/assert"
)

func TestHashAndVerify(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		hash, err := credentials.Hash("s3cret-pass")
		assert.NoError(t, err)
		assert.NotEmpty(t, hash)
		assert.NotEqual(t, "s3cret-pass", hash)

		assert.True(t, credentials.Verify("s3cret-pass", hash))
	})

	t.Run("wrong password fails", func(t *testing.T) {
		hash, err := credentials.Hash("s3cret-pass")
		assert.NoError(t, err)

		assert.False(t, credentials.Verify("not-the-password", hash))
		assert.False(t, credentials.Verify("", hash))
	})

	t.Run("same password hashes differently", func(t *testing.T) {
		first, err := credentials.Hash("s3cret-pass")
		assert.NoError(t, err)
		second, err := credentials.Hash("s3cret-pass")
		assert.NoError(t, err)

		// Salted: both verify, neither equals the other.
		assert.NotEqual(t, first, second)
		assert.True(t, credentials.Verify("s3cret-pass", first))
		assert.True(t, credentials.Verify("s3cret-pass", second))
	})

	t.Run("empty password is accepted", func(t *testing.T) {
		hash, err := credentials.Hash("")
		assert.NoError(t, err)
		assert.True(t, credentials.Verify("", hash))
		assert.False(t, credentials.Verify("x", hash))
	})
}

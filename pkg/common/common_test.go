package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUUIDint64(t *testing.T) {
	a, b := UUIDint64(), UUIDint64()
	assert.Positive(t, a)
	assert.NotEqual(t, a, b)
}

func TestSha256HashWithSalt(t *testing.T) {
	h := Sha256HashWithSalt("ecommerce-fgv", "salt")
	assert.Len(t, h, 64)
	assert.Equal(t, h, Sha256HashWithSalt("ecommerce-fgv", "salt"))
	assert.NotEqual(t, h, Sha256HashWithSalt("ecommerce-fgv", "other"))
}

func TestIfEmptyStr(t *testing.T) {
	assert.Equal(t, "fallback", IfEmptyStr("", "fallback"))
	assert.Equal(t, "value", IfEmptyStr("value", "fallback"))
}

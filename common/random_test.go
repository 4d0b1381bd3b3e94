package common_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"

	. "github.com/hopchain/mhl-lib/common"
)

const (
	randomIntBitLen = 1024
)

func TestGetRandomInt(t *testing.T) {
	rnd := MustGetRandomInt(randomIntBitLen)
	assert.NotZero(t, rnd, "rand int should not be zero")
	assert.True(t, rnd.BitLen() <= randomIntBitLen)
}

func TestGetRandomPositiveInt(t *testing.T) {
	rnd := MustGetRandomInt(randomIntBitLen)
	rndPos := GetRandomPositiveInt(rnd)
	assert.NotZero(t, rndPos, "rand int should not be zero")
	assert.True(t, rndPos.Cmp(big.NewInt(0)) >= 0, "rand int should be positive")
	assert.True(t, rndPos.Cmp(rnd) < 0, "rand int should be below the bound")
}

func TestGetRandomPositiveRelativelyPrimeInt(t *testing.T) {
	rnd := MustGetRandomInt(randomIntBitLen)
	rndPosRP := GetRandomPositiveRelativelyPrimeInt(rnd)
	assert.NotZero(t, rndPosRP, "rand int should not be zero")
	assert.True(t, IsNumberInMultiplicativeGroup(rnd, rndPosRP))
}

func TestRejectionSample(t *testing.T) {
	q := GetRandomPrimeInt(256)
	hash := SHA512_256i(big.NewInt(123), big.NewInt(456))
	e := RejectionSample(q, hash)
	assert.True(t, e.Cmp(q) < 0, "the sampled value must be below q")
	assert.True(t, e.Sign() >= 0)
}

func TestSHA512_256iIsDeterministicAndPositional(t *testing.T) {
	a, b := big.NewInt(7), big.NewInt(11)
	assert.Zero(t, SHA512_256i(a, b).Cmp(SHA512_256i(a, b)))
	assert.NotZero(t, SHA512_256i(a, b).Cmp(SHA512_256i(b, a)))
}

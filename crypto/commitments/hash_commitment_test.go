package commitments_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hopchain/mhl-lib/common"
	. "github.com/hopchain/mhl-lib/crypto/commitments"
)

func TestCreateVerify(t *testing.T) {
	one := big.NewInt(1)
	zero := big.NewInt(0)

	commitment, err := NewHashCommitment(zero, one)
	assert.NoError(t, err)
	pass, err := commitment.Verify()
	assert.NoError(t, err)
	assert.True(t, pass, "must pass")
}

func TestCreateWithRandomnessVerify(t *testing.T) {
	r := common.MustGetRandomInt(HashLength)
	secret := common.MustGetRandomInt(256)

	commitment, err := NewHashCommitmentWithRandomness(r, secret)
	assert.NoError(t, err)
	assert.Equal(t, 0, r.Cmp(commitment.D[0]))
	pass, err := commitment.Verify()
	assert.NoError(t, err)
	assert.True(t, pass, "must pass")
}

func TestDeCommit(t *testing.T) {
	one := big.NewInt(1)
	zero := big.NewInt(0)

	commitment, err := NewHashCommitment(zero, one)
	assert.NoError(t, err)
	pass, secrets, err := commitment.DeCommit()
	assert.NoError(t, err)
	assert.True(t, pass, "must pass")

	assert.NotZero(t, len(secrets), "len(secrets) must be non-zero")
	assert.Equal(t, 0, zero.Cmp(secrets[0]))
	assert.Equal(t, 0, one.Cmp(secrets[1]))
}

// mutating any single decommitment field must flip verification
func TestTamperedDeCommitFails(t *testing.T) {
	secrets := []*big.Int{
		common.MustGetRandomInt(256),
		common.MustGetRandomInt(256),
		common.MustGetRandomInt(256),
	}
	for i := 0; i < len(secrets)+1; i++ { // +1 covers the blinding factor D[0]
		commitment, err := NewHashCommitment(secrets...)
		assert.NoError(t, err)
		commitment.D[i] = new(big.Int).Add(commitment.D[i], big.NewInt(1))
		pass, err := commitment.Verify()
		assert.NoError(t, err)
		assert.False(t, pass, "tampered decommitment must not pass")
	}
}

func TestTamperedCommitmentFails(t *testing.T) {
	commitment, err := NewHashCommitment(common.MustGetRandomInt(256))
	assert.NoError(t, err)
	commitment.C = new(big.Int).Add(commitment.C, big.NewInt(1))
	pass, err := commitment.Verify()
	assert.NoError(t, err)
	assert.False(t, pass, "tampered commitment must not pass")
}

package zkp_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hopchain/mhl-lib/common"
	"github.com/hopchain/mhl-lib/crypto"
	. "github.com/hopchain/mhl-lib/crypto/zkp"
)

func TestSchnorrProof(t *testing.T) {
	q := crypto.S256().Params().N
	u := common.GetRandomPositiveInt(q)

	proof, err := NewDLogProof(crypto.S256(), u)
	assert.NoError(t, err)
	assert.True(t, proof.Alpha.IsOnCurve())
	assert.NotZero(t, proof.Alpha.X())
	assert.NotZero(t, proof.Alpha.Y())
	assert.NotZero(t, proof.T)
	assert.True(t, proof.PK.Equals(crypto.ScalarBaseMult(crypto.S256(), u)))
}

func TestSchnorrProofVerify(t *testing.T) {
	q := crypto.S256().Params().N
	u := common.GetRandomPositiveInt(q)

	proof, err := NewDLogProof(crypto.S256(), u)
	assert.NoError(t, err)
	assert.True(t, proof.Verify(crypto.S256()), "verify result must be true")
}

func TestSchnorrProofVerifyTamperedT(t *testing.T) {
	q := crypto.S256().Params().N
	u := common.GetRandomPositiveInt(q)

	proof, err := NewDLogProof(crypto.S256(), u)
	assert.NoError(t, err)
	proof.T = new(big.Int).Add(proof.T, big.NewInt(1))
	assert.False(t, proof.Verify(crypto.S256()), "verify result must be false")
}

func TestSchnorrProofVerifySwappedStatement(t *testing.T) {
	q := crypto.S256().Params().N
	u, v := common.GetRandomPositiveInt(q), common.GetRandomPositiveInt(q)

	proof, err := NewDLogProof(crypto.S256(), u)
	assert.NoError(t, err)
	proof.PK = crypto.ScalarBaseMult(crypto.S256(), v)
	assert.False(t, proof.Verify(crypto.S256()), "verify result must be false")
}

func TestSchnorrProofNilInput(t *testing.T) {
	_, err := NewDLogProof(crypto.S256(), nil)
	assert.Error(t, err)
}

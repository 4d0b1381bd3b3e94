package paillier_test

import (
	"math/big"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hopchain/mhl-lib/common"
	"github.com/hopchain/mhl-lib/crypto"
	. "github.com/hopchain/mhl-lib/crypto/paillier"
)

// Using a modulus length of 2048 is the conventional choice
const (
	testPaillierKeyLength = 2048
)

var (
	keysOnce   sync.Once
	privateKey *PrivateKey
	publicKey  *PublicKey
)

func testKeys() (*PrivateKey, *PublicKey) {
	keysOnce.Do(func() {
		privateKey, publicKey = GenerateKeyPair(testPaillierKeyLength)
	})
	return privateKey, publicKey
}

func TestGenerateKeyPair(t *testing.T) {
	privateKey, publicKey := testKeys()

	assert.NotZero(t, publicKey)
	assert.NotZero(t, privateKey)
	assert.True(t, testPaillierKeyLength <= publicKey.N.BitLen())
}

func TestEncrypt(t *testing.T) {
	_, publicKey := testKeys()
	cipher, err := publicKey.Encrypt(big.NewInt(1))

	assert.NoError(t, err, "must not error")
	assert.NotZero(t, cipher)
}

func TestEncryptRejectsOutOfRange(t *testing.T) {
	_, publicKey := testKeys()
	_, err := publicKey.Encrypt(big.NewInt(-1))
	assert.Equal(t, ErrMessageTooLong, err)
	_, err = publicKey.Encrypt(publicKey.N)
	assert.Equal(t, ErrMessageTooLong, err)
}

func TestEncryptDecrypt(t *testing.T) {
	privateKey, _ := testKeys()

	exp := big.NewInt(100)
	cypher, err := privateKey.Encrypt(exp)
	if err != nil {
		t.Error(err)
	}
	ret, err := privateKey.Decrypt(cypher)
	assert.NoError(t, err)
	assert.Equal(t, 0, exp.Cmp(ret),
		"wrong decryption ", ret, " is not ", exp)
}

func TestHomoMul(t *testing.T) {
	privateKey, _ := testKeys()

	three, err := privateKey.Encrypt(big.NewInt(3))
	assert.NoError(t, err)

	// for HomoMult, the first argument `m` is not ciphered
	six := big.NewInt(6)

	cm, err := privateKey.HomoMult(six, three)
	assert.NoError(t, err)
	multiple, err := privateKey.Decrypt(cm)
	assert.NoError(t, err)

	// 3 * 6 = 18
	exp := int64(18)
	assert.Equal(t, 0, multiple.Cmp(big.NewInt(exp)))
}

func TestHomoAdd(t *testing.T) {
	privateKey, publicKey := testKeys()

	num1 := big.NewInt(10)
	num2 := big.NewInt(32)

	one, _ := publicKey.Encrypt(num1)
	two, _ := publicKey.Encrypt(num2)

	ciphered, _ := publicKey.HomoAdd(one, two)

	plain, _ := privateKey.Decrypt(ciphered)

	assert.Equal(t, new(big.Int).Add(num1, num2), plain)
}

func TestProofVerify(t *testing.T) {
	privateKey, publicKey := testKeys()
	ki := common.MustGetRandomInt(256)                        // index
	ui := common.GetRandomPositiveInt(crypto.S256().Params().N) // ECDSA private
	yX, yY := crypto.S256().ScalarBaseMult(ui.Bytes())        // ECDSA public
	proof := privateKey.Proof(ki, crypto.NewECPointNoCurveCheck(crypto.S256(), yX, yY))
	res, err := proof.Verify(publicKey.N, ki, crypto.NewECPointNoCurveCheck(crypto.S256(), yX, yY))
	assert.NoError(t, err)
	assert.True(t, res, "proof verify result must be true")
}

func TestProofVerifyFail(t *testing.T) {
	privateKey, publicKey := testKeys()
	ki := common.MustGetRandomInt(256)                        // index
	ui := common.GetRandomPositiveInt(crypto.S256().Params().N) // ECDSA private
	yX, yY := crypto.S256().ScalarBaseMult(ui.Bytes())        // ECDSA public
	proof := privateKey.Proof(ki, crypto.NewECPointNoCurveCheck(crypto.S256(), yX, yY))
	last := proof[len(proof)-1]
	last.Sub(last, big.NewInt(1))
	res, err := proof.Verify(publicKey.N, ki, crypto.NewECPointNoCurveCheck(crypto.S256(), yX, yY))
	assert.NoError(t, err)
	assert.False(t, res, "proof verify result must be false")
}

func TestComputeL(t *testing.T) {
	u := big.NewInt(21)
	n := big.NewInt(3)

	expected := big.NewInt(6)
	actual := L(u, n)

	assert.Equal(t, 0, expected.Cmp(actual))
}

func TestGenerateXs(t *testing.T) {
	k := common.MustGetRandomInt(256)
	sX := common.MustGetRandomInt(256)
	sY := common.MustGetRandomInt(256)
	N := common.GetRandomPrimeInt(2048)

	xs := GenerateXs(13, k, N, crypto.NewECPointNoCurveCheck(crypto.S256(), sX, sY))
	assert.Equal(t, 13, len(xs))
	for _, xi := range xs {
		assert.True(t, common.IsNumberInMultiplicativeGroup(N, xi))
	}
}

// partly ported from:
// https://github.com/KZen-networks/curv/blob/78a70f43f5eda376e5888ce33aec18962f572bbe/src/cryptographic_primitives/commitments/hash_commitment.rs

package commitments

import (
	"crypto"
	"math/big"

	"github.com/pkg/errors"
	_ "golang.org/x/crypto/sha3"

	"github.com/hopchain/mhl-lib/common"
)

const (
	HashLength = 256
)

type (
	HashCommitment   = *big.Int
	HashDeCommitment = []*big.Int

	HashCommitDecommit struct {
		C HashCommitment
		D HashDeCommitment
	}
)

// NewHashCommitmentWithRandomness commits to the secrets under the given
// 256-bit blinding factor r. The blinding is stored as D[0].
func NewHashCommitmentWithRandomness(r *big.Int, secrets ...*big.Int) (*HashCommitDecommit, error) {
	parts := make([]*big.Int, len(secrets)+1)
	parts[0] = r
	for i := 1; i < len(parts); i++ {
		parts[i] = secrets[i-1]
	}
	sha3256Sum, err := generateSHA3_256Digest(parts)
	if err != nil {
		return nil, err
	}

	cmt := &HashCommitDecommit{}
	cmt.C = new(big.Int).SetBytes(sha3256Sum)
	cmt.D = parts
	return cmt, nil
}

func NewHashCommitment(secrets ...*big.Int) (*HashCommitDecommit, error) {
	r := common.MustGetRandomInt(HashLength) // r
	return NewHashCommitmentWithRandomness(r, secrets...)
}

func (cmt *HashCommitDecommit) Verify() (bool, error) {
	C, D := cmt.C, cmt.D
	if C == nil || D == nil {
		return false, errors.New("commitment verify received a nil commitment or decommitment")
	}
	sha3256Sum, err := generateSHA3_256Digest(D)
	if err != nil {
		return false, err
	}
	sha3256SumInt := new(big.Int).SetBytes(sha3256Sum)
	return sha3256SumInt.Cmp(C) == 0, nil
}

func (cmt *HashCommitDecommit) DeCommit() (bool, HashDeCommitment, error) {
	result, err := cmt.Verify()
	if err != nil {
		return false, nil, err
	}
	if result {
		// [1:] skips random element r in D
		return true, cmt.D[1:], nil
	}
	return false, nil, nil
}

func generateSHA3_256Digest(in []*big.Int) ([]byte, error) {
	sha3256 := crypto.SHA3_256.New()
	for _, int := range in {
		_, err := sha3256.Write(int.Bytes())
		if err != nil {
			return nil, err
		}
	}
	return sha3256.Sum(nil), nil
}

package mhl

import (
	"math/big"

	"github.com/hopchain/mhl-lib/common"
	"github.com/hopchain/mhl-lib/crypto"
)

// VerifySignature is canonical ECDSA verification with low-s enforcement:
// (m*s^-1)*G + (r*s^-1)*pk must have x-coordinate equal to r, compared as
// integers, and s must not exceed (q-1)/2.
func VerifySignature(l *L, k *K) error {
	if l == nil || l.M == nil || l.PK == nil || k == nil || k.R == nil || k.S == nil {
		return ErrInvalidSignature
	}
	curve := crypto.S256()
	q := curve.Params().N
	// r, s must be in [1, q-1]
	if k.R.Sign() != 1 || !common.IsInInterval(k.R, q) ||
		k.S.Sign() != 1 || !common.IsInInterval(k.S, q) {
		return ErrInvalidSignature
	}
	qHalf := new(big.Int).Rsh(new(big.Int).Sub(q, big.NewInt(1)), 1)
	if k.S.Cmp(qHalf) == 1 {
		return ErrInvalidSignature
	}

	modQ := common.ModInt(q)
	sInv := modQ.ModInverse(k.S)
	u1 := modQ.Mul(l.M, sInv)
	u2 := modQ.Mul(k.R, sInv) // non-zero since r is

	point := l.PK.ScalarMult(u2)
	if u1.Sign() != 0 {
		var err error
		if point, err = crypto.ScalarBaseMult(curve, u1).Add(point); err != nil {
			return ErrInvalidSignature
		}
	}
	if point == nil || point.X().Cmp(k.R) != 0 {
		return ErrInvalidSignature
	}
	return nil
}

package zkp

import (
	"crypto/elliptic"
	"errors"
	"math/big"

	"github.com/hopchain/mhl-lib/common"
	"github.com/hopchain/mhl-lib/crypto"
)

type (
	// DLogProof is a Schnorr ZK proof of knowledge of x such that PK = x*G.
	// The statement PK travels with the proof so that a verifier can bind it
	// to an externally known point.
	DLogProof struct {
		PK    *crypto.ECPoint
		Alpha *crypto.ECPoint
		T     *big.Int
	}
)

// NewDLogProof constructs a new Schnorr ZK proof of knowledge of the discrete logarithm x of PK = x*G
func NewDLogProof(curve elliptic.Curve, x *big.Int) (*DLogProof, error) {
	if x == nil {
		return nil, errors.New("NewDLogProof received nil value(s)")
	}
	q := curve.Params().N
	g := crypto.BasePoint(curve)
	X := crypto.ScalarBaseMult(curve, x)

	a := common.GetRandomPositiveInt(q)
	alpha := crypto.ScalarBaseMult(curve, a)

	var c *big.Int
	{
		cHash := common.SHA512_256i(X.X(), X.Y(), g.X(), g.Y(), alpha.X(), alpha.Y())
		c = common.RejectionSample(q, cHash)
	}
	t := new(big.Int).Mul(c, x)
	t = common.ModInt(q).Add(a, t)

	return &DLogProof{PK: X, Alpha: alpha, T: t}, nil
}

// Verify checks the proof against its embedded statement PK
func (pf *DLogProof) Verify(curve elliptic.Curve) bool {
	if pf == nil || !pf.ValidateBasic() {
		return false
	}
	q := curve.Params().N
	g := crypto.BasePoint(curve)

	var c *big.Int
	{
		cHash := common.SHA512_256i(pf.PK.X(), pf.PK.Y(), g.X(), g.Y(), pf.Alpha.X(), pf.Alpha.Y())
		c = common.RejectionSample(q, cHash)
	}
	tG := crypto.ScalarBaseMult(curve, pf.T)
	Xc := pf.PK.ScalarMult(c)
	aXc, err := pf.Alpha.Add(Xc)
	if err != nil {
		return false
	}
	if aXc.X().Cmp(tG.X()) != 0 || aXc.Y().Cmp(tG.Y()) != 0 {
		return false
	}
	return true
}

func (pf *DLogProof) ValidateBasic() bool {
	return pf.T != nil &&
		pf.PK != nil && pf.PK.ValidateBasic() &&
		pf.Alpha != nil && pf.Alpha.ValidateBasic()
}

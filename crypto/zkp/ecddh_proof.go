package zkp

import (
	"crypto/elliptic"
	"math/big"

	"github.com/hopchain/mhl-lib/common"
	"github.com/hopchain/mhl-lib/crypto"
)

type (
	// ECDDHStatement is a DDH tuple {G, H1, G2, H2} with H1 = x*G, H2 = x*G2.
	// The first base is always the curve generator.
	ECDDHStatement struct {
		Curve elliptic.Curve
		G2,
		H1, H2 *crypto.ECPoint
	}

	ECDDHWitness struct {
		X *big.Int
	}

	// ECDDHProof is a Chaum-Pedersen proof that log_G(H1) = log_G2(H2)
	ECDDHProof struct {
		A1, A2 *crypto.ECPoint
		Z      *big.Int
	}
)

func NewECDDHProof(wit ECDDHWitness, st ECDDHStatement) ECDDHProof {
	g1 := crypto.BasePoint(st.Curve)
	s := common.GetRandomPositiveInt(st.Curve.Params().N)
	a1 := crypto.ScalarBaseMult(st.Curve, s)
	a2 := st.G2.ScalarMult(s)
	e := common.SHA512_256(g1.Bytes(), st.H1.Bytes(), st.G2.Bytes(), st.H2.Bytes(), a1.Bytes(), a2.Bytes())
	eWX := new(big.Int).SetBytes(e)
	eWX.Mul(eWX, wit.X)
	return ECDDHProof{
		A1: a1,
		A2: a2,
		Z:  s.Add(s, eWX),
	}
}

func (pf *ECDDHProof) Verify(st ECDDHStatement) bool {
	g1 := crypto.BasePoint(st.Curve)
	zG1, zG2 := crypto.ScalarBaseMult(st.Curve, pf.Z), st.G2.ScalarMult(pf.Z)
	e := common.SHA512_256(g1.Bytes(), st.H1.Bytes(), st.G2.Bytes(), st.H2.Bytes(), pf.A1.Bytes(), pf.A2.Bytes())
	eInt := new(big.Int).SetBytes(e)
	if a1PlusEH1, err := st.H1.ScalarMult(eInt).Add(pf.A1); err == nil {
		if a2PlusEH2, err := st.H2.ScalarMult(eInt).Add(pf.A2); err == nil {
			return zG1.Equals(a1PlusEH1) && zG2.Equals(a2PlusEH2)
		}
	}
	return false
}

func (pf *ECDDHProof) ValidateBasic() bool {
	return pf != nil && pf.Z != nil &&
		pf.A1 != nil && pf.A1.ValidateBasic() &&
		pf.A2 != nil && pf.A2.ValidateBasic()
}

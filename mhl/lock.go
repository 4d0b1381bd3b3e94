package mhl

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/hopchain/mhl-lib/common"
	"github.com/hopchain/mhl-lib/crypto"
	"github.com/hopchain/mhl-lib/crypto/commitments"
	"github.com/hopchain/mhl-lib/crypto/paillier"
	"github.com/hopchain/mhl-lib/crypto/zkp"
)

// The lock protocol is a four-message exchange between Party 1 (responder,
// holds the ECDSA share x_1 and the key-gen-time Paillier encryption of x_0)
// and Party 0 (initiator, holds x_0 and the Paillier key pair). It produces
// a pre-signature scalar bound to the hop's adaptor point Y: completing it
// into a valid ECDSA signature requires the discrete log of Y.
//
// Message structs are value-only; the caller owns the wire encoding.
type (
	// LockParty1Message1 carries Party 1's hash commitment to its nonce
	// points and the DLEQ proof's points A1, A2 (the response Z is not
	// committed). Commit-then-reveal stops Party 1 from adapting
	// its nonce to Party 0's.
	LockParty1Message1 struct {
		Commitment commitments.HashCommitment
	}

	// LockDecommitment opens LockParty1Message1.
	LockDecommitment struct {
		BlindFactor *big.Int
		R1          *crypto.ECPoint
		R1Tag       *crypto.ECPoint
		DDHProof    zkp.ECDDHProof
	}

	// LockParty0Message1 carries Party 0's nonce points in the clear.
	LockParty0Message1 struct {
		R0       *crypto.ECPoint
		R0Tag    *crypto.ECPoint
		DDHProof zkp.ECDDHProof
	}

	// PartialSig is the Paillier encryption of r_1^-1 * (m + r_x*x_1*x_0),
	// statistically masked by rho*q.
	PartialSig struct {
		CTag *big.Int
	}

	LockParty1Message2 struct {
		Decommitment LockDecommitment
		PartialSig   PartialSig
	}

	// LockParty0Message2 carries the pre-signature scalar for the left
	// neighbour to verify and, once the hop secret is known, complete.
	LockParty0Message2 struct {
		STag *big.Int
	}
)

// LockParty1Round1 samples Party 1's nonce r_1 and commits to
// (R_1, R_1', A1, A2) of its DLEQ proof. The decommitment is kept private
// until round 3.
func LockParty1Round1(Y *crypto.ECPoint) (r1 *big.Int, decom *LockDecommitment, msg *LockParty1Message1, err error) {
	curve := crypto.S256()
	r1 = common.GetRandomPositiveInt(curve.Params().N)
	R1 := crypto.ScalarBaseMult(curve, r1)
	R1Tag := Y.ScalarMult(r1)
	ddhProof := zkp.NewECDDHProof(
		zkp.ECDDHWitness{X: r1},
		zkp.ECDDHStatement{Curve: curve, G2: Y, H1: R1, H2: R1Tag},
	)
	cmt, err := commitments.NewHashCommitment(lockCommitmentHash(R1, R1Tag, &ddhProof))
	if err != nil {
		return nil, nil, nil, errors.Wrap(err, "lock party 1 round 1: commitment")
	}
	decom = &LockDecommitment{
		BlindFactor: cmt.D[0],
		R1:          R1,
		R1Tag:       R1Tag,
		DDHProof:    ddhProof,
	}
	return r1, decom, &LockParty1Message1{Commitment: cmt.C}, nil
}

// LockParty0Round1 samples Party 0's nonce r_0 and sends its points and DLEQ
// proof in the clear.
func LockParty0Round1(Y *crypto.ECPoint) (r0 *big.Int, msg *LockParty0Message1) {
	curve := crypto.S256()
	r0 = common.GetRandomPositiveInt(curve.Params().N)
	R0 := crypto.ScalarBaseMult(curve, r0)
	R0Tag := Y.ScalarMult(r0)
	ddhProof := zkp.NewECDDHProof(
		zkp.ECDDHWitness{X: r0},
		zkp.ECDDHStatement{Curve: curve, G2: Y, H1: R0, H2: R0Tag},
	)
	return r0, &LockParty0Message1{R0: R0, R0Tag: R0Tag, DDHProof: ddhProof}
}

// LockParty1Round2 verifies Party 0's DLEQ proof and produces the encrypted
// partial signature together with the decommitment of round 1.
//
// Precondition: encryptedSecretShare is the Paillier encryption of the
// counterparty share x_0 under pk, handed to Party 1 by the preceding
// two-party ECDSA key generation. It is consumed here without
// re-verification.
func LockParty1Round2(
	msg0 *LockParty0Message1,
	decom *LockDecommitment,
	pk *paillier.PublicKey,
	x1 *big.Int,
	encryptedSecretShare *big.Int,
	message *big.Int,
	r1 *big.Int,
	Y *crypto.ECPoint,
) (*LockParty1Message2, error) {
	curve := crypto.S256()
	q := curve.Params().N
	modQ := common.ModInt(q)

	ok := msg0.DDHProof.Verify(zkp.ECDDHStatement{
		Curve: curve, G2: Y, H1: msg0.R0, H2: msg0.R0Tag,
	})
	if !ok {
		return nil, ErrBadNIZK
	}

	// R = r_1 * r_0 * Y; not a standard ECDSA nonce point
	R := msg0.R0Tag.ScalarMult(r1)
	rx := new(big.Int).Mod(R.X(), q)

	// statistical masking: the Paillier plaintext space is far larger than q
	rho := common.GetRandomPositiveInt(new(big.Int).Mul(q, q))
	r1Inv := modQ.ModInverse(r1)

	plain := new(big.Int).Mul(rho, q)
	plain = plain.Add(plain, modQ.Mul(r1Inv, message))
	c1, err := pk.Encrypt(plain)
	if err != nil {
		return nil, errors.Wrap(err, "lock party 1 round 2: encrypt")
	}
	v := modQ.Mul(r1Inv, modQ.Mul(rx, x1))
	c2, err := pk.HomoMult(v, encryptedSecretShare)
	if err != nil {
		return nil, errors.Wrap(err, "lock party 1 round 2: homo mult")
	}
	cTag, err := pk.HomoAdd(c1, c2)
	if err != nil {
		return nil, errors.Wrap(err, "lock party 1 round 2: homo add")
	}

	return &LockParty1Message2{
		Decommitment: *decom,
		PartialSig:   PartialSig{CTag: cTag},
	}, nil
}

// LockParty0Round2 opens the commitment, verifies Party 1's DLEQ proof,
// decrypts the pre-signature and checks adaptor soundness before anything is
// released downstream. On success it emits sTag = s' * r_0^-1 for the left
// neighbour.
func LockParty0Round2(
	sk *paillier.PrivateKey,
	msg1 *LockParty1Message1,
	msg2 *LockParty1Message2,
	message *big.Int,
	r0 *big.Int,
	Y *crypto.ECPoint,
	pubKey *crypto.ECPoint,
) (sTag *big.Int, out *LockParty0Message2, err error) {
	curve := crypto.S256()
	q := curve.Params().N
	modQ := common.ModInt(q)
	decom := &msg2.Decommitment

	cmt, err := commitments.NewHashCommitmentWithRandomness(
		decom.BlindFactor, lockCommitmentHash(decom.R1, decom.R1Tag, &decom.DDHProof))
	if err != nil {
		return nil, nil, errors.Wrap(err, "lock party 0 round 2: commitment")
	}
	if cmt.C.Cmp(msg1.Commitment) != 0 {
		return nil, nil, ErrBadCommitment
	}

	ok := decom.DDHProof.Verify(zkp.ECDDHStatement{
		Curve: curve, G2: Y, H1: decom.R1, H2: decom.R1Tag,
	})
	if !ok {
		return nil, nil, ErrBadNIZK
	}

	// same R as Party 1's, by the DLEQ relation
	R := decom.R1Tag.ScalarMult(r0)
	rx := new(big.Int).Mod(R.X(), q)

	decrypted, err := sk.Decrypt(msg2.PartialSig.CTag)
	if err != nil {
		return nil, nil, errors.Wrap(ErrBadPreSig, err.Error())
	}
	sPrime := new(big.Int).Mod(decrypted, q)

	// adaptor soundness: s' * R_1 == m*G + r_x*pk
	if err := checkPreSignature(sPrime, decom.R1, rx, pubKey, message); err != nil {
		return nil, nil, err
	}

	sTag = modQ.Mul(sPrime, modQ.ModInverse(r0))
	return sTag, &LockParty0Message2{STag: sTag}, nil
}

// Verify is Party 1's symmetric soundness check, run before it forwards
// payment: sTag * r_1 * R_0 == m*G + r_x*pk. It returns the pre-signature
// scalar and r_x for the payment layer to retain.
func (msg *LockParty0Message2) Verify(
	msg0 *LockParty0Message1,
	r1 *big.Int,
	pubKey *crypto.ECPoint,
	message *big.Int,
) (sTag, rx *big.Int, err error) {
	curve := crypto.S256()
	q := curve.Params().N
	modQ := common.ModInt(q)

	R := msg0.R0Tag.ScalarMult(r1)
	rx = new(big.Int).Mod(R.X(), q)

	sPrime := modQ.Mul(msg.STag, r1)
	if err := checkPreSignature(sPrime, msg0.R0, rx, pubKey, message); err != nil {
		return nil, nil, err
	}
	return msg.STag, rx, nil
}

func checkPreSignature(sPrime *big.Int, R *crypto.ECPoint, rx *big.Int, pubKey *crypto.ECPoint, message *big.Int) error {
	curve := crypto.S256()
	q := curve.Params().N
	lhs := R.ScalarMult(new(big.Int).Mod(sPrime, q))
	mG := crypto.ScalarBaseMult(curve, new(big.Int).Mod(message, q))
	rhs, err := mG.Add(pubKey.ScalarMult(rx))
	if err != nil {
		return errors.Wrap(ErrBadPreSig, err.Error())
	}
	if !lhs.Equals(rhs) {
		return ErrBadPreSig
	}
	return nil
}

func lockCommitmentHash(R1, R1Tag *crypto.ECPoint, proof *zkp.ECDDHProof) *big.Int {
	h := common.SHA512_256(R1.Bytes(), R1Tag.Bytes(), proof.A1.Bytes(), proof.A2.Bytes())
	return new(big.Int).SetBytes(h)
}

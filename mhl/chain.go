package mhl

import (
	"math/big"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"

	"github.com/hopchain/mhl-lib/common"
	"github.com/hopchain/mhl-lib/crypto"
	"github.com/hopchain/mhl-lib/crypto/zkp"
)

type (
	// MultiHopLock is the full output of chain setup, held transiently by the
	// path originator. Each ChainLink is delivered to exactly one
	// intermediary; the tail goes to the terminal party.
	MultiHopLock struct {
		N     int
		Y0    *big.Int
		Chain []*ChainLink
		Tail  *ChainLinkTail
	}

	// ChainLink is the transition from hop i-1 to hop i: the per-hop secret
	// y such that Y = YPrev + y*G, and a PoK of the discrete log of Y.
	ChainLink struct {
		YPrev     *crypto.ECPoint
		Y         *crypto.ECPoint
		HopSecret *big.Int
		Proof     *zkp.DLogProof
	}

	// ChainLinkTail is the terminal link. KN is the discrete log of the final
	// point YPrev, held in the clear by the terminal party.
	ChainLinkTail struct {
		YPrev *crypto.ECPoint
		KN    *big.Int
	}
)

// Setup samples the hop secrets y_0, y_1 .. y_{n-1} and derives the chain of
// cumulative points Y_i = (y_0 + ... + y_i) * G, each with a PoK of its
// discrete log. n is the number of hops on the payment path.
func Setup(n int) (*MultiHopLock, error) {
	if n < 2 {
		return nil, errors.Errorf("setup requires a chain of at least 2 hops, got %d", n)
	}
	curve := crypto.S256()
	q := curve.Params().N
	modQ := common.ModInt(q)

	y0 := common.GetRandomPositiveInt(q)

	points := make([]*crypto.ECPoint, n)
	proofs := make([]*zkp.DLogProof, n)
	increments := make([]*big.Int, n)
	cumulative := new(big.Int).Set(y0)
	for i := 0; i < n; i++ {
		if 0 < i {
			increments[i] = common.GetRandomPositiveInt(q)
			cumulative = modQ.Add(cumulative, increments[i])
		}
		points[i] = crypto.ScalarBaseMult(curve, cumulative)
		proof, err := zkp.NewDLogProof(curve, cumulative)
		if err != nil {
			return nil, errors.Wrapf(err, "setup: dlog proof for hop %d", i)
		}
		proofs[i] = proof
	}

	chain := make([]*ChainLink, n)
	for i := 1; i < n; i++ {
		chain[i] = &ChainLink{
			YPrev:     points[i-1],
			Y:         points[i],
			HopSecret: increments[i],
			Proof:     proofs[i],
		}
	}
	return &MultiHopLock{
		N:     n,
		Y0:    y0,
		Chain: chain[1:],
		Tail: &ChainLinkTail{
			YPrev: points[n-1],
			KN:    cumulative,
		},
	}, nil
}

// VerifyChainLink is run by the intermediary holding the link before it
// accepts the payment. Any failure is fatal for that hop: accepting a link
// that fails here risks being unable to release later.
func VerifyChainLink(link *ChainLink) error {
	if link == nil || link.YPrev == nil || link.Y == nil || link.HopSecret == nil || link.Proof == nil {
		return errors.Wrap(ErrChainLinkInvalid, "nil link or link field")
	}
	curve := crypto.S256()
	if link.HopSecret.Sign() != 1 || link.HopSecret.Cmp(curve.Params().N) != -1 {
		return errors.Wrap(ErrChainLinkInvalid, "hop secret out of range")
	}
	if !link.Proof.Verify(curve) {
		return errors.Wrap(ErrChainLinkInvalid, "dlog proof failed")
	}
	if !link.Proof.PK.Equals(link.Y) {
		return errors.Wrap(ErrChainLinkInvalid, "dlog proof is not bound to the link point")
	}
	yG := crypto.ScalarBaseMult(curve, link.HopSecret)
	sum, err := yG.Add(link.YPrev)
	if err != nil {
		return errors.Wrap(ErrChainLinkInvalid, "point addition failed")
	}
	if !sum.Equals(link.Y) {
		return errors.Wrap(ErrChainLinkInvalid, "y*G + Y_prev != Y")
	}
	return nil
}

// VerifyChain verifies every link of a freshly set up chain, plus the tail
// relation KN*G == Y_{n-1}. Used by the originator as a self-check before
// distribution; failures are aggregated per link.
func VerifyChain(lock *MultiHopLock) error {
	var result *multierror.Error
	for i, link := range lock.Chain {
		if err := VerifyChainLink(link); err != nil {
			result = multierror.Append(result, errors.Wrapf(err, "chain link %d", i+1))
		}
	}
	if lock.Tail == nil || lock.Tail.KN == nil ||
		!crypto.ScalarBaseMult(crypto.S256(), lock.Tail.KN).Equals(lock.Tail.YPrev) {
		result = multierror.Append(result, errors.Wrap(ErrChainLinkInvalid, "chain tail"))
	}
	return result.ErrorOrNil()
}

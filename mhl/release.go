package mhl

import (
	"math/big"

	"github.com/hopchain/mhl-lib/common"
	"github.com/hopchain/mhl-lib/crypto"
)

type (
	// SL is a hop's left-side (upstream) signature view: the r component
	// w_0 agreed during the lock phase, the pre-signature scalar w_1 still
	// bound by the upstream adaptor point, and the joint public key.
	SL struct {
		W0 *big.Int
		W1 *big.Int
		PK *crypto.ECPoint
	}

	// SR is the right-side (downstream) data needed for release: the
	// downstream pre-signature scalar and the message the upstream
	// signature must verify against.
	SR struct {
		STag    *big.Int
		Message *big.Int
	}

	// K is a canonical ECDSA signature with S <= (q-1)/2.
	K struct {
		R *big.Int
		S *big.Int
	}

	// L is a verification context.
	L struct {
		M  *big.Int
		PK *crypto.ECPoint
	}
)

// ReleaseHop recovers hop i's valid signature from the fully released
// signature at hop i+1: s^-1 * sTag embeds the cumulative chain scalar c_i,
// and subtracting the hop secret strips one layer, leaving c_{i-1} to divide
// out of the upstream pre-signature.
//
// ECDSA admits both s and q-s, and the downstream signature may carry either
// sign of the nonce x-coordinate, so both sign branches of s^-1 * sTag are
// enumerated; each candidate is canonicalised to low-s and the unique
// verifying one is returned with its full (r, s).
func ReleaseHop(link *ChainLink, kNext *K, sl *SL, sr *SR) (*K, error) {
	return releaseWith(kNext.S, link.HopSecret, sl, sr)
}

// ReleaseTail is run by the hop adjacent to the terminal party. The
// downstream scalar is not yet a released ECDSA s: the terminal party first
// opens its pre-signature with the full chain secret, s = KN^-1 * w_1.
func ReleaseTail(link *ChainLink, tail *ChainLinkTail, slTerminal, sl *SL, sr *SR) (*K, error) {
	q := crypto.S256().Params().N
	modQ := common.ModInt(q)
	s := modQ.Mul(modQ.ModInverse(tail.KN), slTerminal.W1)

	// sanity check of the opened terminal signature, canonicalised to low-s
	// and checked against sr.Message and sl.PK; its result gates nothing and
	// a failure is only logged at debug level
	terminal := &K{R: new(big.Int).Set(slTerminal.W0), S: lowS(q, s)}
	if err := VerifySignature(&L{M: sr.Message, PK: sl.PK}, terminal); err != nil {
		common.Logger.Debugf("release tail: opened terminal signature did not verify in this context: %v", err)
	}

	return releaseWith(s, link.HopSecret, sl, sr)
}

func releaseWith(s, hopSecret *big.Int, sl *SL, sr *SR) (*K, error) {
	q := crypto.S256().Params().N
	modQ := common.ModInt(q)
	l := &L{M: sr.Message, PK: sl.PK}

	d := modQ.Mul(modQ.ModInverse(s), sr.STag)
	for _, candidate := range []*big.Int{d, modQ.Sub(big.NewInt(0), d)} {
		stripped := modQ.Sub(candidate, hopSecret)
		if stripped.Sign() == 0 {
			continue
		}
		t := modQ.Mul(sl.W1, modQ.ModInverse(stripped))
		k := &K{R: new(big.Int).Set(sl.W0), S: lowS(q, t)}
		if err := VerifySignature(l, k); err == nil {
			return k, nil
		}
	}
	return nil, ErrReleaseFailed
}

// lowS returns the canonical representative of {s, q-s}.
func lowS(q, s *big.Int) *big.Int {
	neg := new(big.Int).Sub(q, s)
	if neg.Cmp(s) < 0 {
		return neg
	}
	return new(big.Int).Set(s)
}

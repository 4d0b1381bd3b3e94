package crypto

import (
	"crypto/elliptic"

	s256k1 "github.com/btcsuite/btcd/btcec"
)

// S256 returns the secp256k1 curve. It is the only curve supported by this
// library; every scalar below is taken mod its order N.
func S256() elliptic.Curve {
	return s256k1.S256()
}

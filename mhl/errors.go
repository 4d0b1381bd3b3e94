package mhl

import (
	"github.com/pkg/errors"
)

// Every failure below is terminal for the current session. Callers must
// abandon the session and, at the payment layer, refuse to forward or claim.
var (
	// ErrBadNIZK is returned when a counterparty DLEQ proof fails to verify.
	ErrBadNIZK = errors.New("counterparty DLEQ proof failed to verify")

	// ErrBadCommitment is returned when a decommitment does not reproduce the commitment.
	ErrBadCommitment = errors.New("decommitment does not reproduce the commitment")

	// ErrBadPreSig is returned when the pre-signature scalar fails the
	// adaptor soundness check s'*R_1 == m*G + r_x*pk.
	ErrBadPreSig = errors.New("pre-signature failed the adaptor soundness check")

	// ErrInvalidSignature is returned when canonical ECDSA verification rejects.
	ErrInvalidSignature = errors.New("signature is invalid")

	// ErrChainLinkInvalid is returned when a chain link's DLog proof fails
	// or y*G + Y_prev != Y.
	ErrChainLinkInvalid = errors.New("chain link is invalid")

	// ErrReleaseFailed is returned when no sign branch of release yields a
	// valid signature.
	ErrReleaseFailed = errors.New("no sign branch of release yields a valid signature")
)

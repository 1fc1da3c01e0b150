package models

// Identity is an opaque handle for an account holder. Identities are
// minted by the user registry and authenticated by the host transport;
// the ledger only ever compares them for equality.
type Identity string

// AnonymousIdentity is the zero identity. Operations that move a caller's
// own funds reject it.
const AnonymousIdentity = Identity("")

// String returns the string representation of the identity.
func (id Identity) String() string {
	return string(id)
}

// IsAnonymous returns whether or not this is the anonymous identity.
func (id Identity) IsAnonymous() bool {
	return id == AnonymousIdentity
}

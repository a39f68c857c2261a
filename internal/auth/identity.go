package auth

import "item-portal/internal/auth/credentials"

// Identity is the registered user principal owned by the credential store.
// Aliased here so session and handler code can speak about identities
// without importing the store package.
type Identity = credentials.Identity

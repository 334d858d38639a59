package auth

import "context"

// UserRecord is what the user store hands back during authentication: the
// identity plus the stored password hash.
type UserRecord struct {
	Identity
	PasswordHash string
}

// LookupByUsername resolves a username to its stored record.  A missing
// user is (nil, nil); a non-nil error means the store itself failed.
type LookupByUsername func(ctx context.Context, username string) (*UserRecord, error)

// LookupByID resolves a subject id to its current identity.  A missing
// subject is (nil, nil).
type LookupByID func(ctx context.Context, id uint64) (*Identity, error)

// dummyHash is a valid bcrypt hash of a throwaway value.  It is compared
// against when the username does not resolve, so the unknown-username
// path costs a hash verification just like the wrong-password path.
const dummyHash = "$2a$12$R9h/cIPz0gi.URNNX3kh2OPST9/PgBkqquzi.Ss7KIUgO2t0jWMUW"

// Authenticator turns credentials or bearer tokens into verified
// identities.  Storage access happens only through the injected lookup
// functions; the Authenticator itself holds no mutable state.
type Authenticator struct {
	hasher     Hasher
	tokens     *TokenService
	byUsername LookupByUsername
	byID       LookupByID
}

func NewAuthenticator(hasher Hasher, tokens *TokenService, byUsername LookupByUsername, byID LookupByID) *Authenticator {
	return &Authenticator{hasher: hasher, tokens: tokens, byUsername: byUsername, byID: byID}
}

// Tokens exposes the token service so callers that already hold an
// Authenticator can issue tokens after a successful login.
func (a *Authenticator) Tokens() *TokenService { return a.tokens }

// AuthenticateByPassword resolves a (username, password) pair to a
// verified identity.  Unknown usernames and wrong passwords both return
// ErrInvalidCredentials; inactive accounts fail only after the password
// verified, so the error cannot be used to probe account state without
// knowing the password.
func (a *Authenticator) AuthenticateByPassword(ctx context.Context, username, password string) (Identity, error) {
	rec, err := a.byUsername(ctx, username)
	if err != nil {
		return Identity{}, err
	}
	if rec == nil {
		a.hasher.Verify(password, dummyHash)
		return Identity{}, ErrInvalidCredentials
	}
	if !a.hasher.Verify(password, rec.PasswordHash) {
		return Identity{}, ErrInvalidCredentials
	}
	if !rec.Active {
		return Identity{}, ErrInactiveAccount
	}
	return rec.Identity, nil
}

// AuthenticateByToken validates a bearer token and re-resolves its
// subject against the user store.  The re-resolution runs on every call:
// a deactivated or deleted account is rejected immediately even while its
// token is still within the validity window, and the role used downstream
// is the live one, not the role frozen into the token at issuance.
func (a *Authenticator) AuthenticateByToken(ctx context.Context, raw string) (Identity, error) {
	subj, err := a.tokens.Validate(raw)
	if err != nil {
		return Identity{}, err
	}
	ident, err := a.byID(ctx, subj.SubjectID)
	if err != nil {
		return Identity{}, err
	}
	if ident == nil {
		return Identity{}, ErrUnknownSubject
	}
	if !ident.Active {
		return Identity{}, ErrInactiveAccount
	}
	return *ident, nil
}

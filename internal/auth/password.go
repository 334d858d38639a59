package auth

import "golang.org/x/crypto/bcrypt"

// Hasher performs salted one-way password hashing with bcrypt.  The cost
// factor is fixed at construction time; bcrypt embeds a fresh random salt
// in every hash it produces, so hashing the same plaintext twice yields
// two different strings that both verify.
type Hasher struct {
	cost int
}

// NewHasher returns a Hasher with the given bcrypt cost.  Costs outside
// bcrypt's supported range fall back to bcrypt.DefaultCost rather than
// failing at hash time.
func NewHasher(cost int) Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return Hasher{cost: cost}
}

// Hash derives a salted bcrypt hash from the plaintext.
func (h Hasher) Hash(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Verify reports whether plain matches the stored hash.  bcrypt performs
// the comparison in constant time.  Malformed hash input is never an
// error here; it simply fails verification.
func (h Hasher) Verify(plain, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

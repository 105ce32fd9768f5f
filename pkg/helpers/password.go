package helpers

import "golang.org/x/crypto/bcrypt"

// PasswordHasher wraps bcrypt with a work factor fixed at construction time.
// bcrypt salts every digest internally, so hashing the same plaintext twice
// yields different digests.
type PasswordHasher struct {
	cost int
}

func NewPasswordHasher(cost int) *PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &PasswordHasher{cost: cost}
}

// Hash produces a salted one-way digest of the plaintext password.
func (h *PasswordHasher) Hash(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Verify reports whether digest was produced from plain. It never returns an
// error: malformed digests simply verify as false. bcrypt's compare is not
// prefix-sensitive, so timing does not correlate with how much matched.
func (h *PasswordHasher) Verify(plain, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plain)) == nil
}

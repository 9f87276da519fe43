package main

import "golang.org/x/crypto/bcrypt"

// passwordHasher wraps bcrypt with a configurable work factor. The plaintext
// never leaves this boundary: callers store and compare hashes only.
type passwordHasher struct {
	cost int
}

func newPasswordHasher(cost int) *passwordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &passwordHasher{cost: cost}
}

func (h *passwordHasher) hash(plaintext string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func (h *passwordHasher) verify(plaintext, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plaintext)) == nil
}

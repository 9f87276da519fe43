package main

import "regexp"

var emailRegexp = regexp.MustCompile("^[a-zA-Z0-9.!#$%&'*+/=?^_`{|}~-]+@[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?(?:\\.[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)*$")

type validator struct {
	errors []fieldError
	seen   map[string]bool
}

func newValidator() *validator {
	return &validator{
		seen: make(map[string]bool),
	}
}

func (v *validator) hasErrors() bool {
	return len(v.errors) != 0
}

// checkCond records msg against key when cond does not hold. Only the first
// failure per field is kept.
func (v *validator) checkCond(cond bool, key, msg string) {
	if cond {
		return
	}
	if !v.seen[key] {
		v.seen[key] = true
		v.errors = append(v.errors, fieldError{Field: key, Message: msg})
	}
}

func (v *validator) checkName(name string) {
	v.checkCond(name != "", "name", "Name is required")
	v.checkCond(len(name) <= 255, "name", "Name must be at most 255 characters")
}

func (v *validator) checkDescription(description string) {
	v.checkCond(description != "", "description", "Description is required")
}

func (v *validator) checkEmail(email string) {
	v.checkCond(email != "", "email", "Email is required")
	v.checkCond(emailRegexp.MatchString(email), "email", "Email must be a valid email address")
}

func (v *validator) checkPassword(password string) {
	v.checkCond(password != "", "password", "Password is required")
	v.checkCond(len(password) >= 8, "password", "Password must be at least 8 characters")
	v.checkCond(len(password) <= 72, "password", "Password must be at most 72 characters")
}

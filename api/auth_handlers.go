package main

import (
	"errors"
	"net/http"

	"github.com/lib/pq"
)

func (app *application) registerHandler(w http.ResponseWriter, r *http.Request) {
	u, f := app.createUser(r)
	if f != nil {
		writeFailure(w, f)
		return
	}
	if app.mailer != nil {
		go app.sendWelcomeMail(u)
	}
	writeSuccess(w, http.StatusCreated, "Register successfully", u)
}

func (app *application) loginHandler(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if f := decodeJSON(r, &input); f != nil {
		writeFailure(w, f)
		return
	}
	v := newValidator()
	v.checkEmail(input.Email)
	v.checkCond(input.Password != "", "password", "Password is required")
	if v.hasErrors() {
		writeFailure(w, failValidation(v.errors))
		return
	}
	u, err := app.storage.getUserByEmail(input.Email)
	if err != nil {
		app.logger.Error().Err(err).Msg("failed to fetch user")
		writeFailure(w, failInternal())
		return
	}
	if u == nil {
		writeFailure(w, fail(kindUserNotFound, "User not found"))
		return
	}
	if !app.passwords.verify(input.Password, u.PasswordHash) {
		writeFailure(w, fail(kindUnauthenticated, "Invalid password"))
		return
	}
	token, err := app.tokens.issue(u.ID)
	if err != nil {
		app.logger.Error().Err(err).Msg("failed to sign token")
		writeFailure(w, failInternal())
		return
	}
	writeSuccess(w, http.StatusOK, "Login successfully", map[string]any{
		"user":  u,
		"token": token,
	})
}

// createUser backs both /register and the admin create-user endpoint: the
// two differ only in their success message.
func (app *application) createUser(r *http.Request) (*user, *failure) {
	var input struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if f := decodeJSON(r, &input); f != nil {
		return nil, f
	}
	v := newValidator()
	v.checkName(input.Name)
	v.checkEmail(input.Email)
	v.checkPassword(input.Password)
	if v.hasErrors() {
		return nil, failValidation(v.errors)
	}
	hash, err := app.passwords.hash(input.Password)
	if err != nil {
		app.logger.Error().Err(err).Msg("failed to hash password")
		return nil, failInternal()
	}
	u := &user{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hash,
	}
	err = app.storage.insertUser(u)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return nil, failValidation([]fieldError{{Field: "email", Message: "Email is already registered"}})
		}
		app.logger.Error().Err(err).Msg("failed to insert user")
		return nil, failInternal()
	}
	return u, nil
}

package main

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
)

func (app *application) getUsersHandler(w http.ResponseWriter, r *http.Request) {
	users, err := app.storage.getUsers()
	if err != nil {
		app.logger.Error().Err(err).Msg("failed to fetch users")
		writeFailure(w, failInternal())
		return
	}
	writeSuccess(w, http.StatusOK, "Get all users successfully", users)
}

func (app *application) createUserHandler(w http.ResponseWriter, r *http.Request) {
	u, f := app.createUser(r)
	if f != nil {
		writeFailure(w, f)
		return
	}
	writeSuccess(w, http.StatusCreated, "User created successfully", u)
}

func (app *application) getUserHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeFailure(w, fail(kindUserNotFound, "User not found"))
		return
	}
	u, err := app.storage.getUserByID(id)
	if err != nil {
		app.logger.Error().Err(err).Msg("failed to fetch user")
		writeFailure(w, failInternal())
		return
	}
	if u == nil {
		writeFailure(w, fail(kindUserNotFound, fmt.Sprintf("User with ID: %d not found", id)))
		return
	}
	writeSuccess(w, http.StatusOK, fmt.Sprintf("Get user by ID: %d", id), u)
}

func (app *application) updateUserHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeFailure(w, fail(kindUserNotFound, "User not found"))
		return
	}
	var input struct {
		Name  string `json:"name"`
		Email string `json:"email"`
		Photo string `json:"photo"`
	}
	if f := decodeJSON(r, &input); f != nil {
		writeFailure(w, f)
		return
	}
	v := newValidator()
	v.checkName(input.Name)
	v.checkEmail(input.Email)
	if v.hasErrors() {
		writeFailure(w, failValidation(v.errors))
		return
	}
	u, err := app.storage.getUserByID(id)
	if err != nil {
		app.logger.Error().Err(err).Msg("failed to fetch user")
		writeFailure(w, failInternal())
		return
	}
	if u == nil {
		writeFailure(w, fail(kindUserNotFound, fmt.Sprintf("User with ID: %d not found", id)))
		return
	}
	u.Name = input.Name
	u.Email = input.Email
	if input.Photo != "" {
		u.Photo = input.Photo
	}
	err = app.storage.updateUser(u)
	if err != nil {
		app.logger.Error().Err(err).Msg("failed to update user")
		writeFailure(w, failInternal())
		return
	}
	writeSuccess(w, http.StatusOK, "Update user successfully", u)
}

func (app *application) deleteUserHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeFailure(w, fail(kindUserNotFound, "User not found"))
		return
	}
	u, err := app.storage.getUserByID(id)
	if err != nil {
		app.logger.Error().Err(err).Msg("failed to fetch user")
		writeFailure(w, failInternal())
		return
	}
	if u == nil {
		writeFailure(w, fail(kindUserNotFound, "User not found"))
		return
	}
	if u.Photo != "" {
		// best effort: a stale photo file is not worth failing the delete
		err := os.Remove(filepath.Join(app.config.uploadsDir, u.Photo))
		if err != nil && !os.IsNotExist(err) {
			app.logger.Warn().Err(err).Str("photo", u.Photo).Msg("failed to delete photo")
		}
	}
	err = app.storage.deleteUser(id)
	if err != nil {
		app.logger.Error().Err(err).Msg("failed to delete user")
		writeFailure(w, failInternal())
		return
	}
	writeSuccess(w, http.StatusOK, "User and photo deleted successfully", nil)
}

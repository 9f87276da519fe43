package main

import (
	"fmt"
	"net/http"
)

func (app *application) getProjectsHandler(w http.ResponseWriter, r *http.Request) {
	projects, err := app.storage.getProjects()
	if err != nil {
		app.logger.Error().Err(err).Msg("failed to fetch projects")
		writeFailure(w, failInternal())
		return
	}
	writeSuccess(w, http.StatusOK, "Get all projects successfully", projects)
}

func (app *application) createProjectHandler(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if f := decodeJSON(r, &input); f != nil {
		writeFailure(w, f)
		return
	}
	v := newValidator()
	v.checkName(input.Name)
	v.checkDescription(input.Description)
	if v.hasErrors() {
		writeFailure(w, failValidation(v.errors))
		return
	}
	p := &project{
		Name:        input.Name,
		Description: input.Description,
	}
	err := app.storage.insertProject(p)
	if err != nil {
		app.logger.Error().Err(err).Msg("failed to insert project")
		writeFailure(w, failInternal())
		return
	}
	writeSuccess(w, http.StatusCreated, "Project created successfully", p)
}

func (app *application) getProjectHandler(w http.ResponseWriter, r *http.Request) {
	p, f := app.projectFromPath(r)
	if f != nil {
		writeFailure(w, f)
		return
	}
	writeSuccess(w, http.StatusOK, fmt.Sprintf("Get project by ID: %d", p.ID), p)
}

func (app *application) updateProjectHandler(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if f := decodeJSON(r, &input); f != nil {
		writeFailure(w, f)
		return
	}
	v := newValidator()
	v.checkName(input.Name)
	v.checkDescription(input.Description)
	if v.hasErrors() {
		writeFailure(w, failValidation(v.errors))
		return
	}
	p, f := app.projectFromPath(r)
	if f != nil {
		writeFailure(w, f)
		return
	}
	p.Name = input.Name
	p.Description = input.Description
	err := app.storage.updateProject(p)
	if err != nil {
		app.logger.Error().Err(err).Msg("failed to update project")
		writeFailure(w, failInternal())
		return
	}
	writeSuccess(w, http.StatusOK, "Project updated successfully", p)
}

func (app *application) deleteProjectHandler(w http.ResponseWriter, r *http.Request) {
	p, f := app.projectFromPath(r)
	if f != nil {
		writeFailure(w, f)
		return
	}
	err := app.storage.deleteProject(p.ID)
	if err != nil {
		app.logger.Error().Err(err).Msg("failed to delete project")
		writeFailure(w, failInternal())
		return
	}
	writeSuccess(w, http.StatusOK, "Project deleted successfully", nil)
}

func (app *application) projectFromPath(r *http.Request) (*project, *failure) {
	id, ok := pathID(r, "id")
	if !ok {
		return nil, fail(kindProjectNotFound, "Project not found")
	}
	p, err := app.storage.getProjectByID(id)
	if err != nil {
		app.logger.Error().Err(err).Msg("failed to fetch project")
		return nil, failInternal()
	}
	if p == nil {
		return nil, fail(kindProjectNotFound, fmt.Sprintf("Project with ID %d not found", id))
	}
	return p, nil
}

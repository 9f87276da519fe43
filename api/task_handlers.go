package main

import (
	"fmt"
	"net/http"
)

func (app *application) getTasksHandler(w http.ResponseWriter, r *http.Request) {
	projectID, ok := pathID(r, "projectId")
	if !ok {
		writeFailure(w, fail(kindProjectNotFound, "Project not found"))
		return
	}
	tasks, f := app.authorizeTaskList(projectID)
	if f != nil {
		writeFailure(w, f)
		return
	}
	writeSuccess(w, http.StatusOK, fmt.Sprintf("Tasks for Project ID: %d", projectID), tasks)
}

func (app *application) createTaskHandler(w http.ResponseWriter, r *http.Request) {
	projectID, ok := pathID(r, "projectId")
	if !ok {
		writeFailure(w, fail(kindProjectNotFound, "Project not found"))
		return
	}
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
	subjectID := subjectFromRequest(r)
	_, f := app.authorizeTask(projectID, 0, subjectID, taskCreate)
	if f != nil {
		writeFailure(w, f)
		return
	}
	// attribution, not authorization: the creator is always the caller
	t := &task{
		Name:        input.Name,
		Description: input.Description,
		ProjectID:   projectID,
		UserID:      subjectID,
	}
	err := app.storage.insertTask(t)
	if err != nil {
		app.logger.Error().Err(err).Msg("failed to insert task")
		writeFailure(w, failInternal())
		return
	}
	writeSuccess(w, http.StatusCreated, "Task created successfully", t)
}

func (app *application) getTaskHandler(w http.ResponseWriter, r *http.Request) {
	projectID, taskID, ok := taskPath(r)
	if !ok {
		writeFailure(w, fail(kindTaskNotFound, "Task not found"))
		return
	}
	t, f := app.authorizeTask(projectID, taskID, subjectFromRequest(r), taskRead)
	if f != nil {
		writeFailure(w, f)
		return
	}
	writeSuccess(w, http.StatusOK, "Task found", t)
}

func (app *application) updateTaskHandler(w http.ResponseWriter, r *http.Request) {
	projectID, taskID, ok := taskPath(r)
	if !ok {
		writeFailure(w, fail(kindTaskNotFound, "Task not found"))
		return
	}
	var input struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		IsDone      bool   `json:"is_done"`
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
	t, f := app.authorizeTask(projectID, taskID, subjectFromRequest(r), taskUpdate)
	if f != nil {
		writeFailure(w, f)
		return
	}
	t.Name = input.Name
	t.Description = input.Description
	t.IsDone = input.IsDone
	err := app.storage.updateTask(t)
	if err != nil {
		app.logger.Error().Err(err).Msg("failed to update task")
		writeFailure(w, failInternal())
		return
	}
	writeSuccess(w, http.StatusOK, "Task updated successfully", t)
}

func (app *application) deleteTaskHandler(w http.ResponseWriter, r *http.Request) {
	projectID, taskID, ok := taskPath(r)
	if !ok {
		writeFailure(w, fail(kindTaskNotFound, "Task not found"))
		return
	}
	t, f := app.authorizeTask(projectID, taskID, subjectFromRequest(r), taskDelete)
	if f != nil {
		writeFailure(w, f)
		return
	}
	err := app.storage.deleteTask(t.ID)
	if err != nil {
		app.logger.Error().Err(err).Msg("failed to delete task")
		writeFailure(w, failInternal())
		return
	}
	writeSuccess(w, http.StatusOK, "Task deleted successfully", nil)
}

func taskPath(r *http.Request) (projectID, taskID int, ok bool) {
	projectID, okProject := pathID(r, "projectId")
	taskID, okTask := pathID(r, "id")
	return projectID, taskID, okProject && okTask
}

package main

import "fmt"

// taskOp names the operation an authorization check is gating. Read and
// create are open to any authenticated user; update and delete are reserved
// for the task's creator.
type taskOp int

const (
	taskRead taskOp = iota
	taskCreate
	taskUpdate
	taskDelete
)

// authorizeTask enforces the nested-resource invariants for a single task,
// short-circuiting on the first violated one:
//
//  1. the project in the path must exist,
//  2. the task must exist AND belong to that project — a task filed under a
//     different project answers exactly like a missing one, so callers can't
//     probe other projects' tasks,
//  3. for update/delete, the caller must be the task's creator.
//
// The ownership check runs last on purpose: a non-owner guessing at ids sees
// 404s, never a 403 confirming the task exists. authorizeTask only gates; the
// caller performs the actual store write afterwards.
func (app *application) authorizeTask(projectID, taskID, subjectID int, op taskOp) (*task, *failure) {
	p, err := app.storage.getProjectByID(projectID)
	if err != nil {
		app.logger.Error().Err(err).Msg("failed to fetch project")
		return nil, failInternal()
	}
	if p == nil {
		return nil, fail(kindProjectNotFound, fmt.Sprintf("Project with ID %d not found", projectID))
	}
	if op == taskCreate {
		return nil, nil
	}
	t, err := app.storage.getTaskByID(taskID)
	if err != nil {
		app.logger.Error().Err(err).Msg("failed to fetch task")
		return nil, failInternal()
	}
	if !belongsTo(t, projectID) {
		return nil, fail(kindTaskNotFound, "Task not found")
	}
	if op == taskUpdate || op == taskDelete {
		if t.UserID != subjectID {
			verb := "edit"
			if op == taskDelete {
				verb = "delete"
			}
			return nil, fail(kindNotOwner, fmt.Sprintf("You are not authorized to %s this task", verb))
		}
	}
	return t, nil
}

// authorizeTaskList checks the project and fetches its tasks. An empty list
// is reported as a not-found condition rather than an empty success payload.
func (app *application) authorizeTaskList(projectID int) ([]task, *failure) {
	p, err := app.storage.getProjectByID(projectID)
	if err != nil {
		app.logger.Error().Err(err).Msg("failed to fetch project")
		return nil, failInternal()
	}
	if p == nil {
		return nil, fail(kindProjectNotFound, fmt.Sprintf("Project with ID %d not found", projectID))
	}
	tasks, err := app.storage.getTasksByProjectID(projectID)
	if err != nil {
		app.logger.Error().Err(err).Msg("failed to fetch tasks")
		return nil, failInternal()
	}
	if len(tasks) == 0 {
		return nil, fail(kindNoTasks, fmt.Sprintf("No tasks found for Project ID: %d", projectID))
	}
	return tasks, nil
}

package main

import "time"

type user struct {
	ID           int       `json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Photo        string    `json:"photo,omitempty"`
}

type project struct {
	ID          int       `json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
}

type task struct {
	ID          int       `json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	IsDone      bool      `json:"is_done"`
	ProjectID   int       `json:"project_id"`
	UserID      int       `json:"user_id"`
}

// belongsTo reports whether t is reachable through the project id named in
// the request path. A task whose stored project disagrees with the path is
// treated the same as a missing task.
func belongsTo(t *task, projectID int) bool {
	return t != nil && t.ProjectID == projectID
}

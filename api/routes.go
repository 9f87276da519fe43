package main

import (
	"net/http"
)

func composeRoutes(app *application) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthcheck", app.healthCheckHandler)

	mux.HandleFunc("POST /register", app.registerHandler)
	mux.HandleFunc("POST /login", app.loginHandler)

	mux.HandleFunc("GET /admin/users", app.requireAuth(app.getUsersHandler))
	mux.HandleFunc("POST /admin/users", app.requireAuth(app.createUserHandler))
	mux.HandleFunc("GET /admin/users/{id}", app.requireAuth(app.getUserHandler))
	mux.HandleFunc("PUT /admin/users/{id}", app.requireAuth(app.updateUserHandler))
	mux.HandleFunc("DELETE /admin/users/{id}", app.requireAuth(app.deleteUserHandler))

	mux.HandleFunc("GET /project", app.requireAuth(app.getProjectsHandler))
	mux.HandleFunc("POST /project", app.requireAuth(app.createProjectHandler))
	mux.HandleFunc("GET /project/{id}", app.requireAuth(app.getProjectHandler))
	mux.HandleFunc("PUT /project/{id}", app.requireAuth(app.updateProjectHandler))
	mux.HandleFunc("DELETE /project/{id}", app.requireAuth(app.deleteProjectHandler))

	mux.HandleFunc("GET /project/{projectId}/task", app.requireAuth(app.getTasksHandler))
	mux.HandleFunc("POST /project/{projectId}/task", app.requireAuth(app.createTaskHandler))
	mux.HandleFunc("GET /project/{projectId}/task/{id}", app.requireAuth(app.getTaskHandler))
	mux.HandleFunc("PUT /project/{projectId}/task/{id}", app.requireAuth(app.updateTaskHandler))
	mux.HandleFunc("DELETE /project/{projectId}/task/{id}", app.requireAuth(app.deleteTaskHandler))

	return app.enableCORS(mux)
}

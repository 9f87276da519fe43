package main

import (
	"database/sql"
	"net/http"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/steinfletcher/apitest"
	jsonpath "github.com/steinfletcher/apitest-jsonpath"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func userRow(id int, email, passwordHash string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "created_at", "name", "email", "password_hash", "photo"}).
		AddRow(id, time.Now(), "A", email, passwordHash, nil)
}

func bearer(t *testing.T, app *application, subjectID int) string {
	t.Helper()
	token, err := app.tokens.issue(subjectID)
	require.NoError(t, err)
	return "Bearer " + token
}

func TestRegister(t *testing.T) {
	app, mock := newTestApplication(t)
	mock.ExpectQuery("INSERT INTO users").
		WithArgs("A", "a@x.com", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(1, time.Now()))

	apitest.New().
		Handler(composeRoutes(app)).
		Post("/register").
		JSON(`{"name": "A", "email": "a@x.com", "password": "p1-secret"}`).
		Expect(t).
		Status(http.StatusCreated).
		Assert(jsonpath.Equal("$.success", true)).
		Assert(jsonpath.Equal("$.message", "Register successfully")).
		Assert(jsonpath.Equal("$.data.email", "a@x.com")).
		Assert(jsonpath.NotPresent("$.data.password_hash")).
		End()
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRegisterValidation(t *testing.T) {
	app, _ := newTestApplication(t)
	apitest.New().
		Handler(composeRoutes(app)).
		Post("/register").
		JSON(`{"name": "", "email": "not-an-email", "password": "short"}`).
		Expect(t).
		Status(http.StatusUnprocessableEntity).
		Assert(jsonpath.Equal("$.success", false)).
		Assert(jsonpath.Equal("$.message", "Validation error")).
		Assert(jsonpath.Present("$.errors")).
		End()
}

func TestRegisterDuplicateEmail(t *testing.T) {
	app, mock := newTestApplication(t)
	mock.ExpectQuery("INSERT INTO users").
		WithArgs("A", "a@x.com", sqlmock.AnyArg()).
		WillReturnError(&pqUniqueViolation)

	apitest.New().
		Handler(composeRoutes(app)).
		Post("/register").
		JSON(`{"name": "A", "email": "a@x.com", "password": "p1-secret"}`).
		Expect(t).
		Status(http.StatusUnprocessableEntity).
		Assert(jsonpath.Equal("$.errors[0].field", "email")).
		End()
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLogin(t *testing.T) {
	app, mock := newTestApplication(t)
	hash, err := app.passwords.hash("p1-secret")
	require.NoError(t, err)
	mock.ExpectQuery("FROM users").WithArgs("a@x.com").WillReturnRows(userRow(1, "a@x.com", hash))

	apitest.New().
		Handler(composeRoutes(app)).
		Post("/login").
		JSON(`{"email": "a@x.com", "password": "p1-secret"}`).
		Expect(t).
		Status(http.StatusOK).
		Assert(jsonpath.Equal("$.success", true)).
		Assert(jsonpath.Equal("$.message", "Login successfully")).
		Assert(jsonpath.Present("$.data.token")).
		Assert(jsonpath.Equal("$.data.user.email", "a@x.com")).
		Assert(jsonpath.NotPresent("$.data.user.password_hash")).
		End()
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoginIssuesUsableToken(t *testing.T) {
	app, mock := newTestApplication(t)
	hash, err := app.passwords.hash("p1-secret")
	require.NoError(t, err)
	mock.ExpectQuery("FROM users").WithArgs("a@x.com").WillReturnRows(userRow(1, "a@x.com", hash))

	result := apitest.New().
		Handler(composeRoutes(app)).
		Post("/login").
		JSON(`{"email": "a@x.com", "password": "p1-secret"}`).
		Expect(t).
		Status(http.StatusOK).
		End()

	var body struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	result.JSON(&body)
	require.NotEmpty(t, body.Data.Token)

	subjectID, err := app.tokens.verify(body.Data.Token)
	require.NoError(t, err)
	assert.Equal(t, 1, subjectID)
}

func TestLoginWrongPassword(t *testing.T) {
	app, mock := newTestApplication(t)
	hash, err := app.passwords.hash("p1-secret")
	require.NoError(t, err)
	mock.ExpectQuery("FROM users").WithArgs("a@x.com").WillReturnRows(userRow(1, "a@x.com", hash))

	apitest.New().
		Handler(composeRoutes(app)).
		Post("/login").
		JSON(`{"email": "a@x.com", "password": "wrong-one"}`).
		Expect(t).
		Status(http.StatusUnauthorized).
		Assert(jsonpath.Equal("$.success", false)).
		Assert(jsonpath.Equal("$.message", "Invalid password")).
		End()
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoginUnknownEmail(t *testing.T) {
	app, mock := newTestApplication(t)
	mock.ExpectQuery("FROM users").WithArgs("b@x.com").WillReturnError(sql.ErrNoRows)

	apitest.New().
		Handler(composeRoutes(app)).
		Post("/login").
		JSON(`{"email": "b@x.com", "password": "p1-secret"}`).
		Expect(t).
		Status(http.StatusNotFound).
		Assert(jsonpath.Equal("$.message", "User not found")).
		End()
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProtectedRouteRejectsMissingToken(t *testing.T) {
	app, _ := newTestApplication(t)
	apitest.New().
		Handler(composeRoutes(app)).
		Get("/project").
		Expect(t).
		Status(http.StatusUnauthorized).
		Assert(jsonpath.Equal("$.message", "No token provided")).
		End()
}

func TestGetTaskWrongProject(t *testing.T) {
	app, mock := newTestApplication(t)
	mock.ExpectQuery("FROM projects").WithArgs(2).WillReturnRows(projectRow(2))
	mock.ExpectQuery("FROM tasks").WithArgs(5).WillReturnRows(taskRow(5, 1, 7))

	apitest.New().
		Handler(composeRoutes(app)).
		Get("/project/2/task/5").
		Header("Authorization", bearer(t, app, 7)).
		Expect(t).
		Status(http.StatusNotFound).
		Assert(jsonpath.Equal("$.message", "Task not found")).
		End()
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateTaskNotOwner(t *testing.T) {
	app, mock := newTestApplication(t)
	mock.ExpectQuery("FROM projects").WithArgs(1).WillReturnRows(projectRow(1))
	mock.ExpectQuery("FROM tasks").WithArgs(5).WillReturnRows(taskRow(5, 1, 7))

	apitest.New().
		Handler(composeRoutes(app)).
		Put("/project/1/task/5").
		Header("Authorization", bearer(t, app, 8)).
		JSON(`{"name": "write report", "description": "new numbers", "is_done": true}`).
		Expect(t).
		Status(http.StatusForbidden).
		Assert(jsonpath.Equal("$.success", false)).
		Assert(jsonpath.Equal("$.message", "You are not authorized to edit this task")).
		End()
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateTaskAsOwner(t *testing.T) {
	app, mock := newTestApplication(t)
	mock.ExpectQuery("FROM projects").WithArgs(1).WillReturnRows(projectRow(1))
	mock.ExpectQuery("FROM tasks").WithArgs(5).WillReturnRows(taskRow(5, 1, 7))
	mock.ExpectExec("UPDATE tasks").
		WithArgs("write report", "new numbers", true, 5).
		WillReturnResult(sqlmock.NewResult(0, 1))

	apitest.New().
		Handler(composeRoutes(app)).
		Put("/project/1/task/5").
		Header("Authorization", bearer(t, app, 7)).
		JSON(`{"name": "write report", "description": "new numbers", "is_done": true}`).
		Expect(t).
		Status(http.StatusOK).
		Assert(jsonpath.Equal("$.message", "Task updated successfully")).
		Assert(jsonpath.Equal("$.data.is_done", true)).
		End()
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteTaskAsOwner(t *testing.T) {
	app, mock := newTestApplication(t)
	mock.ExpectQuery("FROM projects").WithArgs(1).WillReturnRows(projectRow(1))
	mock.ExpectQuery("FROM tasks").WithArgs(5).WillReturnRows(taskRow(5, 1, 7))
	mock.ExpectExec("DELETE FROM tasks").WithArgs(5).WillReturnResult(sqlmock.NewResult(0, 1))

	apitest.New().
		Handler(composeRoutes(app)).
		Delete("/project/1/task/5").
		Header("Authorization", bearer(t, app, 7)).
		Expect(t).
		Status(http.StatusOK).
		Assert(jsonpath.Equal("$.message", "Task deleted successfully")).
		End()
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateTaskAttributesCreator(t *testing.T) {
	app, mock := newTestApplication(t)
	mock.ExpectQuery("FROM projects").WithArgs(1).WillReturnRows(projectRow(1))
	mock.ExpectQuery("INSERT INTO tasks").
		WithArgs("write report", "quarterly numbers", 1, 7).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "is_done"}).AddRow(5, time.Now(), false))

	apitest.New().
		Handler(composeRoutes(app)).
		Post("/project/1/task").
		Header("Authorization", bearer(t, app, 7)).
		JSON(`{"name": "write report", "description": "quarterly numbers"}`).
		Expect(t).
		Status(http.StatusCreated).
		Assert(jsonpath.Equal("$.message", "Task created successfully")).
		Assert(jsonpath.Equal("$.data.user_id", float64(7))).
		Assert(jsonpath.Equal("$.data.project_id", float64(1))).
		End()
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListTasksEmptyProject(t *testing.T) {
	app, mock := newTestApplication(t)
	mock.ExpectQuery("FROM projects").WithArgs(1).WillReturnRows(projectRow(1))
	mock.ExpectQuery("FROM tasks").WithArgs(1).WillReturnRows(emptyTaskRows())

	apitest.New().
		Handler(composeRoutes(app)).
		Get("/project/1/task").
		Header("Authorization", bearer(t, app, 7)).
		Expect(t).
		Status(http.StatusNotFound).
		Assert(jsonpath.Equal("$.success", false)).
		Assert(jsonpath.Equal("$.message", "No tasks found for Project ID: 1")).
		End()
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetProjectNotFound(t *testing.T) {
	app, mock := newTestApplication(t)
	mock.ExpectQuery("FROM projects").WithArgs(9).WillReturnError(sql.ErrNoRows)

	apitest.New().
		Handler(composeRoutes(app)).
		Get("/project/9").
		Header("Authorization", bearer(t, app, 7)).
		Expect(t).
		Status(http.StatusNotFound).
		Assert(jsonpath.Equal("$.message", "Project with ID 9 not found")).
		End()
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateProject(t *testing.T) {
	app, mock := newTestApplication(t)
	mock.ExpectQuery("INSERT INTO projects").
		WithArgs("Alpha", "first project").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(1, time.Now()))

	apitest.New().
		Handler(composeRoutes(app)).
		Post("/project").
		Header("Authorization", bearer(t, app, 7)).
		JSON(`{"name": "Alpha", "description": "first project"}`).
		Expect(t).
		Status(http.StatusCreated).
		Assert(jsonpath.Equal("$.message", "Project created successfully")).
		Assert(jsonpath.Equal("$.data.name", "Alpha")).
		End()
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHealthCheck(t *testing.T) {
	app, _ := newTestApplication(t)
	apitest.New().
		Handler(composeRoutes(app)).
		Get("/healthcheck").
		Expect(t).
		Status(http.StatusOK).
		Assert(jsonpath.Equal("$.data.status", "available")).
		End()
}

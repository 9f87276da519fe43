package main

import (
	"context"
	"database/sql"
	"errors"
	"time"

	_ "github.com/lib/pq"
)

const queryTimeout = 5 * time.Second

func openDB(cfg config) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.db.dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(cfg.db.maxOpenConnections)
	db.SetMaxIdleConns(cfg.db.maxIdleConnections)
	db.SetConnMaxIdleTime(cfg.db.maxIdleTime)

	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	err = db.PingContext(ctx)
	if err != nil {
		return nil, err
	}

	return db, nil
}

type storage struct {
	db *sql.DB
}

func newStorage(db *sql.DB) *storage {
	return &storage{db: db}
}

func (s *storage) getUserByEmail(email string) (*user, error) {
	query := `SELECT id, created_at, name, email, password_hash, photo
			  FROM users
			  WHERE email = $1`
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()
	row := s.db.QueryRowContext(ctx, query, email)
	return scanUser(row)
}

func (s *storage) getUserByID(id int) (*user, error) {
	query := `SELECT id, created_at, name, email, password_hash, photo
			  FROM users
			  WHERE id = $1`
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()
	row := s.db.QueryRowContext(ctx, query, id)
	return scanUser(row)
}

func scanUser(row *sql.Row) (*user, error) {
	var u user
	var photo sql.NullString
	err := row.Scan(&u.ID, &u.CreatedAt, &u.Name, &u.Email, &u.PasswordHash, &photo)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, nil
		default:
			return nil, err
		}
	}
	u.Photo = photo.String
	return &u, nil
}

func (s *storage) getUsers() ([]user, error) {
	query := `SELECT id, created_at, name, email, password_hash, photo
			  FROM users
			  ORDER BY id DESC`
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	users := []user{}
	for rows.Next() {
		var u user
		var photo sql.NullString
		err := rows.Scan(&u.ID, &u.CreatedAt, &u.Name, &u.Email, &u.PasswordHash, &photo)
		if err != nil {
			return nil, err
		}
		u.Photo = photo.String
		users = append(users, u)
	}
	return users, rows.Err()
}

func (s *storage) insertUser(u *user) error {
	query := `INSERT INTO users (name, email, password_hash)
			  VALUES ($1, $2, $3)
			  RETURNING id, created_at`
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()
	row := s.db.QueryRowContext(ctx, query, u.Name, u.Email, u.PasswordHash)
	return row.Scan(&u.ID, &u.CreatedAt)
}

func (s *storage) updateUser(u *user) error {
	query := `UPDATE users SET name = $1, email = $2, photo = $3
			  WHERE id = $4`
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()
	var photo sql.NullString
	if u.Photo != "" {
		photo = sql.NullString{String: u.Photo, Valid: true}
	}
	_, err := s.db.ExecContext(ctx, query, u.Name, u.Email, photo, u.ID)
	return err
}

func (s *storage) deleteUser(id int) error {
	query := `DELETE FROM users
			  WHERE id = $1`
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()
	_, err := s.db.ExecContext(ctx, query, id)
	return err
}

func (s *storage) getProjects() ([]project, error) {
	query := `SELECT id, created_at, name, description
			  FROM projects
			  ORDER BY id DESC`
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	projects := []project{}
	for rows.Next() {
		var p project
		err := rows.Scan(&p.ID, &p.CreatedAt, &p.Name, &p.Description)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

func (s *storage) getProjectByID(id int) (*project, error) {
	query := `SELECT id, created_at, name, description
			  FROM projects
			  WHERE id = $1`
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()
	row := s.db.QueryRowContext(ctx, query, id)
	var p project
	err := row.Scan(&p.ID, &p.CreatedAt, &p.Name, &p.Description)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, nil
		default:
			return nil, err
		}
	}
	return &p, nil
}

func (s *storage) insertProject(p *project) error {
	query := `INSERT INTO projects (name, description)
			  VALUES ($1, $2)
			  RETURNING id, created_at`
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()
	row := s.db.QueryRowContext(ctx, query, p.Name, p.Description)
	return row.Scan(&p.ID, &p.CreatedAt)
}

func (s *storage) updateProject(p *project) error {
	query := `UPDATE projects SET name = $1, description = $2
			  WHERE id = $3`
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()
	_, err := s.db.ExecContext(ctx, query, p.Name, p.Description, p.ID)
	return err
}

func (s *storage) deleteProject(id int) error {
	query := `DELETE FROM projects
			  WHERE id = $1`
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()
	_, err := s.db.ExecContext(ctx, query, id)
	return err
}

func (s *storage) getTaskByID(id int) (*task, error) {
	query := `SELECT id, created_at, name, description, is_done, project_id, user_id
			  FROM tasks
			  WHERE id = $1`
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()
	row := s.db.QueryRowContext(ctx, query, id)
	var t task
	err := row.Scan(&t.ID, &t.CreatedAt, &t.Name, &t.Description, &t.IsDone, &t.ProjectID, &t.UserID)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, nil
		default:
			return nil, err
		}
	}
	return &t, nil
}

func (s *storage) getTasksByProjectID(projectID int) ([]task, error) {
	query := `SELECT id, created_at, name, description, is_done, project_id, user_id
			  FROM tasks
			  WHERE project_id = $1
			  ORDER BY id DESC`
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()
	rows, err := s.db.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	tasks := []task{}
	for rows.Next() {
		var t task
		err := rows.Scan(&t.ID, &t.CreatedAt, &t.Name, &t.Description, &t.IsDone, &t.ProjectID, &t.UserID)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (s *storage) insertTask(t *task) error {
	query := `INSERT INTO tasks (name, description, project_id, user_id)
			  VALUES ($1, $2, $3, $4)
			  RETURNING id, created_at, is_done`
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()
	row := s.db.QueryRowContext(ctx, query, t.Name, t.Description, t.ProjectID, t.UserID)
	return row.Scan(&t.ID, &t.CreatedAt, &t.IsDone)
}

func (s *storage) updateTask(t *task) error {
	query := `UPDATE tasks SET name = $1, description = $2, is_done = $3
			  WHERE id = $4`
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()
	_, err := s.db.ExecContext(ctx, query, t.Name, t.Description, t.IsDone, t.ID)
	return err
}

func (s *storage) deleteTask(id int) error {
	query := `DELETE FROM tasks
			  WHERE id = $1`
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()
	_, err := s.db.ExecContext(ctx, query, id)
	return err
}

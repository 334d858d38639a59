package database

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	_ "github.com/go-sql-driver/mysql"

	"github.com/taskflow/taskflow-api/internal/auth"
	"github.com/taskflow/taskflow-api/internal/repository"
)

// Open connects to MySQL and verifies the connection.
func Open(user, pass, host, port, name string) (*sql.DB, error) {
	authPart := user
	if pass != "" {
		authPart = fmt.Sprintf("%s:%s", user, pass)
	}
	// parseTime=true -> DATETIME -> time.Time | loc=UTC keeps times consistent
	dsn := fmt.Sprintf("%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=UTC",
		authPart, host, port, name)

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}

	// Pool settings
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(30 * time.Minute)

	// Ping with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}
	return db, nil
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		username VARCHAR(50) NOT NULL UNIQUE,
		email VARCHAR(100) NOT NULL UNIQUE,
		full_name VARCHAR(100) NOT NULL,
		password_hash VARCHAR(200) NOT NULL,
		role ENUM('MANAGER','DEVELOPER') NOT NULL DEFAULT 'DEVELOPER',
		is_active TINYINT(1) NOT NULL DEFAULT 1,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS tasks (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		title VARCHAR(200) NOT NULL,
		description TEXT NULL,
		status ENUM('PENDING','IN_PROGRESS','COMPLETED','BLOCKED') NOT NULL DEFAULT 'PENDING',
		priority TINYINT NOT NULL DEFAULT 1,
		assignee_id BIGINT UNSIGNED NOT NULL,
		created_by BIGINT UNSIGNED NOT NULL,
		feedback TEXT NULL,
		score DOUBLE NULL,
		due_date DATETIME NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NULL,
		completed_at DATETIME NULL,
		KEY idx_tasks_assignee (assignee_id),
		KEY idx_tasks_status (status),
		CONSTRAINT fk_tasks_assignee FOREIGN KEY (assignee_id) REFERENCES users(id),
		CONSTRAINT fk_tasks_creator FOREIGN KEY (created_by) REFERENCES users(id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS refresh_tokens (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		user_id BIGINT UNSIGNED NOT NULL,
		token_hash CHAR(64) NOT NULL UNIQUE,
		expires_at DATETIME NOT NULL,
		revoked_at DATETIME NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		KEY idx_refresh_user (user_id),
		CONSTRAINT fk_refresh_user FOREIGN KEY (user_id) REFERENCES users(id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

// EnsureSchema creates the tables if they do not exist yet.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

// Seed inserts a default manager and developer account when no manager
// exists yet, so a fresh deployment is usable immediately.  The demo
// passwords are only meant for local environments.
func Seed(ctx context.Context, db *sql.DB, hasher auth.Hasher) error {
	users := repository.NewUserRepo(db)
	n, err := users.CountByRole(ctx, string(auth.RoleManager))
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	defaults := []struct {
		username, email, fullName, password string
		role                                auth.Role
	}{
		{"project_manager", "pm@taskflow.local", "Project Manager", "pm123", auth.RoleManager},
		{"backend_dev", "dev@taskflow.local", "Backend Developer", "dev123", auth.RoleDeveloper},
	}
	for _, d := range defaults {
		hash, err := hasher.Hash(d.password)
		if err != nil {
			return err
		}
		_, err = db.ExecContext(ctx,
			"INSERT INTO users (username, email, full_name, password_hash, role) VALUES (?,?,?,?,?)",
			d.username, d.email, d.fullName, hash, string(d.role))
		if err != nil {
			return err
		}
	}
	log.Printf("seeded default accounts (manager + developer)")
	return nil
}

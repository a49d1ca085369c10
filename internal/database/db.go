package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

// Open connects to MySQL and verifies the connection.
func Open(user, pass, host, port, name string) (*sql.DB, error) {
	auth := user
	if pass != "" {
		auth = fmt.Sprintf("%s:%s", user, pass)
	}
	// parseTime=true -> DATETIME -> time.Time | loc=UTC keeps times consistent
	dsn := fmt.Sprintf("%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=UTC",
		auth, host, port, name)

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

// schema declares the three tables the service owns. The payment_methods
// foreign key carries ON DELETE CASCADE so the account-deletion contract is
// visible in the schema itself instead of hiding in application code.
// refresh_sessions.subject is deliberately not unique: multiple live
// sessions per user are permitted. The token column is VARBINARY so the
// rotation lookups match byte-exact; a utf8mb4 VARCHAR would compare
// case-insensitively under the default collation.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		user_id       CHAR(36)     NOT NULL,
		username      VARCHAR(20)  NOT NULL,
		name          VARCHAR(50)  NOT NULL,
		role          VARCHAR(20)  NOT NULL,
		email         VARCHAR(255) NOT NULL,
		password      VARCHAR(255) NOT NULL,
		phone_number  VARCHAR(20)  NOT NULL,
		created_at    DATETIME     NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at    DATETIME     NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		UNIQUE KEY uq_users_user_id (user_id),
		UNIQUE KEY uq_users_username (username),
		UNIQUE KEY uq_users_email (email),
		UNIQUE KEY uq_users_phone (phone_number)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS refresh_sessions (
		id         BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		subject    CHAR(36)     NOT NULL,
		token      VARBINARY(512) NOT NULL,
		expires_at VARCHAR(64)  NOT NULL,
		created_at DATETIME     NOT NULL DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		KEY idx_refresh_sessions_token (token),
		KEY idx_refresh_sessions_subject (subject)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS payment_methods (
		id                 BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		user_id            BIGINT UNSIGNED NOT NULL,
		billing_key        VARCHAR(255) NOT NULL,
		card_issuer        VARCHAR(50)  NOT NULL,
		expiry_date        VARCHAR(5)   NOT NULL,
		card_number_masked VARCHAR(50)  NOT NULL,
		is_default         TINYINT(1)   NOT NULL DEFAULT 0,
		PRIMARY KEY (id),
		KEY idx_payment_methods_user (user_id),
		CONSTRAINT fk_payment_methods_user FOREIGN KEY (user_id)
			REFERENCES users (id) ON DELETE CASCADE
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

// EnsureSchema creates the service's tables when they do not exist yet.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

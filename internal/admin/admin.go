package admin

import (
	"database/sql"
	"fmt"
	"log"

	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"

	"github.com/playbonspiel/backend/internal/models"
)

// GetAccount retrieves an admin account by username.
func GetAccount(db *sqlx.DB, username string) (*models.AdminAccount, error) {
	var acc models.AdminAccount
	err := db.Get(&acc, `SELECT username, token_hash, created_at, updated_at FROM admin_accounts WHERE username=$1`, username)
	if err != nil {
		return nil, err
	}
	return &acc, nil
}

// CreateAccount creates or updates an admin account (used for seeding).
func CreateAccount(db *sqlx.DB, username, plainToken string) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plainToken), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash token: %w", err)
	}

	_, err = db.Exec(`
		INSERT INTO admin_accounts (username, token_hash, created_at, updated_at)
		VALUES ($1, $2, NOW(), NOW())
		ON CONFLICT (username) DO UPDATE SET
			token_hash = EXCLUDED.token_hash,
			updated_at = NOW()
	`, username, string(hashed))

	return err
}

// Validate checks a username + token pair against the stored hash.
func Validate(db *sqlx.DB, username, token string) (*models.AdminAccount, error) {
	acc, err := GetAccount(db, username)
	if err != nil {
		if err == sql.ErrNoRows {
			log.Printf("[ADMIN] No admin account found for: %s", username)
			return nil, fmt.Errorf("admin account not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(acc.TokenHash), []byte(token)) != nil {
		log.Printf("[ADMIN] Token verification failed for: %s", username)
		return nil, fmt.Errorf("invalid token")
	}

	return acc, nil
}

package db

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// EnsureAdmin creates the bootstrap staff account from ADMIN_USERNAME /
// ADMIN_PASSWORD if it does not exist yet.
func EnsureAdmin(database *Database, orgID string) {
	adminUsername := os.Getenv("ADMIN_USERNAME")
	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if adminUsername == "" {
		return
	}

	var count int
	err := database.ExecQueryRow(context.Background(), "SELECT COUNT(*) FROM users WHERE username = $1", adminUsername).Scan(&count)
	if err != nil {
		log.Fatal(err)
	}

	if count == 0 {
		hashed, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
		if err != nil {
			log.Fatal(err)
		}
		_, err = database.Exec(context.Background(),
			"INSERT INTO users (id, username, password, role, org_id) VALUES ($1, $2, $3, 'staff', $4)",
			uuid.NewString(), adminUsername, string(hashed), orgID)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println("Admin user created successfully.")
	} else {
		fmt.Println("Admin user already exists.")
	}
}

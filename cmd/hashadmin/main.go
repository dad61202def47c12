// Command hashadmin prints the bcrypt hash of a password so an
// administrator row can be inserted by hand:
//
//	go run ./cmd/hashadmin -password 'admin123'
//	INSERT INTO administrador (nombre, correo, password_hash) VALUES (...);
package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/helpdesk-labs/incident-service/internal/auth"
	"github.com/helpdesk-labs/incident-service/internal/config"
)

func main() {
	password := flag.String("password", "", "password to hash")
	flag.Parse()

	if *password == "" {
		log.Fatal("usage: hashadmin -password <password>")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	hash, err := auth.HashPassword(*password, cfg.Auth.BcryptCost)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}
	fmt.Println(hash)
}

// Command seedadmin creates the initial admin account. Safe to re-run: it
// exits without writing when the email already exists.
//
//	seedadmin -email admin@example.com -password secret -name "Admin"
package main

import (
	"context"
	"flag"
	"time"

	"stockroom/internal/config"
	"stockroom/internal/infra"
	"stockroom/internal/model"
	"stockroom/internal/repository"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	email := flag.String("email", "", "admin email (required)")
	password := flag.String("password", "", "admin password (required)")
	name := flag.String("name", "Administrator", "display name")
	flag.Parse()

	if *email == "" || *password == "" {
		log.Fatal().Msg("both -email and -password are required")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("connect database")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	users := repository.NewUserRepository(db)
	if _, err := users.FindByEmail(ctx, *email); err == nil {
		log.Info().Str("email", *email).Msg("admin already exists, nothing to do")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal().Err(err).Msg("hash password")
	}

	u := model.User{
		Name:         *name,
		Email:        *email,
		PasswordHash: string(hash),
		Role:         "admin",
		Active:       true,
	}
	if err := users.Create(ctx, &u); err != nil {
		log.Fatal().Err(err).Msg("create admin")
	}
	log.Info().Str("email", *email).Str("id", u.ID.String()).Msg("admin created")
}

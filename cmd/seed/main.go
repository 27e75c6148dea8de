package main

import (
	"context"
	"errors"
	"log"

	"github.com/joho/godotenv"

	"github.com/oksasatya/mesto-api/config"
	"github.com/oksasatya/mesto-api/internal/domain/entity"
	"github.com/oksasatya/mesto-api/internal/domain/repository"
	pginfra "github.com/oksasatya/mesto-api/internal/infrastructure/postgres"
	"github.com/oksasatya/mesto-api/pkg/helpers"
)

var demoCards = []struct{ name, link string }{
	{"Arkhyz", "https://pictures.s3.yandex.net/frontend-developer/cards-compressed/arkhyz.jpg"},
	{"Chelyabinsk", "https://pictures.s3.yandex.net/frontend-developer/cards-compressed/chelyabinsk-oblast.jpg"},
	{"Kamchatka", "https://pictures.s3.yandex.net/frontend-developer/cards-compressed/kamchatka.jpg"},
	{"Baikal", "https://pictures.s3.yandex.net/frontend-developer/cards-compressed/baikal.jpg"},
}

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env)
	ctx := context.Background()

	pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), 2, 1, cfg.DBMaxConnLife)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()

	users := pginfra.NewUserRepository(pool)
	cards := pginfra.NewCardRepository(pool)

	email := "demo@mesto.dev"
	password := "password123"

	u, err := users.GetByEmail(ctx, email)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		hash, herr := helpers.HashPassword(password)
		if herr != nil {
			log.Fatalf("failed to hash password: %v", herr)
		}
		u = &entity.User{
			Name:     cfg.DefaultUserName,
			About:    cfg.DefaultUserAbout,
			Avatar:   cfg.DefaultUserAvatar,
			Email:    email,
			Password: hash,
		}
		if err := users.Create(ctx, u); err != nil {
			log.Fatalf("failed to seed user: %v", err)
		}
	case err != nil:
		log.Fatalf("failed to look up demo user: %v", err)
	default:
		logger.WithField("user_id", u.ID).Info("demo user already exists; cards not re-seeded")
		return
	}

	for _, dc := range demoCards {
		c := &entity.Card{Name: dc.name, Link: dc.link, OwnerID: u.ID}
		if err := cards.Create(ctx, c); err != nil {
			log.Fatalf("failed to seed card %q: %v", dc.name, err)
		}
	}
	logger.WithField("user_id", u.ID).Infof("seeded user %s (password %s) with %d cards", email, password, len(demoCards))
}

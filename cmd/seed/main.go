package main

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"wishlisted/internal/config"
	"wishlisted/internal/db"
	"wishlisted/internal/model"
	"wishlisted/internal/repository"
)

const seedPassword = "password123"

type seedUser struct {
	Email   string
	Name    string
	Surname string
	Wishes  []seedWish
}

type seedWish struct {
	Title       string
	Description string
	Price       string
	CanBeAnon   bool
}

var seedUsers = []seedUser{
	{
		Email: "alice@example.com", Name: "Alice", Surname: "Nordin",
		Wishes: []seedWish{
			{Title: "Book", Description: "A novel I keep postponing", Price: "20", CanBeAnon: false},
			{Title: "Espresso machine", Description: "Anything that makes crema", Price: "240.50", CanBeAnon: true},
		},
	},
	{
		Email: "bob@example.com", Name: "Bob", Surname: "Keller",
		Wishes: []seedWish{
			{Title: "Climbing shoes", Description: "Size 43, aggressive", Price: "99.90", CanBeAnon: true},
		},
	},
	{
		Email: "carol@example.com", Name: "Carol", Surname: "Iversen",
	},
}

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(&model.User{}, &model.Wish{}, &model.Follow{}, &model.AuthToken{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	ctx := context.Background()
	userRepo := repository.NewUserRepository(gormDB)
	wishRepo := repository.NewWishRepository(gormDB)
	followRepo := repository.NewFollowRepository(gormDB)

	hash, err := bcrypt.GenerateFromPassword([]byte(seedPassword), 10)
	if err != nil {
		log.Fatalf("Failed to hash seed password: %v", err)
	}

	created := make([]*model.User, 0, len(seedUsers))
	for _, su := range seedUsers {
		user, fresh, err := ensureUser(ctx, userRepo, su, string(hash))
		if err != nil {
			log.Fatalf("Failed to seed user %s: %v", su.Email, err)
		}
		created = append(created, user)
		if !fresh {
			continue
		}

		for _, sw := range su.Wishes {
			price, err := decimal.NewFromString(sw.Price)
			if err != nil {
				log.Fatalf("Bad seed price %q: %v", sw.Price, err)
			}
			wish := &model.Wish{
				Title:       sw.Title,
				Description: sw.Description,
				Price:       price,
				CanBeAnon:   sw.CanBeAnon,
				OwnerID:     user.ID,
			}
			if err := wishRepo.Create(ctx, wish); err != nil {
				log.Fatalf("Failed to seed wish %q: %v", sw.Title, err)
			}
		}
	}

	// Everyone follows alice; follow creation is idempotent so reruns are safe.
	for _, follower := range created[1:] {
		if err := followRepo.Create(ctx, follower.ID, created[0].ID); err != nil {
			log.Fatalf("Failed to seed follow edge: %v", err)
		}
	}

	log.Printf("Seeded %d users (password %q)", len(created), seedPassword)
	fmt.Println("Done")
}

// ensureUser reports whether the user was created on this run, so reruns do
// not duplicate the user's seed wishes.
func ensureUser(ctx context.Context, repo repository.UserRepository, su seedUser, hash string) (*model.User, bool, error) {
	existing, err := repo.FindByEmail(ctx, su.Email)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	user := &model.User{
		Email:        su.Email,
		PasswordHash: hash,
		Name:         su.Name,
		Surname:      su.Surname,
		IsActive:     true,
	}
	if err := repo.Create(ctx, user); err != nil {
		return nil, false, err
	}
	return user, true, nil
}

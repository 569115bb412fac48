package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"

	"hotelbooking/internal/config"
	"hotelbooking/internal/database"
	"hotelbooking/internal/domain"
	"hotelbooking/internal/pkg/logger"
	"hotelbooking/internal/repository"
)

type seedUser struct {
	FirstName string `yaml:"first_name"`
	LastName  string `yaml:"last_name"`
	Email     string `yaml:"email"`
	Password  string `yaml:"password"`
	Phone     string `yaml:"phone"`
}

type seedFile struct {
	Admin     seedUser   `yaml:"admin"`
	Customers []seedUser `yaml:"customers"`
	Rooms     []seedRoom `yaml:"rooms"`
}

type seedRoom struct {
	Number      string   `yaml:"number"`
	Type        string   `yaml:"type"`
	Description string   `yaml:"description"`
	Price       float64  `yaml:"price"`
	Adults      int      `yaml:"adults"`
	Children    int      `yaml:"children"`
	Size        int      `yaml:"size"`
	BedType     string   `yaml:"bed_type"`
	Floor       int      `yaml:"floor"`
	Amenities   []string `yaml:"amenities"`
	Images      []string `yaml:"images"`
}

func main() {
	path := flag.String("file", "cmd/seed/rooms.yaml", "seed data file")
	flag.Parse()

	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("config: %v", err)
	}
	log := logger.New(cfg.LogLevel, cfg.LogFormat)

	data, err := loadSeed(*path)
	if err != nil {
		log.WithError(err).Fatal("read seed file")
	}

	db, err := database.Connect(cfg.DatabaseURL, log)
	if err != nil {
		log.WithError(err).Fatal("database connect failed")
	}
	if err := database.Migrate(db); err != nil {
		log.WithError(err).Fatal("database migrate failed")
	}

	ctx := context.Background()
	users := repository.NewUserRepository(db)
	admin := data.Admin
	if env := os.Getenv("SEED_ADMIN_PASSWORD"); env != "" {
		admin.Password = env
	}
	if err := seedUserIfMissing(ctx, users, admin, domain.RoleAdmin, log); err != nil {
		log.WithError(err).Fatal("seed admin")
	}
	for _, cu := range data.Customers {
		if err := seedUserIfMissing(ctx, users, cu, domain.RoleCustomer, log); err != nil {
			log.WithError(err).Fatal("seed customer")
		}
	}
	created, err := seedRooms(ctx, repository.NewRoomRepository(db), data.Rooms, log)
	if err != nil {
		log.WithError(err).Fatal("seed rooms")
	}
	log.WithField("rooms_created", created).Info("seed complete")
}

func loadSeed(path string) (*seedFile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var out seedFile
	if err := yaml.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &out, nil
}

func seedUserIfMissing(ctx context.Context, users *repository.UserRepository, su seedUser, role domain.UserRole, log logrus.FieldLogger) error {
	email := strings.ToLower(strings.TrimSpace(su.Email))
	if email == "" {
		return nil
	}
	exists, err := users.ExistsByEmail(ctx, email)
	if err != nil {
		return err
	}
	if exists {
		log.WithField("email", email).Debug("user already present")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(su.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u := &domain.User{
		FirstName:    su.FirstName,
		LastName:     su.LastName,
		Email:        email,
		PasswordHash: string(hash),
		Phone:        su.Phone,
		Role:         role,
		IsActive:     true,
	}
	if err := users.Create(ctx, u); err != nil {
		return err
	}
	log.WithFields(logrus.Fields{"email": email, "role": role}).Info("user created")
	return nil
}

func seedRooms(ctx context.Context, rooms *repository.RoomRepository, list []seedRoom, log logrus.FieldLogger) (int, error) {
	created := 0
	for _, sr := range list {
		if _, err := rooms.GetByNumber(ctx, sr.Number); err == nil {
			continue
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return created, err
		}

		room := &domain.Room{
			RoomNumber:  sr.Number,
			RoomType:    domain.RoomType(sr.Type),
			Description: sr.Description,
			Price:       sr.Price,
			Capacity:    domain.RoomCapacity{Adults: sr.Adults, Children: sr.Children},
			Size:        sr.Size,
			BedType:     domain.BedType(sr.BedType),
			Amenities:   sr.Amenities,
			Images:      sr.Images,
			Floor:       sr.Floor,
			IsActive:    true,
		}
		if !room.RoomType.Valid() || !room.BedType.Valid() {
			return created, fmt.Errorf("room %s: bad type %q or bed %q", sr.Number, sr.Type, sr.BedType)
		}
		if err := rooms.Create(ctx, room); err != nil {
			return created, fmt.Errorf("room %s: %w", sr.Number, err)
		}
		created++
	}
	if created > 0 {
		log.WithField("count", created).Info("rooms created")
	}
	return created, nil
}

// Command seed-users loads the user directory used to show creator and reviewer names.
//
//	seed-users -file users.json
//
// The file holds a JSON array of {"id", "role", "name"} objects. Existing users are
// updated in place.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"

	"purchasing/cmd"
	"purchasing/internal/adapters/out/postgres/userrepo"
	"purchasing/internal/core/domain/model/identity"
	"purchasing/internal/core/domain/model/kernel"
	"purchasing/internal/pkg/logger"

	"github.com/sirupsen/logrus"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type userRecord struct {
	ID   string `json:"id"`
	Role string `json:"role"`
	Name string `json:"name"`
}

func main() {
	file := flag.String("file", "users.json", "JSON file with the users to seed")
	flag.Parse()

	configs, err := cmd.LoadConfig()
	if err != nil {
		logrus.WithError(err).Fatal("Invalid configuration")
	}
	log := logger.New(configs.LogLevel, nil)

	users, err := readUsers(*file)
	if err != nil {
		logger.LogError(log, "seed-users", "readUsers", "read users file", *file, err)
		os.Exit(1)
	}

	db, err := gorm.Open(gormpostgres.Open(configs.DSN()), &gorm.Config{TranslateError: true})
	if err != nil {
		logger.LogError(log, "seed-users", "main", "connect to postgres", configs.DBHost, err)
		os.Exit(1)
	}
	if err = db.AutoMigrate(&userrepo.UserDTO{}); err != nil {
		logger.LogError(log, "seed-users", "main", "migrate users", nil, err)
		os.Exit(1)
	}

	directory := userrepo.NewGormUserDirectory(db)
	ctx := context.Background()
	for _, user := range users {
		if err = directory.Upsert(ctx, user); err != nil {
			logger.LogError(log, "seed-users", "main", "upsert user", user.ID().String(), err)
			os.Exit(1)
		}
	}
	log.WithField("count", len(users)).Info("Users seeded")
}

// readUsers parses and validates every record; all problems are reported together.
func readUsers(path string) ([]identity.Identity, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var records []userRecord
	if err = json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	users := make([]identity.Identity, 0, len(records))
	var problems []error
	for i, record := range records {
		user, err := toIdentity(record)
		if err != nil {
			problems = append(problems, fmt.Errorf("user %d: %w", i, err))
			continue
		}
		users = append(users, user)
	}
	if err = errors.Join(problems...); err != nil {
		return nil, err
	}
	return users, nil
}

func toIdentity(record userRecord) (identity.Identity, error) {
	id, err := kernel.ParseUUID("id", record.ID)
	if err != nil {
		return identity.Identity{}, err
	}
	role, err := identity.ParseRole(record.Role)
	if err != nil {
		return identity.Identity{}, err
	}
	return identity.NewIdentity(id, role, record.Name)
}

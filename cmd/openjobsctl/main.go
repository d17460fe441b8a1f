package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/openjobs/openjobs/internal/config"
	"github.com/openjobs/openjobs/internal/database"
	"github.com/openjobs/openjobs/internal/dtos"
	"github.com/openjobs/openjobs/internal/services"
)

// openjobsctl runs the bootstrap tasks that the serving process never
// performs at request time: schema creation and admin seeding.
func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fatal(err)
	}
	db, err := database.Connect(cfg)
	if err != nil {
		fatal(err)
	}

	switch os.Args[1] {
	case "init-db":
		// Drop everything first so the schema starts clean.
		if err := database.Reset(db); err != nil {
			fatal(err)
		}
		fmt.Println("Database initialized.")

	case "create-admin":
		fs := flag.NewFlagSet("create-admin", flag.ExitOnError)
		name := fs.String("name", "Admin User", "display name")
		username := fs.String("username", "", "admin username (required)")
		email := fs.String("email", "", "admin email (required)")
		password := fs.String("password", "", "admin password (required)")
		_ = fs.Parse(os.Args[2:])

		if *username == "" || *email == "" || *password == "" {
			fs.Usage()
			os.Exit(2)
		}
		if err := database.Migrate(db); err != nil {
			fatal(err)
		}

		users := services.NewUserService(db)
		_, err := users.RegisterAdmin(&dtos.RegisterForm{
			Name:     *name,
			Username: *username,
			Email:    *email,
			Password: *password,
		})
		if errors.Is(err, services.ErrForbidden) {
			fatal(errors.New("an admin user already exists"))
		}
		if err != nil {
			fatal(err)
		}
		fmt.Println("Admin user created.")

	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: openjobsctl <init-db|create-admin> [flags]")
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "error:", err)
	os.Exit(1)
}

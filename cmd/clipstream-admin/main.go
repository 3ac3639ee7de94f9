// Package main is the entry point for the Clipstream admin CLI.
// This tool provides administrative commands for managing accounts and
// seeding demo data.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/rs/zerolog"

	"github.com/prn-tf/clipstream/internal/config"
	"github.com/prn-tf/clipstream/internal/domain"
	"github.com/prn-tf/clipstream/internal/pkg/password"
	"github.com/prn-tf/clipstream/internal/repository"
	"github.com/prn-tf/clipstream/internal/repository/postgres"
	"github.com/prn-tf/clipstream/internal/repository/sqlite"
)

// Version information (set at build time)
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]

	var err error
	switch command {
	case "version":
		fmt.Printf("Clipstream Admin CLI\n")
		fmt.Printf("Version: %s\n", Version)
		fmt.Printf("Build Time: %s\n", BuildTime)
		fmt.Printf("Git Commit: %s\n", GitCommit)

	case "user":
		err = runUserCommand(os.Args[2:])

	case "seed":
		err = runSeedCommand(os.Args[2:])

	case "help", "-h", "--help":
		printUsage()

	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`Clipstream Admin CLI

Usage:
  clipstream-admin <command> [arguments]

Commands:
  user        Manage accounts (create, list, delete)
  seed        Populate the database with demo accounts and videos
  version     Print version information
  help        Show this help message

Examples:
  clipstream-admin user create -username alice -email alice@example.com -password 'Secret123'
  clipstream-admin user list
  clipstream-admin user delete -id 3
  clipstream-admin seed

Use -config to point any command at a config file.`)
}

// openRepos opens the configured database and returns the repositories.
func openRepos(ctx context.Context, configPath string) (repository.UserRepository, repository.VideoRepository, func(), error) {
	cfg := config.MustLoad(configPath)
	logger := zerolog.New(os.Stderr).Level(zerolog.WarnLevel)

	if cfg.Database.Driver == "postgres" {
		db, err := postgres.NewDB(ctx, cfg.Database, logger)
		if err != nil {
			return nil, nil, nil, err
		}
		if err := db.Migrate(ctx); err != nil {
			db.Close()
			return nil, nil, nil, err
		}
		return postgres.NewUserRepository(db), postgres.NewVideoRepository(db), func() { db.Close() }, nil
	}

	sqliteCfg := sqlite.DefaultConfig(cfg.Database.Path)
	db, err := sqlite.NewDB(ctx, sqliteCfg, logger)
	if err != nil {
		return nil, nil, nil, err
	}
	if err := db.Migrate(ctx); err != nil {
		db.Close()
		return nil, nil, nil, err
	}
	return sqlite.NewUserRepository(db), sqlite.NewVideoRepository(db), func() { db.Close() }, nil
}

func runUserCommand(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("user subcommand required: create, list or delete")
	}

	ctx := context.Background()

	switch args[0] {
	case "create":
		fs := flag.NewFlagSet("user create", flag.ExitOnError)
		configPath := fs.String("config", "", "path to config file")
		username := fs.String("username", "", "username for the new account")
		email := fs.String("email", "", "email for the new account")
		plaintext := fs.String("password", "", "password for the new account")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		if *username == "" || *email == "" || *plaintext == "" {
			return fmt.Errorf("-username, -email and -password are required")
		}
		if problems := password.Validate(*plaintext); len(problems) > 0 {
			return fmt.Errorf("weak password: %v", problems)
		}

		userRepo, _, closeDB, err := openRepos(ctx, *configPath)
		if err != nil {
			return err
		}
		defer closeDB()

		hash, err := password.Hash(*plaintext)
		if err != nil {
			return err
		}
		user := domain.NewUser(*username, *email, hash)
		if err := userRepo.Create(ctx, user); err != nil {
			return err
		}
		fmt.Printf("created user %d (%s)\n", user.ID, user.Username)
		return nil

	case "list":
		fs := flag.NewFlagSet("user list", flag.ExitOnError)
		configPath := fs.String("config", "", "path to config file")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}

		userRepo, _, closeDB, err := openRepos(ctx, *configPath)
		if err != nil {
			return err
		}
		defer closeDB()

		users, err := userRepo.List(ctx)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tUSERNAME\tEMAIL\tREGISTERED")
		for _, u := range users {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", u.ID, u.Username, u.Email, u.RegisteredAt.Format("2006-01-02 15:04:05"))
		}
		return w.Flush()

	case "delete":
		fs := flag.NewFlagSet("user delete", flag.ExitOnError)
		configPath := fs.String("config", "", "path to config file")
		id := fs.Int64("id", 0, "ID of the account to delete")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		if *id == 0 {
			return fmt.Errorf("-id is required")
		}

		userRepo, _, closeDB, err := openRepos(ctx, *configPath)
		if err != nil {
			return err
		}
		defer closeDB()

		if err := userRepo.Delete(ctx, *id); err != nil {
			return err
		}
		fmt.Printf("deleted user %d\n", *id)
		return nil

	default:
		return fmt.Errorf("unknown user subcommand: %s", args[0])
	}
}

// seedUser is a demo account with its videos.
type seedUser struct {
	username string
	email    string
	password string
	videos   []seedVideo
}

type seedVideo struct {
	title       string
	description string
	credits     string
	isPrivate   bool
}

// runSeedCommand populates the database with demo accounts and videos.
func runSeedCommand(args []string) error {
	fs := flag.NewFlagSet("seed", flag.ExitOnError)
	configPath := fs.String("config", "", "path to config file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	seeds := []seedUser{
		{
			username: "alice",
			email:    "alice@example.com",
			password: "Wonderland1",
			videos: []seedVideo{
				{title: "Sunrise timelapse", description: "Shot over three mornings from the rooftop.", credits: "camera: alice"},
				{title: "Drafts and outtakes", description: "Raw clips, not ready to share.", isPrivate: true},
			},
		},
		{
			username: "bob",
			email:    "bob@example.com",
			password: "Builder99x",
			videos: []seedVideo{
				{title: "Workshop tour", description: "A walk through the garage workshop."},
			},
		},
	}

	ctx := context.Background()
	userRepo, videoRepo, closeDB, err := openRepos(ctx, *configPath)
	if err != nil {
		return err
	}
	defer closeDB()

	for _, s := range seeds {
		hash, err := password.Hash(s.password)
		if err != nil {
			return err
		}
		user := domain.NewUser(s.username, s.email, hash)
		if err := userRepo.Create(ctx, user); err != nil {
			return fmt.Errorf("seeding user %s: %w", s.username, err)
		}
		fmt.Printf("created user %d (%s)\n", user.ID, user.Username)

		for _, v := range s.videos {
			video := domain.NewVideo(user.ID, v.title, v.description)
			video.IsPrivate = v.isPrivate
			if v.credits != "" {
				credits := v.credits
				video.Credits = &credits
			}
			if err := videoRepo.Create(ctx, video); err != nil {
				return fmt.Errorf("seeding video %q: %w", v.title, err)
			}
			fmt.Printf("  created video %s (%q)\n", video.ID, video.Title)
		}
	}

	return nil
}

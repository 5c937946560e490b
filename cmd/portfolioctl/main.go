// Package main is a one-off administration tool for the portfolio database.
//
//	portfolioctl migrate [-seed]
//	portfolioctl create-admin [-email addr] [-password secret]
package main

import (
	"cmp"
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/atinyakov/portfolio/internal/config"
	"github.com/atinyakov/portfolio/internal/db"
	"github.com/atinyakov/portfolio/internal/logger"
	"github.com/atinyakov/portfolio/internal/models"
	"github.com/atinyakov/portfolio/internal/repository"
	"github.com/atinyakov/portfolio/internal/service"
)

const (
	defaultAdminEmail    = "admin@portfolio.com"
	defaultAdminPassword = "admin123"
	minPasswordLen       = 6
)

var (
	version   string
	buildDate string
)

const usage = `usage: portfolioctl <command> [flags]

commands:
  migrate       apply the schema (-seed adds sample content)
  create-admin  create the dashboard admin account
  version       print build information
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	log := logger.New()
	defer func() { _ = log.Log.Sync() }()

	options, err := config.FromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	if err := log.Init(options.LogLevel); err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if err := run(ctx, os.Args[1], os.Args[2:], options, os.Stdout); err != nil {
		log.Log.Fatal("command failed", zap.String("command", os.Args[1]), zap.Error(err))
	}
}

func run(ctx context.Context, cmd string, args []string, options *config.Options, out io.Writer) error {
	switch cmd {
	case "version":
		fmt.Fprintf(out, "Build version: %s\nBuild date: %s\n", cmp.Or(version, "N/A"), cmp.Or(buildDate, "N/A"))
		return nil

	case "migrate":
		fs := flag.NewFlagSet("migrate", flag.ContinueOnError)
		seed := fs.Bool("seed", false, "insert sample content into empty tables")
		if err := fs.Parse(args); err != nil {
			return err
		}
		conn, err := open(options)
		if err != nil {
			return err
		}
		defer conn.Close()
		return migrate(ctx, conn, *seed, out)

	case "create-admin":
		fs := flag.NewFlagSet("create-admin", flag.ContinueOnError)
		email := fs.String("email", defaultAdminEmail, "admin email")
		password := fs.String("password", defaultAdminPassword, "admin password")
		if err := fs.Parse(args); err != nil {
			return err
		}
		conn, err := open(options)
		if err != nil {
			return err
		}
		defer conn.Close()
		svc := service.NewAuthService(repository.NewPostgresUserRepository(conn), nil, 0)
		return createAdmin(ctx, svc, *email, *password, out)

	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func open(options *config.Options) (*sql.DB, error) {
	return db.InitPostgres(options.DSN(), db.PoolOptions{MaxOpenConns: 2, MaxIdleConns: 1})
}

func migrate(ctx context.Context, conn *sql.DB, seed bool, out io.Writer) error {
	if err := db.Migrate(ctx, conn); err != nil {
		return err
	}
	fmt.Fprintln(out, "schema is up to date")
	if !seed {
		return nil
	}

	filled, err := db.Seed(ctx, conn)
	if err != nil {
		return err
	}
	if len(filled) == 0 {
		fmt.Fprintln(out, "sample data skipped: tables already have rows")
		return nil
	}
	for _, table := range filled {
		fmt.Fprintf(out, "seeded %s\n", table)
	}
	return nil
}

type registrar interface {
	Register(ctx context.Context, email, password string, role models.Role) (*models.User, error)
}

// createAdmin registers an admin under the same rules as POST /api/auth/register.
func createAdmin(ctx context.Context, reg registrar, email, password string, out io.Writer) error {
	email = strings.ToLower(strings.TrimSpace(email))
	check := validator.New()
	if err := check.Var(email, "required,email"); err != nil {
		return fmt.Errorf("invalid email %q", email)
	}
	if err := check.Var(password, fmt.Sprintf("required,min=%d", minPasswordLen)); err != nil {
		return fmt.Errorf("password must be at least %d characters", minPasswordLen)
	}

	user, err := reg.Register(ctx, email, password, models.RoleAdmin)
	if errors.Is(err, service.ErrUserExists) {
		fmt.Fprintf(out, "admin %s already exists\n", email)
		return nil
	}
	if err != nil {
		return fmt.Errorf("create admin: %w", err)
	}

	fmt.Fprintf(out, "created admin %s (id %d)\n", user.Email, user.ID)
	if password == defaultAdminPassword {
		fmt.Fprintln(out, "WARNING: change the default password after first login")
	}
	return nil
}

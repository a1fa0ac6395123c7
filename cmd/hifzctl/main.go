package main

import (
	"database/sql"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/Spok95/hifz-contest/internal/auth"
	"github.com/Spok95/hifz-contest/internal/db"
	"github.com/Spok95/hifz-contest/internal/importer"
	"github.com/Spok95/hifz-contest/internal/logging"
	"github.com/Spok95/hifz-contest/internal/models"
)

func main() {
	_ = godotenv.Load()

	cliApp := &cli.App{
		Name:  "hifzctl",
		Usage: "administration of the hifz contest database",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "database-url",
				Usage:   "postgres DSN",
				EnvVars: []string{"DATABASE_URL"},
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "log to stderr",
			},
		},
		Commands: []*cli.Command{
			migrateCommand(),
			userCommand(),
			importCommand(),
		},
	}

	if err := cliApp.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// withDB открывает соединение, выполняет fn и закрывает его.
func withDB(c *cli.Context, fn func(*sql.DB) error) error {
	database, err := db.Open(c.Context, c.String("database-url"))
	if err != nil {
		return err
	}
	defer func() { _ = database.Close() }()
	return fn(database)
}

// cliLogger: без --verbose CLI молчит, вывод только итоговый.
func cliLogger(verbose bool) (*logging.Log, error) {
	if !verbose {
		return logging.Nop(), nil
	}
	return logging.Init("debug", "dev")
}

func migrateCommand() *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "database migrations",
		Subcommands: []*cli.Command{
			{
				Name:  "up",
				Usage: "apply all pending migrations",
				Action: func(c *cli.Context) error {
					return withDB(c, db.Migrate)
				},
			},
			{
				Name:  "down",
				Usage: "roll back the last migration",
				Action: func(c *cli.Context) error {
					return withDB(c, db.MigrateDown)
				},
			},
			{
				Name:  "version",
				Usage: "print the current schema version",
				Action: func(c *cli.Context) error {
					return withDB(c, func(database *sql.DB) error {
						v, err := db.MigrationVersion(database)
						if err != nil {
							return err
						}
						fmt.Fprintln(c.App.Writer, v)
						return nil
					})
				},
			},
		},
	}
}

func userCommand() *cli.Command {
	return &cli.Command{
		Name:  "user",
		Usage: "manage accounts",
		Subcommands: []*cli.Command{
			{
				Name:  "add",
				Usage: "create an account",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "username", Required: true},
					&cli.StringFlag{Name: "password", Required: true, EnvVars: []string{"HIFZ_PASSWORD"}},
					&cli.StringFlag{Name: "role", Value: string(models.Evaluator), Usage: "admin|evaluator|viewer"},
				},
				Action: func(c *cli.Context) error {
					role := models.Role(c.String("role"))
					if !role.Valid() {
						return fmt.Errorf("unknown role %q", role)
					}
					hash, err := auth.HashPassword(c.String("password"))
					if err != nil {
						return err
					}
					u := &models.User{Username: c.String("username"), PasswordHash: hash, Role: role}
					return withDB(c, func(database *sql.DB) error {
						if err := db.CreateUser(c.Context, database, u); err != nil {
							return err
						}
						fmt.Fprintf(c.App.Writer, "user %s (%s) created, id=%d\n", u.Username, u.Role, u.ID)
						return nil
					})
				},
			},
		},
	}
}

func importCommand() *cli.Command {
	return &cli.Command{
		Name:      "import",
		Usage:     "import competitors from a CSV file",
		ArgsUsage: "<file>",
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return cli.Exit("expected exactly one file", 2)
			}
			f, err := os.Open(c.Args().First())
			if err != nil {
				return err
			}
			defer func() { _ = f.Close() }()

			lg, err := cliLogger(c.Bool("verbose"))
			if err != nil {
				return err
			}
			defer lg.Closer()

			return withDB(c, func(database *sql.DB) error {
				res, err := importer.New(db.NewStore(database), lg.Component("import")).Run(c.Context, f)
				if res != nil {
					printImport(c.App.Writer, res)
				}
				return err
			})
		},
	}
}

// printImport печатает итог, в том числе частичный, если чтение файла оборвалось.
func printImport(w io.Writer, res *importer.Result) {
	fmt.Fprintf(w, "added: %d, skipped: %d, errors: %d\n", res.Success, res.Skipped, res.Errors)
	for _, e := range res.RowErrors {
		fmt.Fprintf(w, "  row %d (%s): %s\n", e.Row, e.Name, e.Reason)
	}
}

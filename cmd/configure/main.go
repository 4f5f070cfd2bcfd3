package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/angelmondragon/plu-backend/pkg/config"
	"github.com/angelmondragon/plu-backend/pkg/db"
	"github.com/angelmondragon/plu-backend/pkg/version"
)

func main() {
	path := flag.String("env", ".env", "path of the env file to update")
	flag.Parse()

	if err := run(*path); err != nil {
		fmt.Fprintln(os.Stderr, "configure:", err)
		os.Exit(1)
	}
}

func run(path string) error {
	current, err := readEnvFile(path)
	if err != nil {
		return err
	}

	a := answers{Driver: current[config.EnvDBDriver]}
	if a.Driver == "" {
		a.Driver = config.DriverMySQL
	}
	testConn := true

	hint := func(key string) string {
		if v := current[key]; v != "" {
			return "current: " + v
		}
		return "not set"
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title(version.ProgramName()).
				Description("Database settings. Leave a field blank to keep its current value."),
			huh.NewSelect[string]().
				Title("Driver").
				Options(
					huh.NewOption("MySQL / MariaDB", config.DriverMySQL),
					huh.NewOption("PostgreSQL", config.DriverPostgres),
					huh.NewOption("SQLite", config.DriverSQLite),
				).
				Value(&a.Driver),
			huh.NewInput().Title("Host").Placeholder(hint(config.EnvDBHost)).Value(&a.Host),
			huh.NewInput().Title("Port").Placeholder(hint(config.EnvDBPort)).Value(&a.Port),
			huh.NewInput().Title("Database").Placeholder(hint(config.EnvDBName)).Value(&a.Name),
			huh.NewInput().Title("User").Placeholder(hint(config.EnvDBUser)).Value(&a.User),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&a.Password),
			huh.NewConfirm().Title("Test the connection before saving?").Value(&testConn),
		),
	)
	if err := form.Run(); err != nil {
		return err
	}

	values, err := apply(current, a)
	if err != nil {
		return err
	}

	if testConn {
		if err := testConnection(values); err != nil {
			return fmt.Errorf("connection test failed: %w", err)
		}
		fmt.Println("connection OK")
	}

	if err := writeEnvFile(path, values); err != nil {
		return err
	}
	fmt.Println("saved", path)
	return nil
}

func testConnection(values map[string]string) error {
	for k, v := range values {
		if err := os.Setenv(k, v); err != nil {
			return err
		}
	}
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	client, err := db.New(ctx, cfg.DB, nil)
	if err != nil {
		return err
	}
	defer client.Close()
	return client.Ping(ctx)
}

package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	users_service "github.com/podium-optique/catalog/internal/app/users/service"
	"github.com/podium-optique/catalog/internal/bootstrap"
	postgres_client "github.com/podium-optique/catalog/internal/clients/postgres"
	"github.com/podium-optique/catalog/internal/config"
)

var file = flag.String("file", "users.xlsx", "accounts workbook to import")

func main() {
	flag.Parse()
	log := bootstrap.NewLogger()

	cfg, err := config.Load()
	if err != nil {
		log.Error("config", "error", err)
		os.Exit(1)
	}
	db, err := postgres_client.New(cfg, log)
	if err != nil {
		log.Error("postgres", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := postgres_client.Migrate(db, log); err != nil {
		log.Error("migrate", "error", err)
		os.Exit(1)
	}

	count, err := users_service.New(db, log).ImportFile(context.Background(), *file)
	if err != nil {
		log.Error("accounts import failed", "error", err)
		os.Exit(1)
	}
	fmt.Printf("%d accounts created\n", count)
}

package main

import (
	"database/sql"
	"log"
	"os"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	_ "modernc.org/sqlite"

	"freight-matching-service/internal/adapters/repositories"
	"freight-matching-service/internal/config"
	"freight-matching-service/internal/platform/db"
)

// seedtool initializes the freight schema and loads the contract lanes
// and orders from the JSON seed files. With DATABASE_URL set it targets
// Postgres; otherwise the local SQLite database.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	contractsPath := config.Get("CONTRACTS_SEED_PATH", "data/seeds/contracts.json")
	ordersPath := config.Get("ORDERS_SEED_PATH", "data/seeds/orders.json")

	databaseURL := os.Getenv("DATABASE_URL")
	if strings.TrimSpace(databaseURL) != "" {
		store, err := db.OpenPostgres(databaseURL)
		if err != nil {
			log.Fatal(err)
		}
		defer store.Close()

		seedPostgres(store, contractsPath, ordersPath)
		return
	}

	dbPath := config.Get("DB_PATH", "data/freight.db")
	store, err := db.OpenSQLite(dbPath)
	if err != nil {
		log.Fatal(err)
	}
	defer store.Close()

	seedSQLite(store, contractsPath, ordersPath)
}

func seedPostgres(store *sql.DB, contractsPath, ordersPath string) {
	log.Println("Initializing postgres schema...")
	if err := repositories.InitPostgresSchema(store); err != nil {
		log.Fatalf("schema initialization failed: %v", err)
	}
	log.Println("Schema ready.")

	log.Println("Seeding contract lanes and orders...")
	if err := repositories.SeedPostgresContractsFromJSON(store, contractsPath); err != nil {
		log.Fatalf("seeding contracts failed: %v", err)
	}
	if err := repositories.SeedPostgresOrdersFromJSON(store, ordersPath); err != nil {
		log.Fatalf("seeding orders failed: %v", err)
	}
	log.Println("Seeding complete.")
}

func seedSQLite(store *sql.DB, contractsPath, ordersPath string) {
	log.Println("Initializing sqlite schema...")
	if err := repositories.InitSchema(store); err != nil {
		log.Fatalf("schema initialization failed: %v", err)
	}
	log.Println("Schema ready.")

	log.Println("Seeding contract lanes and orders...")
	if err := repositories.SeedContractsFromJSON(store, contractsPath); err != nil {
		log.Fatalf("seeding contracts failed: %v", err)
	}
	if err := repositories.SeedOrdersFromJSON(store, ordersPath); err != nil {
		log.Fatalf("seeding orders failed: %v", err)
	}
	log.Println("Seeding complete.")
}

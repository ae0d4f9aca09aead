package main

import (
	"context"
	"log"

	"github.com/dmitryhil/vineweb/config"
	"github.com/dmitryhil/vineweb/internal/app"
	"github.com/dmitryhil/vineweb/internal/infrastructure/database/mongodb"
)

func main() {
	config, err := config.CreateNewConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := mongodb.ConnectToMongoDB(context.Background(), config.MongoDBConfig.URI, config.MongoDBConfig.Database)
	if err != nil {
		log.Fatalf("Failed to connect to the database: %v", err)
	}
	defer db.Client().Disconnect(context.Background())

	server := app.App{
		DB:     db,
		Config: config,
	}

	server.Start()
}

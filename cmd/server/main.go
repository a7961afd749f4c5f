package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/cyberglobes/querybuilder/internal/server"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using defaults")
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8100"
	}

	srv := server.NewServer()
	r := srv.SetupRouter()

	log.Printf("Starting query builder on port %s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal(err)
	}
}

package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/studylink/api-go/config"
	"github.com/studylink/api-go/routes"
	"github.com/studylink/api-go/storage"
)

func main() {
	// Set up logging to stdout
	log.SetOutput(os.Stdout)
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Initialize database and redis
	db := config.InitDB()
	rdb := config.InitRedis()

	var images storage.ImageStore
	if os.Getenv("S3_BUCKET_NAME") != "" {
		images = storage.NewS3Store()
	} else {
		log.Println("No object store configured, image cleanup disabled")
		images = storage.NoopStore{}
	}

	// Create a new Gin router
	r := gin.Default()

	// Add logging middleware
	r.Use(gin.LoggerWithWriter(os.Stdout))

	// Initialize routes
	routes.SetupRoutes(r, db, rdb, images)

	// Start the server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting server on port %s", port)
	r.Run(":" + port)
}

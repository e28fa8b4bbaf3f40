package db

import (
	"log"
	"os"

	"inkstream/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		// Fallback for local dev if not set
		dsn = "host=localhost user=postgres password=postgres dbname=inkstream port=5432 sslmode=disable"
	}

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	log.Println("Database connection established")

	if err := Migrate(DB); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database migration completed")

	seedGroups()
}

// Migrate runs AutoMigrate for every entity. Split out so tests can run it
// against their own database handle.
func Migrate(conn *gorm.DB) error {
	return conn.AutoMigrate(
		&models.User{},
		&models.Group{},
		&models.Post{},
		&models.Comment{},
		&models.Follow{},
	)
}

func seedGroups() {
	var count int64
	DB.Model(&models.Group{}).Count(&count)
	if count > 0 {
		return
	}

	groups := []models.Group{
		{Title: "General", Slug: "general", Description: "Anything that fits nowhere else"},
		{Title: "Tech", Slug: "tech", Description: "Programming, tools and hardware"},
		{Title: "Writing", Slug: "writing", Description: "Essays, fiction and drafts"},
	}

	for _, group := range groups {
		if err := DB.Create(&group).Error; err != nil {
			log.Printf("Failed to create group %s: %v", group.Slug, err)
		}
	}
	log.Println("Initial groups created")
}

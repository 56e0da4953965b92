package main

import (
	"context"
	"log"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"magicstore/internal/config"
	"magicstore/internal/db"
	"magicstore/internal/model"
	"magicstore/internal/repository"
)

type seedCourse struct {
	Title       string
	Description string
	Price       int64
	Category    model.CourseCategory
	Image       string
	Features    []string
}

var seedCourses = []seedCourse{
	{
		Title:       "Mind-Reading Course",
		Description: "Learn amazing and impressive mind-reading techniques. Perform professional-level mind-reading with confidence and style!",
		Price:       899,
		Category:    model.CategoryMentalism,
		Image:       "/images/mind-reading.jpg",
		Features:    []string{"Practice Exercises", "Step-by-Step Training", "Mental Illusions", "Performance Tips"},
	},
	{
		Title:       "Professional Mind-Reading Course",
		Description: "Step into Arya's world of modern mentalism, where hidden thoughts are unveiled with absolute clarity.",
		Price:       13999,
		Category:    model.CategoryMentalism,
		Image:       "/images/professional-mind-reading.jpg",
		Features:    []string{"Kit included For Free", "Predict Impossible Outcomes", "Mental Illusions", "Performance tips"},
	},
	{
		Title:       "Hypnosis Course",
		Description: "Welcome to the fascinating world of hypnosis! Create exceptional experiences through the power of words & Hypnosis.",
		Price:       899,
		Category:    model.CategoryHypnosis,
		Image:       "/images/hypnosis.jpg",
		Features:    []string{"Step-by-Step Guide", "Powerful Inductions", "Creating a Sense of Trapped Feelings", "Safety Protocols"},
	},
	{
		Title:       "Professional Hypnosis Course",
		Description: "Perfect for stage, street, or personal growth, this course empowers you with the skills needed to hypnotize.",
		Price:       4999,
		Category:    model.CategoryHypnosis,
		Image:       "/images/professional-hypnosis.jpg",
		Features:    []string{"Rapid & Instant Inductions", "Advanced Deepening Methods", "Hallucinations, Stuck states", "Safety Protocols"},
	},
	{
		Title:       "Magic Course",
		Description: "Unlock the secrets of MAGIC! Learn card and coin miracles and mind-blowing tricks with everyday objects.",
		Price:       699,
		Category:    model.CategoryMagic,
		Image:       "/images/magic.jpg",
		Features:    []string{"Step-by-Step Tutorials", "Card Tricks", "Amazing Effects", "Anytime-Anywhere"},
	},
	{
		Title:       "Professional Magic Course",
		Description: "Become a true master of magic, intended for those who aspire to go beyond tricks and enter the realm of real performance artistry.",
		Price:       9999,
		Category:    model.CategoryMagic,
		Image:       "/images/professional-magic.jpg",
		Features:    []string{"Advanced Tricks", "Complete Guide", "Step-by-Step training", "Kit included For Free"},
	},
	{
		Title:       "LIVE Online Classes",
		Description: "Become a Master Mentalist and Hypnotist in just 8 weeks! Learn powerful techniques in mind reading, influence, and stage hypnosis.",
		Price:       19999,
		Category:    model.CategoryLive,
		Image:       "/images/live-classes.jpg",
		Features:    []string{"Once a Week for 1 Hour", "Recording Available After the Class", "Practice Exercises", "36 Months Access"},
	},
	{
		Title:       "Webinar Workshop",
		Description: "Unleash the power of your mind and explore the captivating art of illusion in our exclusive workshop.",
		Price:       99,
		Category:    model.CategoryWorkshop,
		Image:       "/images/workshop.jpg",
		Features:    []string{"Feel The Hypnosis", "2-Day Workshop", "2-Hour Session", "Learn To Hypnotize in 4 Hours"},
	},
	{
		Title:       "Professional Bundle",
		Description: "A comprehensive certification program that provides everything you need to kickstart your career.",
		Price:       44999,
		Category:    model.CategoryBundle,
		Image:       "/images/bundle.jpg",
		Features:    []string{"All 7 courses included", "Professional certification", "Live mentoring sessions", "Performance guidance", "Lifetime community access"},
	},
}

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(
		&model.Course{},
		&model.User{},
		&model.Order{},
		&model.Settings{},
	); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	ctx := context.Background()
	courseRepo := repository.NewCourseRepository(gormDB)
	settingsRepo := repository.NewSettingsRepository(gormDB)

	created, skipped := 0, 0
	for _, item := range seedCourses {
		var existing model.Course
		err := gormDB.WithContext(ctx).Where("title = ?", item.Title).First(&existing).Error
		if err == nil {
			skipped++
			continue
		}
		if err != gorm.ErrRecordNotFound {
			log.Fatalf("Failed to check course %q: %v", item.Title, err)
		}

		course := &model.Course{
			Title:       item.Title,
			Description: item.Description,
			Price:       decimal.NewFromInt(item.Price),
			Category:    item.Category,
			Image:       item.Image,
			Features:    item.Features,
		}
		if err := courseRepo.Create(ctx, course); err != nil {
			log.Fatalf("Failed to create course %q: %v", item.Title, err)
		}
		created++
	}
	log.Printf("Courses seeded: %d created, %d already present", created, skipped)

	if _, err := settingsRepo.First(ctx); err == gorm.ErrRecordNotFound {
		if err := settingsRepo.Create(ctx, model.DefaultSettings()); err != nil {
			log.Fatalf("Failed to create default settings: %v", err)
		}
		log.Println("Default settings created")
	} else if err != nil {
		log.Fatalf("Failed to check settings: %v", err)
	} else {
		log.Println("Settings already present")
	}

	log.Println("Seed complete")
}

package main

import (
	"log"
	"os"
	"time"

	"admission-assistant-be/internal/model"
	"admission-assistant-be/pkg/database"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	color.Cyan("Seeding admission knowledge base...")
	seedKnowledgeDocuments(db)

	color.Cyan("Seeding media catalog...")
	seedMediaItems(db)

	color.Green("Done. Re-ingest documents through POST /api/knowledge/documents to generate embeddings.")
}

func seedKnowledgeDocuments(db *gorm.DB) {
	documents := []model.KnowledgeDocument{
		{
			Title: "Faculty of Engineering & Technology",
			Content: "The Faculty of Engineering & Technology at Future University in Egypt offers programs in " +
				"architectural engineering, civil engineering, electrical engineering, mechanical engineering and " +
				"computer engineering. Admission requires a Thanaweya Amma score in the engineering section or an " +
				"equivalent certificate. Laboratories include structural testing, electronics, and CAD facilities.",
		},
		{
			Title: "Faculty of Oral & Dental Medicine",
			Content: "The Faculty of Oral & Dental Medicine provides a five-year program followed by a mandatory " +
				"internship year. The faculty operates its own dental teaching hospital on campus where students " +
				"treat patients under supervision starting from the fourth year.",
		},
		{
			Title: "Faculty of Pharmacy",
			Content: "The Faculty of Pharmacy offers the PharmD program over five years. Graduates are prepared " +
				"for careers in community pharmacy, hospital pharmacy, and the pharmaceutical industry. The faculty " +
				"maintains partnerships with leading pharmaceutical companies in Egypt for training.",
		},
		{
			Title: "Faculty of Economics & Political Science",
			Content: "The Faculty of Economics & Political Science offers majors in economics, political science " +
				"and international relations. Courses are taught in English and the faculty hosts a Model United " +
				"Nations program every year.",
		},
		{
			Title: "Faculty of Commerce & Business Administration",
			Content: "The Faculty of Commerce & Business Administration offers majors in accounting, marketing, " +
				"finance and business information systems. Double-degree options are available with international " +
				"partner universities.",
		},
		{
			Title: "Faculty of Computer Science & Information Technology",
			Content: "The Faculty of Computer Science & Information Technology offers programs in computer science, " +
				"software engineering, artificial intelligence and information systems. Students complete a graduation " +
				"project with industry mentorship in the final year.",
		},
		{
			Title: "Admission Requirements and Tuition",
			Content: "Admission to Future University in Egypt requires a recognized secondary school certificate. " +
				"Applications open in July each year. Tuition varies by faculty; scholarships of up to 50% are " +
				"available for high-achieving students. The admission office is open Sunday through Thursday from " +
				"9am to 4pm on the main campus in Fifth Settlement, New Cairo.",
		},
	}

	for _, doc := range documents {
		var count int64
		db.Model(&model.KnowledgeDocument{}).Where("title = ?", doc.Title).Count(&count)
		if count > 0 {
			color.Yellow("  skip: %s (exists)", doc.Title)
			continue
		}
		doc.Id = uuid.New()
		doc.Status = "pending"
		doc.CreatedAt = time.Now()
		doc.UpdatedAt = time.Now()
		if err := db.Create(&doc).Error; err != nil {
			color.Red("  fail: %s (%v)", doc.Title, err)
			continue
		}
		color.Green("  ok:   %s", doc.Title)
	}
}

func seedMediaItems(db *gorm.DB) {
	items := []model.MediaItem{
		{
			MediaType:   "image",
			URL:         "https://cdn.fue.edu.eg/media/campus-main-gate.jpg",
			Title:       "Main campus gate",
			Description: "The main entrance of Future University in Egypt in Fifth Settlement, New Cairo",
			Tags:        "campus,gate,entrance,new cairo",
		},
		{
			MediaType:   "image",
			URL:         "https://cdn.fue.edu.eg/media/engineering-labs.jpg",
			Title:       "Engineering laboratories",
			Description: "Students working in the structural testing laboratory of the Faculty of Engineering",
			Tags:        "engineering,laboratory,students",
		},
		{
			MediaType:   "image",
			URL:         "https://cdn.fue.edu.eg/media/dental-hospital.jpg",
			Title:       "Dental teaching hospital",
			Description: "The on-campus dental teaching hospital of the Faculty of Oral & Dental Medicine",
			Tags:        "dentistry,hospital,clinic",
		},
		{
			MediaType:   "image",
			URL:         "https://cdn.fue.edu.eg/media/library.jpg",
			Title:       "Central library",
			Description: "The central library reading hall with study spaces for students",
			Tags:        "library,study,books",
		},
		{
			MediaType:   "video",
			URL:         "https://cdn.fue.edu.eg/media/campus-tour.mp4",
			Title:       "Campus tour",
			Description: "A guided video tour of the Future University in Egypt campus and facilities",
			Tags:        "campus,tour,facilities",
		},
		{
			MediaType:   "video",
			URL:         "https://cdn.fue.edu.eg/media/pharmacy-program.mp4",
			Title:       "Pharmacy program overview",
			Description: "An overview of the PharmD program at the Faculty of Pharmacy",
			Tags:        "pharmacy,pharmd,program",
		},
	}

	for _, item := range items {
		var count int64
		db.Model(&model.MediaItem{}).Where("url = ?", item.URL).Count(&count)
		if count > 0 {
			color.Yellow("  skip: %s (exists)", item.Title)
			continue
		}
		item.Id = uuid.New()
		item.CreatedAt = time.Now()
		if err := db.Create(&item).Error; err != nil {
			color.Red("  fail: %s (%v)", item.Title, err)
			continue
		}
		color.Green("  ok:   %s", item.Title)
	}
}

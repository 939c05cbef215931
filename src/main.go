package main

import (
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"formrunner/src/database"
	"formrunner/src/jobs"
	"formrunner/src/routes"
	"formrunner/src/seeder"
	"formrunner/src/services/forms"
	"formrunner/src/services/mailer"
	"formrunner/src/services/pipeline"
	"formrunner/src/services/submissions"
	"formrunner/src/settings"
)

func main() {
	if err := database.ConnectMongoDB(); err != nil {
		log.Fatal("❌ MongoDB connection failed:", err)
	}
	database.InitRedis()
	database.InitAsynq()

	store := settings.NewMongoStore(database.SettingCollection)
	seeder.SeedSettings(store)

	formService := forms.NewService(database.FormCollection, store)
	submissionService := submissions.NewService(database.SubmissionCollection)

	var mail mailer.Mailer
	if sender, err := mailer.NewSMTPSenderFromEnv(); err != nil {
		log.Println("⚠️ SMTP not configured:", err)
	} else {
		mail = mailer.New(sender, database.AsynqClient)
	}

	uploadDir := os.Getenv("UPLOAD_DIR")
	if uploadDir == "" {
		uploadDir = "./uploads"
	}

	p := &pipeline.Pipeline{
		Forms:       formService,
		Submissions: submissionService,
		Settings:    store,
		Hooks:       registerHooks(),
		Mail:        mail,
		Recaptcha:   pipeline.NewGoogleVerifierFromEnv(),
		Files:       &pipeline.LocalFileStore{Dir: uploadDir},
		Cache:       newSnapshotCache(),
		BaseURL:     os.Getenv("BACKEND_URL"),
	}

	jobs.StartWorker()

	app := fiber.New()
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	routes.InitRoutes(app, p, submissionService)

	port := os.Getenv("APP_URI")
	if port == "" {
		port = ":8888"
	}
	log.Fatal(app.Listen(port))
}

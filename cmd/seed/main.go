package main

import (
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"github.com/Eli45-23/aichatflows-app-sub001/internal/database"
	"github.com/Eli45-23/aichatflows-app-sub001/internal/domain"
	"github.com/Eli45-23/aichatflows-app-sub001/internal/pkg/logging"
)

func main() {
	_ = godotenv.Load()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "aichatflows.db"
	}

	db, err := database.Connect(dsn, logging.NewLogger("info"))
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := database.Migrate(db); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	// Cleanup old data (safe order for foreign keys).
	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM notifications")
	db.Exec("DELETE FROM form_submissions")
	db.Exec("DELETE FROM business_visits")
	db.Exec("DELETE FROM payments")
	db.Exec("DELETE FROM goals")
	db.Exec("DELETE FROM clients")
	db.Exec("DELETE FROM users")

	log.Println("Creating operator account...")
	hash, _ := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	admin := domain.User{Email: "admin@aichatflows.app", PasswordHash: string(hash)}
	if err := db.Create(&admin).Error; err != nil {
		log.Fatal("seed admin failed:", err)
	}

	log.Println("Creating clients...")
	names := []string{
		"Bloom Florals", "Hudson Barbershop", "Nora's Bakery", "Peak Fitness",
		"Casa Verde Cafe", "Lakeside Dental", "Urban Threads", "Moto Garage",
	}
	plans := []domain.Plan{domain.PlanStarter, domain.PlanPro}
	statuses := []domain.ClientStatus{
		domain.ClientActive, domain.ClientActive, domain.ClientActive,
		domain.ClientInProgress, domain.ClientPaused,
	}

	clients := make([]domain.Client, 0, len(names))
	for i, name := range names {
		c := domain.Client{
			Name:          name,
			Email:         fmt.Sprintf("owner%d@example.com", i+1),
			Phone:         fmt.Sprintf("+1 555 01%02d", i+1),
			Status:        statuses[rand.Intn(len(statuses))],
			Plan:          plans[rand.Intn(len(plans))],
			PaymentStatus: domain.PaymentUnpaid,
			InPerson:      i%3 == 0,
		}
		if err := db.Create(&c).Error; err != nil {
			log.Fatal("seed client failed:", err)
		}
		// Spread creation dates over the last month so the dashboard windows
		// have something to count.
		created := time.Now().AddDate(0, 0, -rand.Intn(28))
		db.Model(&c).Update("created_at", created)
		c.CreatedAt = created
		clients = append(clients, c)
	}

	log.Println("Creating payments...")
	statusesP := []domain.PaymentStatus{
		domain.PaymentConfirmed, domain.PaymentConfirmed, domain.PaymentConfirmed,
		domain.PaymentPending, domain.PaymentFailed,
	}
	for i := 0; i < 20; i++ {
		client := clients[rand.Intn(len(clients))]
		p := domain.Payment{
			ClientID:    &client.ID,
			Amount:      float64(50 + rand.Intn(450)),
			Status:      statusesP[rand.Intn(len(statusesP))],
			PaymentDate: time.Now().AddDate(0, 0, -rand.Intn(28)),
		}
		if err := db.Create(&p).Error; err != nil {
			log.Fatal("seed payment failed:", err)
		}
		if p.Status == domain.PaymentConfirmed {
			db.Model(&domain.Client{}).Where("id = ?", client.ID).Update("payment_status", domain.PaymentPaid)
		}
	}

	log.Println("Creating goals...")
	goalSeeds := []domain.Goal{
		{Title: "Sign 3 new clients", Frequency: domain.GoalWeekly, Target: 3},
		{Title: "One new client a day", Frequency: domain.GoalDaily, Target: 1},
		{Title: "Grow the roster by 10", Frequency: domain.GoalMonthly, Target: 10},
	}
	for i := range goalSeeds {
		if err := db.Create(&goalSeeds[i]).Error; err != nil {
			log.Fatal("seed goal failed:", err)
		}
	}

	log.Println("Creating visits...")
	places := []string{"Main St storefront", "Riverside market", "40.71280, -74.00600"}
	for i := 0; i < 6; i++ {
		client := clients[rand.Intn(len(clients))]
		loc := places[rand.Intn(len(places))]
		v := domain.BusinessVisit{ClientID: &client.ID, Location: &loc}
		if err := db.Create(&v).Error; err != nil {
			log.Fatal("seed visit failed:", err)
		}
		db.Model(&v).Update("created_at", time.Now().AddDate(0, 0, -rand.Intn(10)))
	}

	log.Println("Creating form submissions...")
	for i := 0; i < 3; i++ {
		client := clients[i]
		s := domain.FormSubmission{
			ClientID:    client.ID,
			Email:       client.Email,
			Status:      "received",
			SubmittedAt: time.Now().AddDate(0, 0, -rand.Intn(7)),
		}
		if err := db.Create(&s).Error; err != nil {
			log.Fatal("seed submission failed:", err)
		}
	}

	log.Println("Seed complete.")
	log.Println("Sign in with admin@aichatflows.app / admin123")
}

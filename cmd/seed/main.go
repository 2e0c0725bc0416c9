// seed registers a set of demo member accounts against the local backend.
// Run: go run ./cmd/seed
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"memberportal/internal/domain"
	"memberportal/internal/gateway"
	"memberportal/internal/infrastructure/cms"
)

const seedPassword = "changeme1"

var members = []gateway.CreateAccountInput{
	{Email: "ada@members.local", Password: seedPassword, FirstName: "Ada", LastName: "Lovelace"},
	{Email: "alan@members.local", Password: seedPassword, FirstName: "Alan", LastName: "Turing"},
	{Email: "grace@members.local", Password: seedPassword, FirstName: "Grace", LastName: "Hopper"},
	{Email: "edsger@members.local", Password: seedPassword, FirstName: "Edsger", LastName: "Dijkstra"},
	{Email: "barbara@members.local", Password: seedPassword, FirstName: "Barbara", LastName: "Liskov"},
}

func main() {
	ctx := context.Background()

	backendURL := os.Getenv("BACKEND_URL")
	if backendURL == "" {
		log.Fatal("BACKEND_URL is not set")
	}

	client := cms.NewClient(backendURL, 10*time.Second)

	// Re-runs are fine: the backend rejects duplicates and we move on.
	var created, skipped int
	for _, m := range members {
		err := client.CreateAccount(ctx, m)
		var rej *domain.RejectionError
		switch {
		case err == nil:
			created++
		case errors.As(err, &rej):
			skipped++
		default:
			log.Fatalf("create %s: %v", m.Email, err)
		}
	}

	fmt.Println("Seed complete")
	fmt.Println()
	fmt.Printf("  Accounts created: %d  (skipped %d already existing)\n", created, skipped)
	fmt.Println()
	fmt.Println("How to test:")
	fmt.Println()
	fmt.Printf("  Start the portal (BACKEND_URL=%s go run ./cmd/server), then sign in at\n", backendURL)
	fmt.Println("  http://localhost:8080/login with any of:")
	fmt.Println()
	for _, m := range members {
		fmt.Printf("    %-24s %s\n", m.Email, seedPassword)
	}
	fmt.Println()
	fmt.Println("  The home page lists every member the backend knows about.")
}

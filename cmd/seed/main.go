// Package main implements a standalone seed script that populates a
// running bokrecension instance with realistic test data. Users are
// created through the public register endpoint so password hashing and
// token issuance follow the normal code path; reviews, likes, and
// reading statuses are created with the issued tokens.
package main

import (
	"context"
	"log"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"github.com/amer1301/bokrecension/client"
	"github.com/amer1301/bokrecension/internal/domain"
	"github.com/amer1301/bokrecension/pkg/httpclient"
)

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// --------------------------------------------------------------------------
// Seed data definitions
// --------------------------------------------------------------------------

type userDef struct {
	name     string
	email    string
	password string
	api      *client.Client // authenticated after register
	id       string
}

var bookIDs = []string{
	"zyTCAlFPjgYC", // The Google Story
	"yl4dILkcqm4C", // The Art of Computer Programming
	"UV9jAQAAQBAJ",
	"F9hZDwAAQBAJ",
	"wrOQLV6xB-wC", // Harry Potter
	"PXa2bby0oQ0C",
}

var reviewTexts = []string{
	"Could not put it down, finished it in two sittings.",
	"The pacing drags in the middle but the ending redeems it.",
	"A sprawling, melancholy masterpiece.",
	"Competent but forgettable. I expected more given the hype.",
	"The prose is gorgeous even when the plot meanders.",
	"Re-read this after ten years and it holds up remarkably well.",
	"Interesting premise, flat characters.",
	"One of those rare books that changes how you see the world.",
}

// --------------------------------------------------------------------------
// main
// --------------------------------------------------------------------------

func main() {
	log.SetFlags(log.Ltime | log.Lmsgprefix)
	log.SetPrefix("[seed] ")

	apiURL := getEnv("API_URL", "http://localhost:8080")

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	api := client.New(httpclient.New(httpclient.DefaultConfig()), apiURL, logger)

	// ---------------------------------------------------------------
	// 1. Register users
	// ---------------------------------------------------------------
	users := []userDef{
		{name: "Astrid Lind", email: "astrid@example.com", password: "seed-password-1"},
		{name: "Bo Nilsson", email: "bo@example.com", password: "seed-password-2"},
		{name: "Clara Öberg", email: "clara@example.com", password: "seed-password-3"},
		{name: "David Ek", email: "david@example.com", password: "seed-password-4"},
		{name: "Elin Åkesson", email: "elin@example.com", password: "seed-password-5"},
	}

	log.Println("Registering users...")
	for i := range users {
		u := &users[i]
		session, err := api.Register(ctx, domain.RegisterInput{
			Name:     u.name,
			Email:    u.email,
			Password: u.password,
		})
		if err != nil {
			// Probably already seeded; log in instead.
			session, err = api.Login(ctx, domain.LoginInput{
				Email:    u.email,
				Password: u.password,
			})
			if err != nil {
				log.Fatalf("register/login %s: %v", u.email, err)
			}
		}
		u.id = session.User.ID
		u.api = api.WithToken(session.Tokens.AccessToken)
		log.Printf("  User: %s (id=%s)", u.name, u.id)
	}

	// ---------------------------------------------------------------
	// 2. Post reviews
	// ---------------------------------------------------------------
	log.Println("Posting reviews...")
	var reviews []*domain.Review
	for _, bookID := range bookIDs {
		// Two or three reviews per book, by distinct users.
		n := 2 + rng.Intn(2)
		perm := rng.Perm(len(users))
		for i := 0; i < n; i++ {
			u := users[perm[i]]
			review, err := u.api.CreateReview(ctx, domain.CreateReviewInput{
				BookID: bookID,
				Rating: 1 + rng.Intn(5),
				Text:   reviewTexts[rng.Intn(len(reviewTexts))],
			})
			if err != nil {
				log.Printf("  WARNING: review for %s by %s: %v", bookID, u.email, err)
				continue
			}
			reviews = append(reviews, review)
		}
		log.Printf("  Book %s: %d reviews", bookID, n)
	}

	// ---------------------------------------------------------------
	// 3. Like a random subset of reviews
	// ---------------------------------------------------------------
	log.Println("Liking reviews...")
	likes := 0
	for _, review := range reviews {
		for _, u := range users {
			if rng.Float64() > 0.4 {
				continue
			}
			if _, err := u.api.LikeReview(ctx, review.ID); err != nil {
				// Conflicts are expected when a user already liked their pick.
				continue
			}
			likes++
		}
	}
	log.Printf("  %d likes recorded", likes)

	// ---------------------------------------------------------------
	// 4. Set reading statuses
	// ---------------------------------------------------------------
	log.Println("Setting reading statuses...")
	statuses := []string{domain.StatusWantToRead, domain.StatusReading, domain.StatusFinished}
	formats := []string{"hardcover", "paperback", "ebook", "audiobook"}
	set := 0
	for _, u := range users {
		for _, bookID := range bookIDs {
			if rng.Float64() > 0.5 {
				continue
			}
			input := domain.SetReadingStatusInput{
				BookID: bookID,
				Status: statuses[rng.Intn(len(statuses))],
				Format: formats[rng.Intn(len(formats))],
			}
			if input.Status == domain.StatusReading {
				input.PagesRead = 10 + rng.Intn(300)
			}
			if _, err := u.api.SetReadingStatus(ctx, input); err != nil {
				log.Printf("  WARNING: status for %s by %s: %v", bookID, u.email, err)
				continue
			}
			set++
		}
	}
	log.Printf("  %d reading statuses set", set)

	log.Println("Seeding complete.")
}

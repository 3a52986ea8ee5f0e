package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"

	"github.com/abisalde/povertyline-client/internal/api"
	"github.com/abisalde/povertyline-client/internal/configs"
	customErrors "github.com/abisalde/povertyline-client/internal/errors"
	"github.com/abisalde/povertyline-client/internal/model"
	"github.com/abisalde/povertyline-client/internal/storage"
	"github.com/abisalde/povertyline-client/pkg/session"
)

type MockUser struct {
	Name    string
	Email   string
	Role    model.Role
	Phone   string
	Address string
	City    string
	State   string
	ZipCode string
	Needs   []string
}

var mockUsers = []MockUser{
	{
		Name: "John Doe", Email: "john.doe@example.com", Role: model.RoleUser,
		Phone: "+1234567890", Address: "123 Main St", City: "New York", State: "NY", ZipCode: "10001",
		Needs: []string{"food", "housing"},
	},
	{
		Name: "Jane Smith", Email: "jane.smith@example.com", Role: model.RoleUser,
		Phone: "+1234567891", Address: "456 Oak Ave", City: "Los Angeles", State: "CA", ZipCode: "90001",
		Needs: []string{"healthcare"},
	},
	{
		Name: "Bob Johnson", Email: "bob.johnson@example.com", Role: model.RoleProvider,
		Phone: "+1234567893", Address: "321 Elm St", City: "Chicago", State: "IL", ZipCode: "60601",
	},
	{
		Name: "Alice Williams", Email: "alice.williams@example.com", Role: model.RoleProvider,
		Phone: "+1234567894", Address: "654 Maple Dr", City: "Houston", State: "TX", ZipCode: "77001",
	},
	{
		Name: "Charlie Brown", Email: "charlie.brown@example.com", Role: model.RoleUser,
		City: "Phoenix", State: "AZ",
	},
}

var providerResources = []model.ResourceInput{
	{
		Title: "Neighborhood Food Pantry", Category: model.CategoryFood,
		Description: "Weekly groceries for families in need", Location: "Chicago, IL",
		Requirements: []string{"photo ID"},
	},
	{
		Title: "Evening Job Readiness Class", Category: model.CategoryEmployment,
		Description: "Resume workshops and interview practice", Location: "Houston, TX",
	},
}

const defaultPassword = "Password123"

func main() {
	ctx := context.Background()

	cfg, err := configs.Load(os.Getenv("APP_ENV"))
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	log.Println("🌱 Starting to seed users...")

	successCount := 0
	for _, mockUser := range mockUsers {
		if err := seedUser(ctx, cfg, mockUser); err != nil {
			log.Printf("❌ Failed to seed %s: %v", mockUser.Email, err)
			continue
		}
		successCount++
		log.Printf("✅ Seeded %s (%s)", mockUser.Email, mockUser.Role)
	}

	log.Printf("🎉 Seeded %d/%d users against %s", successCount, len(mockUsers), cfg.API.BaseURL)
	log.Printf("🔑 Default password for all users: %s", defaultPassword)
}

// seedUser registers one account with its own throwaway session, then
// fills in the profile and, for providers, publishes sample resources.
func seedUser(ctx context.Context, cfg *configs.Config, u MockUser) error {
	sessions := session.NewSessionManager(storage.NewMemoryStorage())
	client, err := api.NewClient(cfg.API.BaseURL, sessions, api.WithTimeout(cfg.API.Timeout))
	if err != nil {
		return err
	}
	auth := api.NewAuthAPI(client, sessions)

	_, err = auth.Register(ctx, model.RegisterInput{Name: u.Name, Email: u.Email, Password: defaultPassword, Role: u.Role})
	var apiErr *customErrors.APIError
	if errors.As(err, &apiErr) && apiErr.Status == http.StatusConflict {
		log.Printf("⚠️  %s already exists, signing in instead", u.Email)
		_, err = auth.Login(ctx, model.LoginInput{Email: u.Email, Password: defaultPassword})
	}
	if err != nil {
		return err
	}

	str := func(s string) *string {
		if s == "" {
			return nil
		}
		return &s
	}
	_, err = api.NewProfileAPI(client, sessions).UpdateProfile(ctx, model.ProfileUpdate{
		Phone:   str(u.Phone),
		Address: str(u.Address),
		City:    str(u.City),
		State:   str(u.State),
		ZipCode: str(u.ZipCode),
		Needs:   u.Needs,
	})
	if err != nil {
		return err
	}

	if u.Role != model.RoleProvider {
		return nil
	}
	resources := api.NewResourceAPI(client)
	for _, input := range providerResources {
		if _, err := resources.Create(ctx, input); err != nil {
			return err
		}
	}
	return nil
}

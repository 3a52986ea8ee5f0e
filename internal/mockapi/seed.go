package mockapi

import (
	"fmt"
	"log"

	"github.com/abisalde/povertyline-client/internal/model"
	"github.com/abisalde/povertyline-client/pkg/password"
	"github.com/brianvoe/gofakeit/v6"
)

// DemoPassword is the password of every seeded account.
const DemoPassword = "Password123"

type DemoAccount struct {
	Name  string
	Email string
	Role  model.Role
}

var DemoAccounts = []DemoAccount{
	{Name: "Admin User", Email: "admin@povertyline.org", Role: model.RoleAdmin},
	{Name: "Provider User", Email: "provider@povertyline.org", Role: model.RoleProvider},
	{Name: "Regular User", Email: "user@povertyline.org", Role: model.RoleUser},
}

// Seed creates the demo accounts and n resources spread over the
// categories and review states. The same seed yields the same data.
func Seed(repo *Repository, n int, seed int64) error {
	hash, err := password.HashPassword(DemoPassword)
	if err != nil {
		return fmt.Errorf("hash demo password: %w", err)
	}

	var provider model.UserSummary
	for _, acct := range DemoAccounts {
		user, err := repo.CreateUser(acct.Name, acct.Email, hash, acct.Role)
		if err != nil {
			return fmt.Errorf("seed %s: %w", acct.Email, err)
		}
		if acct.Role == model.RoleProvider {
			provider = user
		}
	}

	faker := gofakeit.New(seed)
	statuses := []model.ResourceStatus{
		model.ResourceStatusApproved,
		model.ResourceStatusApproved,
		model.ResourceStatusPending,
		model.ResourceStatusRejected,
	}

	for i := 0; i < n; i++ {
		category := model.Categories[faker.Number(0, len(model.Categories)-1)]
		status := statuses[i%len(statuses)]
		city := faker.City()

		res := model.Resource{
			Title:        fmt.Sprintf("%s %s", faker.Company(), categoryNoun(category)),
			Description:  faker.Sentence(12),
			Category:     category,
			Location:     fmt.Sprintf("%s, %s", city, faker.StateAbr()),
			Address:      faker.Street(),
			City:         city,
			State:        faker.State(),
			ZipCode:      faker.Zip(),
			ContactName:  faker.Name(),
			ContactPhone: faker.Phone(),
			ContactEmail: faker.Email(),
			Requirements: model.NewStringList(faker.Word(), faker.Word()),
			ProviderID:   provider.ID,
			ProviderName: provider.Name,
			Status:       status,
		}
		if status == model.ResourceStatusRejected {
			res.RejectionReason = "Missing contact details"
		}
		repo.CreateResource(res)
	}

	log.Printf("🌱 Seeded %d demo accounts and %d resources", len(DemoAccounts), n)
	return nil
}

func categoryNoun(c model.Category) string {
	switch c {
	case model.CategoryFood:
		return "Food Pantry"
	case model.CategoryHousing:
		return "Shelter"
	case model.CategoryHealthcare:
		return "Clinic"
	case model.CategoryEmployment:
		return "Job Center"
	case model.CategoryEducation:
		return "Learning Hub"
	case model.CategoryTransportation:
		return "Ride Program"
	case model.CategoryFinancial:
		return "Assistance Fund"
	case model.CategoryLegal:
		return "Legal Aid"
	}
	return "Community Service"
}

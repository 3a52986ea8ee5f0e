package mockapi

import (
	"testing"
	"time"

	"github.com/abisalde/povertyline-client/internal/model"
	"github.com/abisalde/povertyline-client/pkg/password"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestCompletion(t *testing.T) {
	tests := []struct {
		name     string
		profile  model.Profile
		want     int
		complete bool
	}{
		{"empty", model.Profile{}, 0, false},
		{"required only", model.Profile{Phone: "1", Address: "a", City: "c", State: "s", ZipCode: "z"}, 70, false},
		{"required and bio", model.Profile{Phone: "1", Address: "a", City: "c", State: "s", ZipCode: "z", Bio: "b"}, 85, true},
		{"everything", model.Profile{Phone: "1", Address: "a", City: "c", State: "s", ZipCode: "z", Bio: "b", Needs: model.NewStringList("food")}, 100, true},
		{"blank strings do not count", model.Profile{Phone: "  ", City: "c"}, 14, false},
		{"optional only", model.Profile{Bio: "b", Needs: model.NewStringList("food")}, 30, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, complete := Completion(&tt.profile)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.complete, complete)
		})
	}
}

func TestCreateUserNormalizesEmail(t *testing.T) {
	repo := NewRepository()

	user, err := repo.CreateUser("Ada", "  Ada@Example.COM ", "hash", model.RoleUser)
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", user.Email)
	assert.Equal(t, model.UserStatusActive, user.Status)

	_, err = repo.CreateUser("Ada Again", "ada@example.com", "hash", model.RoleUser)
	assert.ErrorIs(t, err, ErrEmailTaken)

	p, err := repo.GetProfile(user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.ID, p.UserID)
	assert.Zero(t, p.CompletionPercentage)
}

func TestResetTokenExpiry(t *testing.T) {
	repo := NewRepository()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	repo.now = func() time.Time { return now }

	_, err := repo.CreateUser("Ada", "ada@example.com", "hash", model.RoleUser)
	require.NoError(t, err)

	_, ok := repo.IssueResetToken("missing@example.com")
	assert.False(t, ok)

	token, ok := repo.IssueResetToken("ada@example.com")
	require.True(t, ok)

	now = now.Add(25 * time.Hour)
	_, err = repo.ConsumeResetToken(token)
	assert.ErrorIs(t, err, ErrResetToken)
}

func TestListResourcesReturnsCopies(t *testing.T) {
	repo := NewRepository()
	created := repo.CreateResource(model.Resource{Title: "Shelter", Requirements: model.NewStringList("ID")})

	list := repo.ListResources(func(model.Resource) bool { return true })
	require.Len(t, list, 1)
	list[0].Title = "changed"
	list[0].Requirements[0] = "changed"

	got, err := repo.GetResource(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Shelter", got.Title)
	assert.Equal(t, "ID", got.Requirements[0])
}

func TestSeed(t *testing.T) {
	password.Cost = bcrypt.MinCost
	t.Cleanup(func() { password.Cost = bcrypt.DefaultCost })

	first, second := NewRepository(), NewRepository()
	require.NoError(t, Seed(first, 12, 7))
	require.NoError(t, Seed(second, 12, 7))

	assert.Len(t, first.ListUsers(model.UserFilters{}), len(DemoAccounts))

	all := func(model.Resource) bool { return true }
	a, b := first.ListResources(all), second.ListResources(all)
	require.Len(t, a, 12)
	for i := range a {
		assert.Equal(t, a[i].Title, b[i].Title)
		assert.True(t, a[i].Category.IsValid())
		if a[i].Status == model.ResourceStatusRejected {
			assert.NotEmpty(t, a[i].RejectionReason)
		}
	}

	for _, acct := range DemoAccounts {
		user, hash, err := first.Credentials(acct.Email)
		require.NoError(t, err)
		assert.Equal(t, acct.Role, user.Role)
		assert.NoError(t, password.CheckPasswordHash(DemoPassword, hash))
	}

	assert.Error(t, Seed(first, 1, 7), "demo accounts already exist")
}

package model

import (
	"encoding/json"
	"strings"
)

type ResourceStatus string

const (
	ResourceStatusPending  ResourceStatus = "pending"
	ResourceStatusApproved ResourceStatus = "approved"
	ResourceStatusRejected ResourceStatus = "rejected"
)

func (s ResourceStatus) IsValid() bool {
	switch s {
	case ResourceStatusPending, ResourceStatusApproved, ResourceStatusRejected:
		return true
	}
	return false
}

// CanTransition reports whether a review may move a resource from s to next.
func (s ResourceStatus) CanTransition(next ResourceStatus) bool {
	switch next {
	case ResourceStatusApproved:
		return s == ResourceStatusPending || s == ResourceStatusRejected
	case ResourceStatusRejected:
		return s == ResourceStatusPending || s == ResourceStatusApproved
	}
	return false
}

type Category string

const (
	CategoryFood           Category = "food"
	CategoryHousing        Category = "housing"
	CategoryHealthcare     Category = "healthcare"
	CategoryEmployment     Category = "employment"
	CategoryEducation      Category = "education"
	CategoryTransportation Category = "transportation"
	CategoryFinancial      Category = "financial"
	CategoryLegal          Category = "legal"
	CategoryOther          Category = "other"
)

var Categories = []Category{
	CategoryFood, CategoryHousing, CategoryHealthcare, CategoryEmployment, CategoryEducation,
	CategoryTransportation, CategoryFinancial, CategoryLegal, CategoryOther,
}

func (c Category) IsValid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

type Resource struct {
	ID              int64          `json:"id"`
	Title           string         `json:"title"`
	Description     string         `json:"description"`
	Category        Category       `json:"category"`
	Location        string         `json:"location"`
	Address         string         `json:"address,omitempty"`
	City            string         `json:"city,omitempty"`
	State           string         `json:"state,omitempty"`
	ZipCode         string         `json:"zip_code,omitempty"`
	ContactName     string         `json:"contact_name,omitempty"`
	ContactPhone    string         `json:"contact_phone,omitempty"`
	ContactEmail    string         `json:"contact_email,omitempty"`
	StartDate       string         `json:"start_date,omitempty"`
	EndDate         string         `json:"end_date,omitempty"`
	Requirements    StringList     `json:"requirements"`
	AdditionalInfo  string         `json:"additional_info,omitempty"`
	ProviderID      int64          `json:"provider_id"`
	ProviderName    string         `json:"provider_name,omitempty"`
	Status          ResourceStatus `json:"status"`
	RejectionReason string         `json:"rejection_reason,omitempty"`
	ApprovedAt      string         `json:"approved_at,omitempty"`
	ApprovedBy      int64          `json:"approved_by,omitempty"`
	CreatedAt       string         `json:"created_at,omitempty"`
	UpdatedAt       string         `json:"updated_at,omitempty"`
}

// UnmarshalJSON accepts the older "name" and "type" spellings of title and
// category.
func (r *Resource) UnmarshalJSON(data []byte) error {
	type plain Resource
	aux := struct {
		*plain
		Name string `json:"name"`
		Type string `json:"type"`
	}{plain: (*plain)(r)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if r.Title == "" {
		r.Title = aux.Name
	}
	if r.Category == "" {
		r.Category = Category(aux.Type)
	}
	return nil
}

func (r Resource) Clone() Resource {
	r.Requirements = r.Requirements.Clone()
	return r
}

// Matches reports whether term occurs in the title, description or location
// fields, ignoring case.
func (r Resource) Matches(term string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return true
	}
	for _, field := range []string{r.Title, r.Description, r.Location, r.City} {
		if strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}
	return false
}

// ResourceInput holds the descriptive fields a provider may set. Status only
// changes through a review.
type ResourceInput struct {
	Title          string   `json:"title,omitempty"`
	Description    string   `json:"description,omitempty"`
	Category       Category `json:"category,omitempty"`
	Location       string   `json:"location,omitempty"`
	Address        string   `json:"address,omitempty"`
	City           string   `json:"city,omitempty"`
	State          string   `json:"state,omitempty"`
	ZipCode        string   `json:"zip_code,omitempty"`
	ContactName    string   `json:"contact_name,omitempty"`
	ContactPhone   string   `json:"contact_phone,omitempty"`
	ContactEmail   string   `json:"contact_email,omitempty"`
	StartDate      string   `json:"start_date,omitempty"`
	EndDate        string   `json:"end_date,omitempty"`
	Requirements   []string `json:"requirements,omitempty"`
	AdditionalInfo string   `json:"additional_info,omitempty"`
}

type ApprovalInput struct {
	Status          ResourceStatus `json:"status"`
	RejectionReason string         `json:"rejection_reason"`
}

type ResourceFilters struct {
	Category   Category
	Location   string
	Search     string
	Status     ResourceStatus
	ProviderID int64
}

type ResourceList struct {
	Resources []Resource `json:"resources"`
	Count     int        `json:"count"`
}

type ResourceEnvelope struct {
	Message  string    `json:"message,omitempty"`
	Resource *Resource `json:"resource"`
}

package model

type Profile struct {
	ID                   int64      `json:"id,omitempty"`
	UserID               int64      `json:"user_id"`
	Phone                string     `json:"phone"`
	Bio                  string     `json:"bio"`
	Address              string     `json:"address"`
	City                 string     `json:"city"`
	State                string     `json:"state"`
	ZipCode              string     `json:"zip_code"`
	Needs                StringList `json:"needs"`
	CompletionPercentage int        `json:"completion_percentage"`
	IsComplete           bool       `json:"is_complete"`
	CreatedAt            string     `json:"created_at,omitempty"`
	UpdatedAt            string     `json:"updated_at,omitempty"`
}

func (p *Profile) Clone() *Profile {
	if p == nil {
		return nil
	}
	c := *p
	c.Needs = p.Needs.Clone()
	return &c
}

// ProfileUpdate is the editable part of a profile. A view keeps one as its
// draft and throws it away once the server answers with the saved profile.
type ProfileUpdate struct {
	Phone   *string  `json:"phone,omitempty"`
	Bio     *string  `json:"bio,omitempty"`
	Address *string  `json:"address,omitempty"`
	City    *string  `json:"city,omitempty"`
	State   *string  `json:"state,omitempty"`
	ZipCode *string  `json:"zip_code,omitempty"`
	Needs   []string `json:"needs,omitempty"`
}

// DraftFrom seeds an edit draft from the cached profile.
func DraftFrom(p *Profile) ProfileUpdate {
	if p == nil {
		return ProfileUpdate{}
	}
	str := func(s string) *string { return &s }
	return ProfileUpdate{
		Phone:   str(p.Phone),
		Bio:     str(p.Bio),
		Address: str(p.Address),
		City:    str(p.City),
		State:   str(p.State),
		ZipCode: str(p.ZipCode),
		Needs:   []string(p.Needs.Clone()),
	}
}

type ProfileFilters struct {
	CompletionStatus string
}

type ProfileEnvelope struct {
	Message string   `json:"message,omitempty"`
	Profile *Profile `json:"profile"`
}

type ProfileList struct {
	Profiles []Profile `json:"profiles"`
	Count    int       `json:"count"`
}

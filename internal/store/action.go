package store

import "github.com/abisalde/povertyline-client/internal/model"

// Phase is the lifecycle step an action reports. Synchronous actions use
// PhaseNone.
type Phase int

const (
	PhaseNone Phase = iota
	PhasePending
	PhaseFulfilled
	PhaseRejected
)

func (p Phase) String() string {
	switch p {
	case PhasePending:
		return "pending"
	case PhaseFulfilled:
		return "fulfilled"
	case PhaseRejected:
		return "rejected"
	}
	return "sync"
}

type ActionType string

const (
	AuthRegister             ActionType = "auth/register"
	AuthLogin                ActionType = "auth/login"
	AuthLogout               ActionType = "auth/logout"
	AuthGetCurrentUser       ActionType = "auth/getCurrentUser"
	AuthChangePassword       ActionType = "auth/changePassword"
	AuthRequestPasswordReset ActionType = "auth/requestPasswordReset"
	AuthResetPassword        ActionType = "auth/resetPassword"
	AuthReset                ActionType = "auth/reset"

	ProfileGetCurrent ActionType = "profile/getCurrentProfile"
	ProfileUpdate     ActionType = "profile/updateProfile"
	ProfileReset      ActionType = "profile/reset"
	ProfileClear      ActionType = "profile/clearProfile"

	ResourcesGetPublic    ActionType = "resources/getResources"
	ResourcesGetMine      ActionType = "resources/getMyResources"
	ResourcesGetAll       ActionType = "resources/getAllResources"
	ResourcesGetOne       ActionType = "resources/getResource"
	ResourcesCreate       ActionType = "resources/createResource"
	ResourcesUpdate       ActionType = "resources/updateResource"
	ResourcesDelete       ActionType = "resources/deleteResource"
	ResourcesReview       ActionType = "resources/approveOrRejectResource"
	ResourcesReset        ActionType = "resources/reset"
	ResourcesClearData    ActionType = "resources/clearResourceData"
	ResourcesClearMessage ActionType = "resources/clearResourceMessage"

	AdminFetchUsers     ActionType = "admin/fetchAllUsers"
	AdminUpdateUser     ActionType = "admin/updateUser"
	AdminChangeStatus   ActionType = "admin/changeUserStatus"
	AdminFetchResources ActionType = "admin/fetchAllResources"
	AdminFetchPending   ActionType = "admin/fetchPendingResources"
	AdminReview         ActionType = "admin/approveRejectResource"
	AdminClearMessages  ActionType = "admin/clearAdminMessages"
	AdminResetState     ActionType = "admin/resetAdminState"
)

// Action is the only way state changes. Payload carries the fulfilled
// result, Error the rejection message and Meta the thunk's arguments.
type Action struct {
	Type    ActionType
	Phase   Phase
	Payload any
	Error   string
	Meta    any
}

type reviewMeta struct {
	ID     int64
	Status model.ResourceStatus
	Reason string
}

type userStatusMeta struct {
	ID     int64
	Status model.UserStatus
}

// Rejection is returned by a thunk whose operation failed. Message is the
// text stored in the slice's error field.
type Rejection struct {
	Type    ActionType
	Message string
	Err     error
}

func (r *Rejection) Error() string { return r.Message }

func (r *Rejection) Unwrap() error {
	return r.Err
}

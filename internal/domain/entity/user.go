package entity

import "time"

// UserProfile is the authoritative account record stored in the user
// directory. The profile, not the credential, decides authorization.
type UserProfile struct {
	UID         string    `json:"uid" firestore:"uid"`
	Email       string    `json:"email" firestore:"email"`
	DisplayName string    `json:"displayName" firestore:"displayName"`
	Role        Role      `json:"role" firestore:"role"`
	CreatedAt   time.Time `json:"createdAt" firestore:"createdAt"`
}

// NewUserProfile builds a profile for a first-time visitor. New accounts
// always start as clients; elevation is a separate administrative action.
func NewUserProfile(uid, email, displayName string) *UserProfile {
	return &UserProfile{
		UID:         uid,
		Email:       email,
		DisplayName: displayName,
		Role:        RoleClient,
		CreatedAt:   time.Now().UTC(),
	}
}

// HasRole reports whether the profile holds exactly role. A nil
// profile holds nothing.
func (u *UserProfile) HasRole(role Role) bool {
	return u != nil && u.Role == role
}

// HasMinimumRole reports whether the profile's role satisfies minimum.
// A nil profile satisfies nothing.
func (u *UserProfile) HasMinimumRole(minimum Role) bool {
	if u == nil {
		return false
	}

	return u.Role.AtLeast(minimum)
}

// IsAdmin reports whether the profile holds the admin role.
func (u *UserProfile) IsAdmin() bool {
	return u.HasRole(RoleAdmin)
}

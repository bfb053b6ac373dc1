package domain

import "time"

// Account is the signed-in user as known to the account engine.
type Account struct {
	// ID is a stable identifier assigned at sign-in.
	ID string `json:"id" yaml:"id"`

	// Email is the sign-in address.
	Email string `json:"email" yaml:"email"`

	// Profile holds user-editable presentation data.
	Profile Profile `json:"profile" yaml:"profile"`

	// SignedInAt is when the current session was established.
	SignedInAt time.Time `json:"signed_in_at" yaml:"signed_in_at"`
}

// Profile is presentation data attached to an account.
type Profile struct {
	DisplayName string `json:"display_name" yaml:"display_name"`
	AvatarURL   string `json:"avatar_url,omitempty" yaml:"avatar_url,omitempty"`
}

// Label returns the display name, falling back to the e-mail address.
func (a Account) Label() string {
	if a.Profile.DisplayName != "" {
		return a.Profile.DisplayName
	}
	return a.Email
}

// Session is the persisted state of a signed-in account.
type Session struct {
	Account      Account `yaml:"account"`
	Token        string  `yaml:"token"`
	RefreshToken string  `yaml:"refresh_token"`

	// NeedsReauth is set when the engine reported an auth problem; it is
	// cleared by the next successful login.
	NeedsReauth bool `yaml:"needs_reauth,omitempty"`
}

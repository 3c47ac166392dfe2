// Package profile resolves who the signed-in user is. The profile is read-only;
// nothing here ever writes it back.
package profile

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/viper"
)

// DefaultEmail is used when the profile has no email.
const DefaultEmail = "user@example.com"

// Profile identifies the user toward the checkout endpoint.
type Profile struct {
	UserID    string `mapstructure:"user_id"`
	UserEmail string `mapstructure:"user_email"`
}

// Load reads the profile from path (yaml, json or toml by extension) with
// COACH_USER_ID / COACH_USER_EMAIL overrides. A missing file is not an error.
// Missing fields fall back to a guest id and DefaultEmail.
func Load(path string) (Profile, error) {
	v := viper.New()
	v.SetEnvPrefix("COACH")
	if err := v.BindEnv("user_id"); err != nil {
		return Profile{}, err
	}
	if err := v.BindEnv("user_email"); err != nil {
		return Profile{}, err
	}

	if path = strings.TrimSpace(path); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil && !missing(err) {
			return Profile{}, fmt.Errorf("failed to read profile: %w", err)
		}
	}

	var p Profile
	if err := v.Unmarshal(&p); err != nil {
		return Profile{}, fmt.Errorf("failed to unmarshal profile: %w", err)
	}
	return p.withDefaults(), nil
}

// Guest returns a profile with no stored identity.
func Guest() Profile {
	return Profile{}.withDefaults()
}

func (p Profile) withDefaults() Profile {
	p.UserID = strings.TrimSpace(p.UserID)
	p.UserEmail = strings.TrimSpace(p.UserEmail)
	if p.UserID == "" {
		p.UserID = "guest-" + uuid.NewString()
	}
	if p.UserEmail == "" {
		p.UserEmail = DefaultEmail
	}
	return p
}

func missing(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist)
}

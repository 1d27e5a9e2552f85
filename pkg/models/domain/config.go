package domain

import "fmt"

type ProfileType string

const (
	ProfileTypeCredentials ProfileType = "credentials"
	ProfileTypeRole        ProfileType = "role"
	ProfileTypeSSO         ProfileType = "sso"
)

type ConfigProfile struct {
	Name    string
	Type    ProfileType
	Region  string
	RoleARN string
}

func (c ConfigProfile) String() string {
	return fmt.Sprintf("%s:%s", c.Type, c.Name)
}

// CloudContext builds the request context for this profile.
func (c ConfigProfile) CloudContext() CloudContext {
	return CloudContext{
		Profile: c.Name,
		Region:  c.Region,
	}
}

package domain

// CloudContext identifies the account and region a request runs against.
// It is a plain value: collaborators copy what they need at construction time.
type CloudContext struct {
	Profile         string
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	SessionToken    string
	RoleARN         string
}

func (c CloudContext) HasStaticCredentials() bool {
	return c.AccessKeyID != "" && c.SecretAccessKey != ""
}

// WithRegion returns a copy of the context pinned to region.
func (c CloudContext) WithRegion(region string) CloudContext {
	c.Region = region
	return c
}

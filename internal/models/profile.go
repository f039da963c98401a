package models

// Profile is a user's public profile. The ID comes from the external
// identity provider; one record exists per user, created on first
// settings save and never deleted by this system.
type Profile struct {
	ID             string   `json:"id"`
	DisplayName    string   `json:"displayName"`
	ImageURL       string   `json:"imageUrl"`
	Specialization string   `json:"specialization"`
	Region         string   `json:"region"`
	Bio            string   `json:"bio"`
	Skills         []string `json:"skills"` // set semantics, order preserved
	GitHubUsername string   `json:"githubUsername,omitempty"`
	LinkedInURL    string   `json:"linkedinUrl,omitempty"`
}

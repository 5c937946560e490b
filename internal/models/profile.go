package models

import "time"

// PersonalInfo is the singleton profile shown in the hero and contact sections.
type PersonalInfo struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	Title           string    `json:"title"`
	Bio             string    `json:"bio"`
	Email           string    `json:"email"`
	Phone           *string   `json:"phone"`
	Location        string    `json:"location"`
	LinkedinURL     *string   `json:"linkedin_url"`
	GithubURL       *string   `json:"github_url"`
	ResumeURL       *string   `json:"resume_url"`
	ProfileImageURL *string   `json:"profile_image_url"`
	UpdatedAt       time.Time `json:"updated_at"`
}

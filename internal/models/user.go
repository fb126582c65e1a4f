package models

import "time"

type User struct {
	ID           int       `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	ImageFile    string    `json:"image_file"`
	CreatedAt    time.Time `json:"created_at"`
}

type UpdateProfileRequest struct {
	Username string
	Email    string
}

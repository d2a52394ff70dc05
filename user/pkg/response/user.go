package response

import (
	"time"

	"github.com/google/uuid"

	"github.com/Alturino/grocery/internal/repository"
)

type User struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

func NewUser(u repository.User) User {
	return User{ID: u.ID, Username: u.Username, Email: u.Email, CreatedAt: u.CreatedAt.Time}
}

type Token struct {
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
}

package domain

import (
	"fmt"
	"github.com/google/uuid"
	"time"
)

type User struct {
	Id          uuid.UUID `json:"id"`
	Username    string    `json:"username"`
	DisplayName string    `json:"displayName"`
	Avatar      string    `json:"avatar,omitempty"`
	Verified    bool      `json:"verified"`
	Private     bool      `json:"private"`
	CreatedAt   time.Time `json:"createdAt,omitzero"`
}

func (user *User) ToString() string {
	return fmt.Sprintf("\n\tId: %s \n\tUsername: %s \n\tDisplayName: %s)", user.Id, user.Username, user.DisplayName)
}

package domain

import "time"

// Task represents a named piece of work owned by a user.
// The task itself carries no state; its history lives in its intervals.
type Task struct {
	ID          int64
	UserID      int64
	Name        string
	Description string
	CreatedAt   time.Time
}

// NewTask creates a new Task for the given user.
func NewTask(userID int64, name, description string, createdAt time.Time) Task {
	return Task{
		UserID:      userID,
		Name:        name,
		Description: description,
		CreatedAt:   createdAt,
	}
}

// IsValid checks if the task has valid data.
func (t Task) IsValid() bool {
	return t.Name != "" && t.UserID > 0
}

// String returns the task name for display purposes.
func (t Task) String() string {
	return t.Name
}

// User owns tasks. Only the fields reporting and retention need are modelled.
type User struct {
	ID          int64
	Username    string
	DisplayName string
	Email       string
	CreatedAt   time.Time
}

// NewUser creates a new User.
func NewUser(username, displayName, email string, createdAt time.Time) User {
	return User{
		Username:    username,
		DisplayName: displayName,
		Email:       email,
		CreatedAt:   createdAt,
	}
}

// IsValid checks if the user has valid data.
func (u User) IsValid() bool {
	return u.Username != ""
}

// String returns the username for display purposes.
func (u User) String() string {
	return u.Username
}

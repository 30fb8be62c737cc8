package models

type User struct {
	Base
	Email        string  `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string  `gorm:"not null" json:"-"`
	Age          int     `json:"age"`
	Weight       float64 `json:"weight"`
	Height       float64 `json:"height"`
	Gender       string  `json:"gender"`
	Activity     string  `json:"activity"`
	Goal         string  `json:"goal"`
	RefreshToken *string `json:"-"`

	// Notification settings are private; they are served only through the
	// preferences endpoint.
	MealReminders    bool   `json:"-"`
	WorkoutReminders bool   `json:"-"`
	WeeklyReports    bool   `json:"-"`
	DiscordUserID    string `json:"-"`

	Profile *Profile `json:"profile,omitempty"`
}

type Profile struct {
	Base
	UserID   string `gorm:"uniqueIndex;not null" json:"userId"`
	Username string `gorm:"not null" json:"username"`
	Bio      string `json:"bio"`
	Avatar   string `json:"avatar"`
	IsPublic bool   `gorm:"index" json:"isPublic"`
	User     *User  `json:"user,omitempty"`
}

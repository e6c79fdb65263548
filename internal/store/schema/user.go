package schema

import (
	"time"

	"gorm.io/gorm"

	"github.com/Nairim-holding/api-nairim-v2-sub000/internal/domain"
)

// User represents the users table - back-office accounts
type User struct {
	// ID is an auto-incrementing sequence number
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	// Name is the display name of the user
	Name string `gorm:"column:name;not null" json:"name"`
	// Email is the login identifier, unique across all users
	Email string `gorm:"column:email;not null;uniqueIndex" json:"email"`
	// Password is the password hash produced by the authentication service
	Password  string         `gorm:"column:password;not null" json:"-"`
	Gender    domain.Gender  `gorm:"column:gender;type:varchar(16)" json:"gender"`
	Role      domain.Role    `gorm:"column:role;type:varchar(16);not null;default:DEFAULT" json:"role"`
	BirthDate *time.Time     `gorm:"column:birth_date" json:"birth_date,omitempty"`
	Favorites []Favorite     `gorm:"foreignKey:UserID" json:"favorites,omitempty"`
	CreatedAt time.Time      `gorm:"column:created_at;not null" json:"created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at;not null" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index" json:"deleted_at,omitempty"`
}

// TableName specifies the table name for the User model
func (User) TableName() string {
	return "users"
}

// Favorite represents the favorites table - properties bookmarked by a user
type Favorite struct {
	ID         uint64         `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	UserID     uint64         `gorm:"column:user_id;not null;index" json:"user_id"`
	PropertyID uint64         `gorm:"column:property_id;not null;index" json:"property_id"`
	CreatedAt  time.Time      `gorm:"column:created_at;not null" json:"created_at"`
	DeletedAt  gorm.DeletedAt `gorm:"column:deleted_at;index" json:"deleted_at,omitempty"`
}

// TableName specifies the table name for the Favorite model
func (Favorite) TableName() string {
	return "favorites"
}

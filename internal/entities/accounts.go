package entities

import (
	"time"

	"gorm.io/gorm"
)

// User signs in with an email address instead of a username.
type User struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	Email        string         `gorm:"uniqueIndex;size:255" json:"email"`
	FirstName    string         `gorm:"size:100" json:"first_name,omitempty"`
	LastName     string         `gorm:"size:100" json:"last_name,omitempty"`
	PasswordHash string         `gorm:"size:255" json:"-"`
	TokenHash    string         `gorm:"index;size:64" json:"-"` // SHA-256 of the API token
	IsStaff      bool           `gorm:"default:false" json:"is_staff"`
	IsActive     bool           `gorm:"default:true" json:"is_active"`
	Orders       []Order        `gorm:"foreignKey:UserID" json:"-"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

type Group struct {
	ID          uint         `gorm:"primaryKey" json:"id"`
	Name        string       `gorm:"uniqueIndex;size:100" json:"name"`
	Permissions []Permission `gorm:"many2many:group_permissions;" json:"permissions,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
}

// Permission is scoped to a single record type, e.g. codename
// "view_medicalrecord" on record type "medicalrecord".
type Permission struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Codename   string    `gorm:"uniqueIndex;size:100" json:"codename"`
	RecordType string    `gorm:"index;size:100" json:"record_type"`
	CreatedAt  time.Time `json:"created_at"`
}

type MedicalRecord struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:100" json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

func (User) TableName() string {
	return "users"
}

func (Group) TableName() string {
	return "groups"
}

func (Permission) TableName() string {
	return "permissions"
}

func (MedicalRecord) TableName() string {
	return "medical_records"
}

package entities

import (
	"time"
)

type Author struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"index;size:256;not null" json:"name"`
	Books     []Book    `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"books,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Book struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	Title           string    `gorm:"index;size:512;not null" json:"title"`
	PublicationYear int       `gorm:"index" json:"publication_year"`
	AuthorID        uint      `gorm:"index" json:"author_id"`
	Author          Author    `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Libraries       []Library `gorm:"many2many:library_books;" json:"-"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type Library struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"uniqueIndex;size:256" json:"name"`
	Books     []Book    `gorm:"many2many:library_books;" json:"books,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Librarian is tied to exactly one library; the unique index on LibraryID
// keeps it one-to-one.
type Librarian struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:256" json:"name"`
	LibraryID uint      `gorm:"uniqueIndex" json:"library_id"`
	Library   Library   `gorm:"foreignKey:LibraryID" json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

func (Author) TableName() string {
	return "authors"
}

func (Book) TableName() string {
	return "books"
}

func (Library) TableName() string {
	return "libraries"
}

func (Librarian) TableName() string {
	return "librarians"
}

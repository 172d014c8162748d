package models

import "time"

// PostDateFormat renders publish dates the way the index page shows them,
// e.g. "August 23, 2026".
const PostDateFormat = "January 02, 2006"

// BlogPost is a published article. Date is a display string stamped once at
// creation and never recomputed on edit. Deletes are hard and cascade to the
// post's comments.
type BlogPost struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"size:250;uniqueIndex;not null" json:"title"`
	Subtitle  string    `gorm:"size:250;not null" json:"subtitle"`
	Date      string    `gorm:"size:250;not null" json:"date"`
	Body      string    `gorm:"type:text;not null" json:"body"`
	ImageURL  string    `gorm:"size:250;not null" json:"img_url"`
	AuthorID  uint      `gorm:"not null;index" json:"author_id"`
	Author    User      `gorm:"foreignKey:AuthorID" json:"author"`
	Comments  []Comment `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"comments,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

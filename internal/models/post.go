package models

import "time"

type Post struct {
	BaseModel
	Title       string     `gorm:"size:255;not null" json:"title"`
	Content     string     `gorm:"type:text;not null" json:"content"`
	Categories  string     `gorm:"not null" json:"categories"`
	Author      string     `gorm:"index" json:"author"`
	PublishDate *time.Time `json:"publish_date"`
	Status      PostStatus `gorm:"type:varchar(20);default:'active'" json:"status"`

	// Relations
	Comments     []Comment  `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"comments,omitempty"`
	CategoryList []Category `gorm:"many2many:category_post" json:"category_list,omitempty"`
}

type Category struct {
	BaseModel
	Name string `gorm:"uniqueIndex;not null" json:"name"`

	Posts []Post `gorm:"many2many:category_post" json:"-"`
}

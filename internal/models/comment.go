package models

type Comment struct {
	BaseModel
	PostID  string `gorm:"type:uuid;not null;index" json:"post_id"`
	Author  string `gorm:"index" json:"author"`
	Content string `gorm:"type:text;not null" json:"content"`

	Likes []Like `gorm:"foreignKey:CommentID" json:"likes,omitempty"`
}

// Like records a single reaction of one author to one comment. The
// composite unique index makes "at most one like per (comment, author)"
// a storage-level guarantee; a duplicate insert fails atomically instead
// of relying on a read-then-write check.
type Like struct {
	BaseModel
	CommentID string   `gorm:"type:uuid;not null;uniqueIndex:uniq_comment_author" json:"comment_id"`
	Author    string   `gorm:"not null;uniqueIndex:uniq_comment_author" json:"author"`
	Type      LikeType `gorm:"type:varchar(10);not null" json:"type"`
}

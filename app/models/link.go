package models

// Link is a directed dependency between two tasks. Type is stored verbatim.
type Link struct {
	ID     int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Source int64  `json:"source"`
	Target int64  `json:"target"`
	Type   string `gorm:"type:varchar(16)" json:"type"`
}

func (Link) TableName() string {
	return "gantt_links"
}

// LinkInput carries the writable fields of a link.
type LinkInput struct {
	Source int64
	Target int64
	Type   string
}

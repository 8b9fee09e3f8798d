package models

// Category is an entry in the managed list of category names offered when
// creating habits. Habits copy the name; deleting a category leaves them intact.
type Category struct {
	Base
	Name        string `gorm:"size:50;not null;uniqueIndex" json:"name"`
	Description string `json:"description"`
	Color       string `gorm:"size:7" json:"color"`
	Icon        string `gorm:"size:50" json:"icon"`
}

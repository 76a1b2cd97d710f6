package models

// CategoryType represents the type of category
type CategoryType string

const (
	CategoryTypeIncome  CategoryType = "income"
	CategoryTypeExpense CategoryType = "expense"
)

// Category represents a transaction category. Type is an informational
// grouping tag and is not enforced against the transactions filed under it.
type Category struct {
	Base
	UserID      string       `gorm:"type:uuid;not null;index" json:"user_id"`
	Name        string       `gorm:"not null" json:"name"`
	Type        CategoryType `gorm:"not null" json:"type"`
	Color       string       `json:"color"`
	Description string       `json:"description"`
	Icon        string       `json:"icon"`
}

// OwnerID returns the id of the user the category belongs to.
func (c *Category) OwnerID() string { return c.UserID }

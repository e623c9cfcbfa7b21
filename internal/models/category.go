package models

type Category struct {
	ID          string `json:"id" db:"id"`
	Name        string `json:"name" db:"name"`
	Description string `json:"description" db:"description"`
	Icon        string `json:"icon" db:"icon"`
	IsDefault   bool   `json:"isDefault" db:"-"`
	Predefined  bool   `json:"predefined" db:"-"`
}

// CategoryUpdate carries the fields of a partial category edit.
type CategoryUpdate struct {
	Name        string
	Description *string
	Icon        *string
}

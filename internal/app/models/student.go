package models

// Student defines the student model based on the 'students' table.
type Student struct {
	ID         int64   `json:"id" db:"id"`
	Name       string  `json:"name" db:"name"`
	RollNo     *string `json:"rollNo,omitempty" db:"roll_no"`
	Department *string `json:"department,omitempty" db:"department"`
	Contact    *string `json:"contact,omitempty" db:"contact"`
	Address    *string `json:"address,omitempty" db:"address"`
}

// StudentUpdate lists every updatable student field; nil means "leave as is".
type StudentUpdate struct {
	Name       *string `json:"name,omitempty"`
	RollNo     *string `json:"rollNo,omitempty"`
	Department *string `json:"department,omitempty"`
	Contact    *string `json:"contact,omitempty"`
	Address    *string `json:"address,omitempty"`
}

// IsEmpty reports whether the update changes nothing.
func (u StudentUpdate) IsEmpty() bool {
	return u.Name == nil && u.RollNo == nil && u.Department == nil && u.Contact == nil && u.Address == nil
}

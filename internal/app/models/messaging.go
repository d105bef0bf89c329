package models

import "time"

// Announcement is an admin broadcast, optionally limited to a schedule window.
type Announcement struct {
	ID        int64      `json:"id" db:"id"`
	Title     string     `json:"title" db:"title"`
	Message   string     `json:"message" db:"message"`
	Created   time.Time  `json:"created" db:"created"`
	StartDate *time.Time `json:"startDate,omitempty" db:"start_date"`
	EndDate   *time.Time `json:"endDate,omitempty" db:"end_date"`
	Active    bool       `json:"active" db:"active"`

	// Dismissed is populated by per-student listings that include dismissed
	// announcements.
	Dismissed bool `json:"dismissed,omitempty" db:"-"`
}

// AnnouncementUpdate lists every updatable announcement field.
type AnnouncementUpdate struct {
	Title     *string    `json:"title,omitempty"`
	Message   *string    `json:"message,omitempty"`
	StartDate *time.Time `json:"startDate,omitempty"`
	EndDate   *time.Time `json:"endDate,omitempty"`
	Active    *bool      `json:"active,omitempty"`
}

// IsEmpty reports whether the update changes nothing.
func (u AnnouncementUpdate) IsEmpty() bool {
	return u.Title == nil && u.Message == nil && u.StartDate == nil && u.EndDate == nil && u.Active == nil
}

// ContactMessage is one message in a student's help thread. Replies point at
// the thread root through ParentID.
type ContactMessage struct {
	ID         int64     `json:"id" db:"id"`
	StudentID  int64     `json:"studentId" db:"student_id"`
	ToRole     string    `json:"toRole" db:"to_role"`
	ToID       *int64    `json:"toId,omitempty" db:"to_id"`
	Subject    string    `json:"subject" db:"subject"`
	Message    string    `json:"message" db:"message"`
	Created    time.Time `json:"created" db:"created"`
	SenderRole *string   `json:"senderRole,omitempty" db:"sender_role"`
	SenderID   *int64    `json:"senderId,omitempty" db:"sender_id"`
	ParentID   *int64    `json:"parentId,omitempty" db:"parent_id"`
	IsRead     bool      `json:"isRead" db:"is_read"`

	// StudentName is populated by joined queries.
	StudentName string `json:"studentName,omitempty" db:"student_name"`
}

// MessageThread is a contact message with its replies attached.
type MessageThread struct {
	ContactMessage
	Children []*MessageThread `json:"children,omitempty"`
}

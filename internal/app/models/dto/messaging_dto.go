package dto

// CreateAnnouncementRequest carries a new admin broadcast.
type CreateAnnouncementRequest struct {
	Title     string `json:"title" binding:"required"`
	Message   string `json:"message" binding:"required"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

// DismissRequest records a per-student announcement dismissal.
type DismissRequest struct {
	AnnouncementID int64 `json:"announcementId" binding:"required"`
}

// ContactMessageRequest carries a new contact/help message from a student.
type ContactMessageRequest struct {
	Subject string `json:"subject" binding:"required"`
	Message string `json:"message" binding:"required"`
	ToRole  string `json:"toRole"`
	ToID    *int64 `json:"toId"`
}

// ReplyRequest carries a reply attached to an existing thread.
type ReplyRequest struct {
	Subject string `json:"subject"`
	Message string `json:"message" binding:"required"`
}

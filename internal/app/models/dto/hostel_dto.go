package dto

// CreateRoomRequest carries new room data. Capacity defaults to 1.
type CreateRoomRequest struct {
	Block    string `json:"block" binding:"required"`
	RoomNo   string `json:"roomNo" binding:"required"`
	Capacity int    `json:"capacity" binding:"omitempty,min=1"`
}

// AllocateRoomRequest allocates a student into a room. CheckinDate is
// "YYYY-MM-DD" and defaults to today.
type AllocateRoomRequest struct {
	StudentID   int64  `json:"studentId" binding:"required"`
	RoomID      int64  `json:"roomId" binding:"required"`
	CheckinDate string `json:"checkinDate"`
}

// CheckoutRequest ends an allocation. CheckoutDate defaults to today.
type CheckoutRequest struct {
	CheckoutDate string `json:"checkoutDate"`
}

// PaymentRequest records a hostel or transport payment. Date defaults to
// today.
type PaymentRequest struct {
	StudentID int64   `json:"studentId" binding:"required"`
	Amount    float64 `json:"amount" binding:"min=0"`
	Date      string  `json:"date"`
}

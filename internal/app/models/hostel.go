package models

import "time"

// Room defines a hostel room.
type Room struct {
	ID       int64  `json:"id" db:"id"`
	Block    string `json:"block" db:"block"`
	RoomNo   string `json:"roomNo" db:"room_no"`
	Capacity int    `json:"capacity" db:"capacity"`
}

// HostelAllocation links a student to a room. The allocation is active while
// CheckoutDate is null.
type HostelAllocation struct {
	ID           int64      `json:"id" db:"id"`
	StudentID    int64      `json:"studentId" db:"student_id"`
	RoomID       int64      `json:"roomId" db:"room_id"`
	CheckinDate  time.Time  `json:"checkinDate" db:"checkin_date"`
	CheckoutDate *time.Time `json:"checkoutDate,omitempty" db:"checkout_date"`

	// Room details, populated by joined queries.
	Block  string `json:"block,omitempty" db:"block"`
	RoomNo string `json:"roomNo,omitempty" db:"room_no"`
}

// HostelPayment is an append-only payment record.
type HostelPayment struct {
	ID        int64     `json:"id" db:"id"`
	StudentID int64     `json:"studentId" db:"student_id"`
	Amount    float64   `json:"amount" db:"amount"`
	Date      time.Time `json:"date" db:"date"`
	ReceiptNo string    `json:"receiptNo" db:"receipt_no"`
}

// RoomOccupancy is one row of the occupancy report.
type RoomOccupancy struct {
	RoomID    int64  `json:"roomId" db:"room_id"`
	Block     string `json:"block" db:"block"`
	RoomNo    string `json:"roomNo" db:"room_no"`
	Capacity  int    `json:"capacity" db:"capacity"`
	Occupants int    `json:"occupants" db:"occupants"`
}

// VacantRoom is a room with at least one free place.
type VacantRoom struct {
	Room
	Vacant int `json:"vacant" db:"vacant"`
}

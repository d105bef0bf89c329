package models

import "time"

// Driver defines a bus driver.
type Driver struct {
	ID        int64   `json:"id" db:"id"`
	Name      string  `json:"name" db:"name"`
	LicenseNo *string `json:"licenseNo,omitempty" db:"license_no"`
	Contact   *string `json:"contact,omitempty" db:"contact"`
}

// DriverUpdate lists every updatable driver field; nil means "leave as is".
type DriverUpdate struct {
	Name      *string `json:"name,omitempty"`
	LicenseNo *string `json:"licenseNo,omitempty"`
	Contact   *string `json:"contact,omitempty"`
}

// IsEmpty reports whether the update changes nothing.
func (u DriverUpdate) IsEmpty() bool {
	return u.Name == nil && u.LicenseNo == nil && u.Contact == nil
}

// Bus defines a bus with a unique registration.
type Bus struct {
	ID           int64  `json:"id" db:"id"`
	Registration string `json:"registration" db:"registration"`
	Capacity     int    `json:"capacity" db:"capacity"`
	DriverID     *int64 `json:"driverId,omitempty" db:"driver_id"`

	// Driver details, populated by joined queries.
	DriverName *string `json:"driverName,omitempty" db:"driver_name"`
	LicenseNo  *string `json:"licenseNo,omitempty" db:"license_no"`
}

// BusUpdate lists every updatable bus field; nil means "leave as is".
type BusUpdate struct {
	Registration *string `json:"registration,omitempty"`
	Capacity     *int    `json:"capacity,omitempty"`
	DriverID     *int64  `json:"driverId,omitempty"`
}

// IsEmpty reports whether the update changes nothing.
func (u BusUpdate) IsEmpty() bool {
	return u.Registration == nil && u.Capacity == nil && u.DriverID == nil
}

// Route defines a transport route.
type Route struct {
	ID             int64   `json:"id" db:"id"`
	Name           string  `json:"name" db:"name"`
	PickupLocation string  `json:"pickupLocation" db:"pickup_location"`
	BusID          *int64  `json:"busId,omitempty" db:"bus_id"`
	Fee            float64 `json:"fee" db:"fee"`
}

// RouteUpdate lists every updatable route field; nil means "leave as is".
type RouteUpdate struct {
	Name           *string  `json:"name,omitempty"`
	PickupLocation *string  `json:"pickupLocation,omitempty"`
	BusID          *int64   `json:"busId,omitempty"`
	Fee            *float64 `json:"fee,omitempty"`
}

// IsEmpty reports whether the update changes nothing.
func (u RouteUpdate) IsEmpty() bool {
	return u.Name == nil && u.PickupLocation == nil && u.BusID == nil && u.Fee == nil
}

// TransportAllocation links a student to a route.
type TransportAllocation struct {
	ID        int64 `json:"id" db:"id"`
	StudentID int64 `json:"studentId" db:"student_id"`
	RouteID   int64 `json:"routeId" db:"route_id"`
	Active    bool  `json:"active" db:"active"`

	// Route details, populated by joined queries.
	RouteName      string  `json:"routeName,omitempty" db:"route_name"`
	PickupLocation string  `json:"pickupLocation,omitempty" db:"pickup_location"`
	Fee            float64 `json:"fee,omitempty" db:"fee"`
}

// TransportPayment is an append-only payment record.
type TransportPayment struct {
	ID        int64     `json:"id" db:"id"`
	StudentID int64     `json:"studentId" db:"student_id"`
	Amount    float64   `json:"amount" db:"amount"`
	Date      time.Time `json:"date" db:"date"`
	ReceiptNo string    `json:"receiptNo" db:"receipt_no"`
}

// BusAttendance is a raw attendance mark; there is no per-day dedup.
type BusAttendance struct {
	ID        int64     `json:"id" db:"id"`
	StudentID int64     `json:"studentId" db:"student_id"`
	RouteID   int64     `json:"routeId" db:"route_id"`
	Date      time.Time `json:"date" db:"date"`
	Present   bool      `json:"present" db:"present"`
}

// ActiveRoute is one row of the active routes report.
type ActiveRoute struct {
	Route
	BusReg *string `json:"busReg,omitempty" db:"bus_reg"`
	Riders int     `json:"riders" db:"riders"`
}

// TransportFeeRow is one row of the transport fee report. Paid is the
// student's total across all their transport payments, not scoped to this
// allocation's route.
type TransportFeeRow struct {
	AllocationID int64   `json:"allocationId" db:"allocation_id"`
	StudentName  string  `json:"studentName" db:"student_name"`
	RouteName    string  `json:"routeName" db:"route_name"`
	Fee          float64 `json:"fee" db:"fee"`
	Paid         float64 `json:"paid" db:"paid"`
}

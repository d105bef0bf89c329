package dto

// RegisterDriverRequest carries new driver data.
type RegisterDriverRequest struct {
	Name      string `json:"name" binding:"required"`
	LicenseNo string `json:"licenseNo"`
	Contact   string `json:"contact"`
}

// RegisterBusRequest carries new bus data. Capacity defaults to 20.
type RegisterBusRequest struct {
	Registration string `json:"registration" binding:"required"`
	Capacity     int    `json:"capacity" binding:"omitempty,min=1"`
	DriverID     *int64 `json:"driverId"`
}

// RegisterRouteRequest carries new route data.
type RegisterRouteRequest struct {
	Name           string  `json:"name" binding:"required"`
	PickupLocation string  `json:"pickupLocation" binding:"required"`
	BusID          *int64  `json:"busId"`
	Fee            float64 `json:"fee" binding:"min=0"`
}

// AssignRouteRequest puts a student on a route.
type AssignRouteRequest struct {
	StudentID int64 `json:"studentId" binding:"required"`
	RouteID   int64 `json:"routeId" binding:"required"`
}

// AttendanceRequest marks bus attendance. Date defaults to today, Present to
// true when omitted.
type AttendanceRequest struct {
	StudentID int64  `json:"studentId" binding:"required"`
	RouteID   int64  `json:"routeId" binding:"required"`
	Date      string `json:"date"`
	Present   *bool  `json:"present"`
}

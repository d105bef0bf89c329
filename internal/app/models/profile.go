package models

// StudentProfile is the composite view over a single student: allocations,
// payments and the derived totals.
type StudentProfile struct {
	Student              *Student              `json:"student"`
	HostelAllocations    []HostelAllocation    `json:"hostelAllocations"`
	TransportAllocations []TransportAllocation `json:"transportAllocations"`
	HostelPayments       []HostelPayment       `json:"hostelPayments"`
	TransportPayments    []TransportPayment    `json:"transportPayments"`

	TotalHostelPaid    float64 `json:"totalHostelPaid"`
	TotalTransportPaid float64 `json:"totalTransportPaid"`
	// TotalRouteFee sums fees over every transport allocation the student
	// holds, inactive ones included.
	TotalRouteFee float64 `json:"totalRouteFee"`
	// TotalDues is TotalRouteFee minus TotalTransportPaid, floored at zero.
	TotalDues float64 `json:"totalDues"`
}

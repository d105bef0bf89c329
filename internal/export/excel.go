// Package export renders report data as xlsx workbooks.
package export

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/campuserp/campuserp/internal/app/models"
)

// Sheet is one tabular sheet of a workbook.
type Sheet struct {
	Title  string
	Header []string
	Rows   [][]string
}

// Workbook renders the sheets as a single xlsx file.
func Workbook(sheets []Sheet) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	bold, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})

	for i, s := range sheets {
		name := s.Title
		if i == 0 {
			if err := f.SetSheetName("Sheet1", name); err != nil {
				return nil, fmt.Errorf("rename sheet: %w", err)
			}
		} else {
			if _, err := f.NewSheet(name); err != nil {
				return nil, fmt.Errorf("new sheet: %w", err)
			}
		}

		for col, h := range s.Header {
			cell := fmt.Sprintf("%s1", colName(col+1))
			if err := f.SetCellStr(name, cell, h); err != nil {
				return nil, fmt.Errorf("set cell %s: %w", cell, err)
			}
		}
		end := colName(len(s.Header)) + "1"
		_ = f.SetCellStyle(name, "A1", end, bold)
		_ = f.AutoFilter(name, "A1:"+end, nil)

		for r, row := range s.Rows {
			for c, val := range row {
				cell := fmt.Sprintf("%s%d", colName(c+1), r+2)
				if err := f.SetCellStr(name, cell, val); err != nil {
					return nil, fmt.Errorf("set cell %s: %w", cell, err)
				}
			}
		}

		// Width heuristic: header length or longest value, clamped.
		for c := 1; c <= len(s.Header); c++ {
			width := len(s.Header[c-1])
			for _, row := range s.Rows {
				if c-1 < len(row) && len(row[c-1]) > width {
					width = len(row[c-1])
				}
			}
			w := float64(width) * 0.9
			if w < 12 {
				w = 12
			}
			if w > 40 {
				w = 40
			}
			_ = f.SetColWidth(name, colName(c), colName(c), w)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return &buf, nil
}

// OccupancySheet formats the room occupancy report.
func OccupancySheet(rows []models.RoomOccupancy) Sheet {
	s := Sheet{
		Title:  "Occupancy",
		Header: []string{"Block", "Room", "Capacity", "Occupants"},
	}
	for _, r := range rows {
		s.Rows = append(s.Rows, []string{
			r.Block, r.RoomNo, strconv.Itoa(r.Capacity), strconv.Itoa(r.Occupants),
		})
	}
	return s
}

// VacantRoomsSheet formats the vacant rooms report.
func VacantRoomsSheet(rows []models.VacantRoom) Sheet {
	s := Sheet{
		Title:  "Vacant Rooms",
		Header: []string{"Block", "Room", "Capacity", "Vacant"},
	}
	for _, r := range rows {
		s.Rows = append(s.Rows, []string{
			r.Block, r.RoomNo, strconv.Itoa(r.Capacity), strconv.Itoa(r.Vacant),
		})
	}
	return s
}

// ActiveRoutesSheet formats the active routes report.
func ActiveRoutesSheet(rows []models.ActiveRoute) Sheet {
	s := Sheet{
		Title:  "Active Routes",
		Header: []string{"Route", "Pickup", "Bus", "Fee", "Riders"},
	}
	for _, r := range rows {
		bus := ""
		if r.BusReg != nil {
			bus = *r.BusReg
		}
		s.Rows = append(s.Rows, []string{
			r.Name, r.PickupLocation, bus, formatAmount(r.Fee), strconv.Itoa(r.Riders),
		})
	}
	return s
}

// TransportFeesSheet formats the transport fee report.
func TransportFeesSheet(rows []models.TransportFeeRow) Sheet {
	s := Sheet{
		Title:  "Transport Fees",
		Header: []string{"Allocation", "Student", "Route", "Fee", "Paid"},
	}
	for _, r := range rows {
		s.Rows = append(s.Rows, []string{
			strconv.FormatInt(r.AllocationID, 10), r.StudentName, r.RouteName, formatAmount(r.Fee), formatAmount(r.Paid),
		})
	}
	return s
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func colName(n int) string {
	s := ""
	for n > 0 {
		n--
		s = string(rune('A'+(n%26))) + s
		n /= 26
	}
	return s
}

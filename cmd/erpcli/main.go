// Command erpcli is a terminal front end over the same services the API
// serves. It is meant for office staff working on a shell account.
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/campuserp/campuserp/internal/app/services"
	"github.com/campuserp/campuserp/internal/bootstrap"
	"github.com/campuserp/campuserp/internal/pkg/logger"
)

type cli struct {
	in   *bufio.Reader
	deps *bootstrap.Dependencies
}

func main() {
	_ = godotenv.Load()

	cfg, lgr, err := bootstrap.LoadConfigAndSetupLogger()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		os.Exit(1)
	}

	dbPool, err := bootstrap.SetupDatabase(cfg, lgr)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to setup database")
		os.Exit(1)
	}
	defer dbPool.Close()

	deps, err := bootstrap.BuildDependencies(cfg, dbPool, lgr)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to setup dependencies")
		os.Exit(1)
	}

	c := &cli{in: bufio.NewReader(os.Stdin), deps: deps}
	c.run()
}

func (c *cli) run() {
	for {
		fmt.Println()
		fmt.Println("==== Campus ERP ====")
		fmt.Println(" 1. Add student")
		fmt.Println(" 2. List students")
		fmt.Println(" 3. Student profile")
		fmt.Println(" 4. Add hostel room")
		fmt.Println(" 5. Allocate room")
		fmt.Println(" 6. Record hostel payment")
		fmt.Println(" 7. Register route")
		fmt.Println(" 8. Assign student to route")
		fmt.Println(" 9. Record transport payment")
		fmt.Println("10. Occupancy report")
		fmt.Println("11. Transport fee report")
		fmt.Println(" 0. Exit")

		switch c.prompt("Choice") {
		case "1":
			c.addStudent()
		case "2":
			c.listStudents()
		case "3":
			c.studentProfile()
		case "4":
			c.addRoom()
		case "5":
			c.allocateRoom()
		case "6":
			c.recordPayment(true)
		case "7":
			c.registerRoute()
		case "8":
			c.assignRoute()
		case "9":
			c.recordPayment(false)
		case "10":
			c.occupancyReport()
		case "11":
			c.feeReport()
		case "0", "q", "exit":
			return
		default:
			fmt.Println("Unknown choice")
		}
	}
}

func (c *cli) prompt(label string) string {
	fmt.Printf("%s: ", label)
	line, _ := c.in.ReadString('\n')
	return strings.TrimSpace(line)
}

func (c *cli) promptID(label string) (int64, error) {
	v, err := strconv.ParseInt(c.prompt(label), 10, 64)
	if err != nil || v <= 0 {
		return 0, errors.New("expected a positive integer")
	}
	return v, nil
}

func (c *cli) promptAmount(label string) (float64, error) {
	v, err := strconv.ParseFloat(c.prompt(label), 64)
	if err != nil {
		return 0, errors.New("expected a number")
	}
	return v, nil
}

func ctx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 10*time.Second)
}

func (c *cli) addStudent() {
	in := services.AddStudentInput{
		Name:       c.prompt("Name"),
		RollNo:     c.prompt("Roll no (optional)"),
		Department: c.prompt("Department (optional)"),
		Contact:    c.prompt("Contact (optional)"),
		Address:    c.prompt("Address (optional)"),
		Username:   c.prompt("Login username (optional)"),
	}
	if in.Username != "" {
		in.Password = c.prompt("Login password")
	}

	cx, cancel := ctx()
	defer cancel()
	id, err := c.deps.StudentService.AddStudent(cx, in)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	fmt.Println("Student created with id", id)
}

func (c *cli) listStudents() {
	cx, cancel := ctx()
	defer cancel()
	students, err := c.deps.StudentService.ListStudents(cx)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	for _, s := range students {
		roll := ""
		if s.RollNo != nil {
			roll = *s.RollNo
		}
		fmt.Printf("%4d  %-25s %s\n", s.ID, s.Name, roll)
	}
	fmt.Println(len(students), "students")
}

func (c *cli) studentProfile() {
	id, err := c.promptID("Student id")
	if err != nil {
		fmt.Println("Error:", err)
		return
	}

	cx, cancel := ctx()
	defer cancel()
	p, err := c.deps.ProfileService.GetStudentProfile(cx, id)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}

	fmt.Printf("Student: %s (id %d)\n", p.Student.Name, p.Student.ID)
	fmt.Printf("Hostel allocations: %d, transport allocations: %d\n",
		len(p.HostelAllocations), len(p.TransportAllocations))
	fmt.Printf("Hostel paid: %.2f, transport paid: %.2f\n", p.TotalHostelPaid, p.TotalTransportPaid)
	fmt.Printf("Route fees: %.2f, dues: %.2f\n", p.TotalRouteFee, p.TotalDues)
}

func (c *cli) addRoom() {
	block := c.prompt("Block")
	roomNo := c.prompt("Room no")
	capacity, _ := strconv.Atoi(c.prompt("Capacity"))

	cx, cancel := ctx()
	defer cancel()
	id, err := c.deps.HostelService.AddRoom(cx, block, roomNo, capacity)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	fmt.Println("Room created with id", id)
}

func (c *cli) allocateRoom() {
	studentID, err := c.promptID("Student id")
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	roomID, err := c.promptID("Room id")
	if err != nil {
		fmt.Println("Error:", err)
		return
	}

	cx, cancel := ctx()
	defer cancel()
	id, err := c.deps.HostelService.AllocateRoom(cx, studentID, roomID, time.Time{})
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	fmt.Println("Allocation created with id", id)
}

func (c *cli) recordPayment(hostel bool) {
	studentID, err := c.promptID("Student id")
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	amount, err := c.promptAmount("Amount")
	if err != nil {
		fmt.Println("Error:", err)
		return
	}

	cx, cancel := ctx()
	defer cancel()
	var receipt string
	if hostel {
		p, err := c.deps.HostelService.RecordHostelPayment(cx, studentID, amount, time.Time{})
		if err != nil {
			fmt.Println("Error:", err)
			return
		}
		receipt = p.ReceiptNo
	} else {
		p, err := c.deps.TransportService.RecordTransportPayment(cx, studentID, amount, time.Time{})
		if err != nil {
			fmt.Println("Error:", err)
			return
		}
		receipt = p.ReceiptNo
	}
	fmt.Println("Payment recorded, receipt", receipt)
}

func (c *cli) registerRoute() {
	name := c.prompt("Route name")
	pickup := c.prompt("Pickup location")
	fee, err := c.promptAmount("Fee")
	if err != nil {
		fmt.Println("Error:", err)
		return
	}

	var busID *int64
	if v := c.prompt("Bus id (optional)"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			fmt.Println("Error: expected a bus id")
			return
		}
		busID = &id
	}

	cx, cancel := ctx()
	defer cancel()
	id, err := c.deps.TransportService.RegisterRoute(cx, name, pickup, busID, fee)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	fmt.Println("Route created with id", id)
}

func (c *cli) assignRoute() {
	studentID, err := c.promptID("Student id")
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	routeID, err := c.promptID("Route id")
	if err != nil {
		fmt.Println("Error:", err)
		return
	}

	cx, cancel := ctx()
	defer cancel()
	id, err := c.deps.TransportService.AssignStudentToRoute(cx, studentID, routeID)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	fmt.Println("Assignment created with id", id)
}

func (c *cli) occupancyReport() {
	cx, cancel := ctx()
	defer cancel()
	rows, err := c.deps.HostelService.OccupancyReport(cx)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	fmt.Printf("%-10s %-10s %8s %9s\n", "Block", "Room", "Capacity", "Occupants")
	for _, r := range rows {
		fmt.Printf("%-10s %-10s %8d %9d\n", r.Block, r.RoomNo, r.Capacity, r.Occupants)
	}
}

func (c *cli) feeReport() {
	cx, cancel := ctx()
	defer cancel()
	rows, err := c.deps.TransportService.TransportFeeReport(cx)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	fmt.Printf("%-25s %-20s %10s %10s\n", "Student", "Route", "Fee", "Paid")
	for _, r := range rows {
		fmt.Printf("%-25s %-20s %10.2f %10.2f\n", r.StudentName, r.RouteName, r.Fee, r.Paid)
	}
}

package services

import (
	"context"
	"strings"

	"github.com/campuserp/campuserp/internal/app/models"
	"github.com/campuserp/campuserp/internal/app/repositories"
	"github.com/campuserp/campuserp/internal/pkg/apperrors"
	"github.com/campuserp/campuserp/internal/pkg/auth"
	"github.com/campuserp/campuserp/internal/pkg/logger"
)

// StudentService handles student records and their optional credentials.
type StudentService struct {
	studentRepo *repositories.StudentRepository
	userRepo    *repositories.UserRepository
}

// NewStudentService creates a new student service.
func NewStudentService(studentRepo *repositories.StudentRepository, userRepo *repositories.UserRepository) *StudentService {
	return &StudentService{
		studentRepo: studentRepo,
		userRepo:    userRepo,
	}
}

// AddStudentInput carries new student data. Optional fields stay empty.
type AddStudentInput struct {
	Name       string
	RollNo     string
	Department string
	Contact    string
	Address    string
	Username   string
	Password   string
}

// AddStudent inserts a student and, when both username and password are
// provided, a student-role credential pointing at it. The two inserts are
// separate statements: a username collision leaves the student row committed.
func (s *StudentService) AddStudent(ctx context.Context, in AddStudentInput) (int64, error) {
	if strings.TrimSpace(in.Name) == "" {
		return 0, apperrors.NewValidationError("student name cannot be empty")
	}

	student := &models.Student{
		Name:       in.Name,
		RollNo:     optional(in.RollNo),
		Department: optional(in.Department),
		Contact:    optional(in.Contact),
		Address:    optional(in.Address),
	}

	if err := s.studentRepo.Create(ctx, student); err != nil {
		return 0, err
	}

	if in.Username != "" && in.Password != "" {
		hash, err := auth.HashPassword(in.Password)
		if err != nil {
			return 0, err
		}
		user := &models.User{
			Username:  in.Username,
			Password:  hash,
			Role:      models.RoleStudent,
			StudentID: &student.ID,
		}
		if err := s.userRepo.Create(ctx, user); err != nil {
			return 0, err
		}
	}

	logger.Info().Int64("studentId", student.ID).Str("name", in.Name).Msg("Student created")
	return student.ID, nil
}

// GetStudent retrieves a student by id.
func (s *StudentService) GetStudent(ctx context.Context, id int64) (*models.Student, error) {
	return s.studentRepo.GetByID(ctx, id)
}

// ListStudents returns all students.
func (s *StudentService) ListStudents(ctx context.Context) ([]*models.Student, error) {
	return s.studentRepo.GetAll(ctx)
}

// UpdateStudent applies a partial update.
func (s *StudentService) UpdateStudent(ctx context.Context, id int64, upd models.StudentUpdate) error {
	if upd.IsEmpty() {
		return nil
	}
	return s.studentRepo.Update(ctx, id, upd)
}

// DeleteStudent removes the credential (if any) and the student row. Hostel
// and transport history referencing the student stays behind.
func (s *StudentService) DeleteStudent(ctx context.Context, id int64) error {
	if err := s.userRepo.DeleteByStudentID(ctx, id); err != nil {
		return err
	}
	if err := s.studentRepo.Delete(ctx, id); err != nil {
		return err
	}

	logger.Info().Int64("studentId", id).Msg("Student deleted")
	return nil
}

// optional maps "" to nil for nullable columns.
func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

package dto

// CreateStudentRequest carries new student data. When both Username and
// Password are set a student-role credential is created alongside.
type CreateStudentRequest struct {
	Name       string `json:"name" binding:"required"`
	RollNo     string `json:"rollNo"`
	Department string `json:"department"`
	Contact    string `json:"contact"`
	Address    string `json:"address"`
	Username   string `json:"username"`
	Password   string `json:"password"`
}

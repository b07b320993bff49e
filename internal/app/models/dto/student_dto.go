package dto

import (
	"github.com/yigit/mathplan/internal/app/models"
	"github.com/yigit/mathplan/internal/domain/mathplan"
)

// SaveStudentRecordRequest replaces the academic record of a student.
type SaveStudentRecordRequest struct {
	Name       string                     `json:"name" validate:"max=200"`
	Majors     []string                   `json:"majors" validate:"dive,required"`
	Completed  []mathplan.CompletedCourse `json:"completed" validate:"dive"`
	Transfers  []mathplan.TransferCredit  `json:"transfers" validate:"dive"`
	Placements []mathplan.PlacementResult `json:"placements" validate:"dive"`
}

// ToModel builds the stored record of studentID.
func (r SaveStudentRecordRequest) ToModel(studentID string) *models.StudentRecord {
	return &models.StudentRecord{
		Student: models.Student{
			ID:     studentID,
			Name:   r.Name,
			Majors: r.Majors,
		},
		Completed:  r.Completed,
		Transfers:  r.Transfers,
		Placements: r.Placements,
	}
}

// StudentRecordResponse is a stored academic record with its totals.
type StudentRecordResponse struct {
	*models.StudentRecord
	TransferCredits float64 `json:"transferCredits"`
}

// NewStudentRecordResponse maps a stored record.
func NewStudentRecordResponse(rec *models.StudentRecord) StudentRecordResponse {
	return StudentRecordResponse{
		StudentRecord:   rec,
		TransferCredits: rec.ToDomain().TransferCreditTotal(),
	}
}

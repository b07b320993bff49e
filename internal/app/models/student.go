package models

import (
	"time"

	"github.com/yigit/mathplan/internal/domain/mathplan"
)

// Student represents a row of the students table with its selected majors.
type Student struct {
	ID        string    `json:"id" db:"id" yaml:"id" validate:"required,max=64"`
	Name      string    `json:"name" db:"name" yaml:"name"`
	Majors    []string  `json:"majors" yaml:"majors" validate:"dive,required"`
	CreatedAt time.Time `json:"createdAt" db:"created_at" yaml:"-"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at" yaml:"-"`
}

// StudentRecord is a student together with their completed, transferred and placement rows.
type StudentRecord struct {
	Student    Student                    `json:"student" yaml:"student" validate:"required"`
	Completed  []mathplan.CompletedCourse `json:"completed" yaml:"completed" validate:"dive"`
	Transfers  []mathplan.TransferCredit  `json:"transfers" yaml:"transfers" validate:"dive"`
	Placements []mathplan.PlacementResult `json:"placements" yaml:"placements" validate:"dive"`
}

// ToDomain returns the record the planner measures plans against.
func (r *StudentRecord) ToDomain() *mathplan.StudentRecord {
	return &mathplan.StudentRecord{
		StudentID:  r.Student.ID,
		Completed:  r.Completed,
		Transfers:  r.Transfers,
		Placements: r.Placements,
	}
}

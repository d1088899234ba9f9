package models

import "time"

// Department is the top level of the catalog hierarchy.
type Department struct {
	ID        int       `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// Course belongs to a department.
type Course struct {
	ID           int       `db:"id" json:"id"`
	DepartmentID int       `db:"department_id" json:"departmentId"`
	Name         string    `db:"name" json:"name"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
}

// Class belongs to a course and owns content items.
type Class struct {
	ID        int       `db:"id" json:"id"`
	CourseID  int       `db:"course_id" json:"courseId"`
	Name      string    `db:"name" json:"name"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

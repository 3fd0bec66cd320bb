package entity

type Course struct {
	Base       `bson:",inline"`
	CourseID   int64  `json:"Course_ID,omitempty" bson:"Course_ID,omitempty" validate:"required"`
	CourseName string `json:"Course_name,omitempty" bson:"Course_name,omitempty" validate:"required,max=100"`
	Credits    int    `json:"Credits,omitempty" bson:"Credits,omitempty" validate:"required,gt=0"`
	CatalogNo  string `json:"Catalog_no,omitempty" bson:"Catalog_no,omitempty" validate:"required,max=50"`
	AcademicYr int    `json:"Academic_yr,omitempty" bson:"Academic_yr,omitempty" validate:"required,gt=0"`
}

type Subject struct {
	Base               `bson:",inline"`
	SubjectID          int64  `json:"Subject_ID,omitempty" bson:"Subject_ID,omitempty" validate:"required"`
	SubjectName        string `json:"SubjectName,omitempty" bson:"SubjectName,omitempty" validate:"required,max=100"`
	SubjectDescription string `json:"SubjectDescription,omitempty" bson:"SubjectDescription,omitempty" validate:"omitempty,max=500"`
	CourseID           int64  `json:"Course_ID,omitempty" bson:"Course_ID,omitempty" validate:"required"`
}

type Department struct {
	Base           `bson:",inline"`
	DepartmentID   int64  `json:"Department_ID,omitempty" bson:"Department_ID,omitempty" validate:"required"`
	DepartmentName string `json:"Department_Name,omitempty" bson:"Department_Name,omitempty" validate:"required,max=100"`
	DepartmentHead string `json:"Department_Head,omitempty" bson:"Department_Head,omitempty" validate:"required,max=50"`
}

type Enrollment struct {
	Base           `bson:",inline"`
	EnrollmentID   int64  `json:"Enrollment_ID,omitempty" bson:"Enrollment_ID,omitempty" validate:"required"`
	StudentID      int64  `json:"Student_ID,omitempty" bson:"Student_ID,omitempty" validate:"required"`
	CourseID       int64  `json:"Course_ID,omitempty" bson:"Course_ID,omitempty" validate:"required"`
	EnrollmentDate string `json:"EnrollmentDate,omitempty" bson:"EnrollmentDate,omitempty" validate:"required,date"`
}

// Grade has no required fields; partial grade sheets are accepted.
type Grade struct {
	Base      `bson:",inline"`
	GradeID   int64   `json:"Grade_ID,omitempty" bson:"Grade_ID,omitempty"`
	StudentID int64   `json:"Student_ID,omitempty" bson:"Student_ID,omitempty"`
	SubjDesc  string  `json:"Subj_desc,omitempty" bson:"Subj_desc,omitempty"`
	Units     float64 `json:"Units,omitempty" bson:"Units,omitempty"`
	Credits   float64 `json:"Credits,omitempty" bson:"Credits,omitempty"`
	Remarks   string  `json:"Remarks,omitempty" bson:"Remarks,omitempty"`
}

type Schedule struct {
	Base       `bson:",inline"`
	ScheduleID int64   `json:"Schedule_ID,omitempty" bson:"Schedule_ID,omitempty"`
	CourseID   int64   `json:"Course_ID,omitempty" bson:"Course_ID,omitempty"`
	Teacher    string  `json:"Teacher,omitempty" bson:"Teacher,omitempty"`
	Days       string  `json:"Days,omitempty" bson:"Days,omitempty"`
	ClassTime  string  `json:"Class_time,omitempty" bson:"Class_time,omitempty"`
	Room       string  `json:"Room,omitempty" bson:"Room,omitempty"`
	Lecture    float64 `json:"Lecture,omitempty" bson:"Lecture,omitempty"`
	Laboratory float64 `json:"Laboratory,omitempty" bson:"Laboratory,omitempty"`
	Units      float64 `json:"Units,omitempty" bson:"Units,omitempty"`
}

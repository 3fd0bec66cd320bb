package entity

type Student struct {
	Base          `bson:",inline"`
	StudentID     int64  `json:"Student_ID,omitempty" bson:"Student_ID,omitempty" validate:"required"`
	StudentStatus string `json:"StudentStatus,omitempty" bson:"StudentStatus,omitempty" validate:"required,oneof=Active Inactive Graduated Dropped"`
	YearLevel     int    `json:"YearLevel,omitempty" bson:"YearLevel,omitempty" validate:"required,min=1,max=6"`
	FirstName     string `json:"FirstName,omitempty" bson:"FirstName,omitempty" validate:"required,max=50"`
	LastName      string `json:"LastName,omitempty" bson:"LastName,omitempty" validate:"required,max=50"`
	MiddleName    string `json:"MiddleName,omitempty" bson:"MiddleName,omitempty" validate:"omitempty,max=50"`
	Address       string `json:"Address,omitempty" bson:"Address,omitempty" validate:"required,max=255"`
	Email         string `json:"Email,omitempty" bson:"Email,omitempty" validate:"required,email"`
	Phone         int64  `json:"Phone,omitempty" bson:"Phone,omitempty" validate:"required"`
	DateOfBirth   string `json:"DateOfBirth,omitempty" bson:"DateOfBirth,omitempty" validate:"required,date"`
	PlaceOfBirth  string `json:"PlaceOfBirth,omitempty" bson:"PlaceOfBirth,omitempty" validate:"required,max=100"`
	Sex           string `json:"Sex,omitempty" bson:"Sex,omitempty" validate:"required,oneof=Male Female Other"`
	Religion      string `json:"Religion,omitempty" bson:"Religion,omitempty" validate:"required,max=50"`
	Nationality   string `json:"Nationality,omitempty" bson:"Nationality,omitempty" validate:"required,max=50"`
	CivilStatus   string `json:"CivilStatus,omitempty" bson:"CivilStatus,omitempty" validate:"required,oneof=Single Married Divorced Widowed"`
	Occupation    string `json:"Occupation,omitempty" bson:"Occupation,omitempty" validate:"omitempty,max=100"`
	WorkAddress   string `json:"WorkAddress,omitempty" bson:"WorkAddress,omitempty" validate:"omitempty,max=255"`
	CourseID      int64  `json:"Course_ID,omitempty" bson:"Course_ID,omitempty" validate:"required"`
	SubjectID     int64  `json:"Subject_ID,omitempty" bson:"Subject_ID,omitempty" validate:"required"`
	EnrollmentID  int64  `json:"Enrollment_ID,omitempty" bson:"Enrollment_ID,omitempty" validate:"required"`
}

type Faculty struct {
	Base         `bson:",inline"`
	FacultyID    int64  `json:"Faculty_ID,omitempty" bson:"Faculty_ID,omitempty" validate:"required"`
	FirstName    string `json:"First_Name,omitempty" bson:"First_Name,omitempty" validate:"required,max=50"`
	LastName     string `json:"Last_Name,omitempty" bson:"Last_Name,omitempty" validate:"required,max=50"`
	Gender       string `json:"Gender,omitempty" bson:"Gender,omitempty" validate:"required,oneof=Male Female Other"`
	Age          int    `json:"Age,omitempty" bson:"Age,omitempty" validate:"required,gt=0"`
	Email        string `json:"Email,omitempty" bson:"Email,omitempty" validate:"required,email"`
	Contact      string `json:"Contact,omitempty" bson:"Contact,omitempty" validate:"required"`
	FacultyRole  string `json:"Faculty_Role,omitempty" bson:"Faculty_Role,omitempty" validate:"required"`
	DepartmentID int64  `json:"Department_ID,omitempty" bson:"Department_ID,omitempty" validate:"required"`
	LeaveID      int64  `json:"Leave_ID,omitempty" bson:"Leave_ID,omitempty" validate:"required"`
	AttendanceID int64  `json:"Attendance_ID,omitempty" bson:"Attendance_ID,omitempty" validate:"required"`
	StudentGrade string `json:"Student_Grade,omitempty" bson:"Student_Grade,omitempty" validate:"required"`
}

type Attendance struct {
	Base         `bson:",inline"`
	AttendanceID int64  `json:"Attendance_ID,omitempty" bson:"Attendance_ID,omitempty" validate:"required"`
	Date         string `json:"Date,omitempty" bson:"Date,omitempty" validate:"required,date"`
	Status       string `json:"Status,omitempty" bson:"Status,omitempty" validate:"required,oneof=Present Absent Late Excused"`
}

type Leave struct {
	Base      `bson:",inline"`
	LeaveID   int64  `json:"Leave_ID,omitempty" bson:"Leave_ID,omitempty" validate:"required"`
	LeaveType string `json:"Leave_Type,omitempty" bson:"Leave_Type,omitempty"`
	FacultyID int64  `json:"Faculty_ID,omitempty" bson:"Faculty_ID,omitempty" validate:"required"`
	Date      string `json:"Date,omitempty" bson:"Date,omitempty" validate:"required,date"`
	Status    string `json:"Status,omitempty" bson:"Status,omitempty"`
}

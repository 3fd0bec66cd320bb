package entity

type Book struct {
	Base              `bson:",inline"`
	BookID            int64  `json:"Book_ID,omitempty" bson:"Book_ID,omitempty" validate:"required,gt=0"`
	StudentID         int64  `json:"Student_ID,omitempty" bson:"Student_ID,omitempty" validate:"omitempty,gt=0"`
	Title             string `json:"Title,omitempty" bson:"Title,omitempty" validate:"required,max=200"`
	Author            string `json:"Author,omitempty" bson:"Author,omitempty" validate:"required,max=100"`
	Publisher         string `json:"Publisher,omitempty" bson:"Publisher,omitempty" validate:"omitempty,max=100"`
	YearOfPublication string `json:"Year_of_Publication,omitempty" bson:"Year_of_Publication,omitempty" validate:"omitempty,date"`
	AvailableCopies   *int   `json:"Available_Copies,omitempty" bson:"Available_Copies,omitempty" validate:"required,min=0"`
	TotalCopies       *int   `json:"Total_Copies,omitempty" bson:"Total_Copies,omitempty" validate:"required,min=0"`
	CategoryID        int64  `json:"Category_ID,omitempty" bson:"Category_ID,omitempty" validate:"required,gt=0"`
	ShelfID           int64  `json:"Shelf_ID,omitempty" bson:"Shelf_ID,omitempty" validate:"required,gt=0"`
}

type Category struct {
	Base         `bson:",inline"`
	CategoryID   int64  `json:"Category_ID,omitempty" bson:"Category_ID,omitempty" validate:"required,gt=0"`
	CategoryName string `json:"Category_Name,omitempty" bson:"Category_Name,omitempty" validate:"required,max=100"`
}

type Shelf struct {
	Base       `bson:",inline"`
	ShelfID    int64  `json:"Shelf_ID,omitempty" bson:"Shelf_ID,omitempty" validate:"required"`
	ShelfName  string `json:"Shelf_Name,omitempty" bson:"Shelf_Name,omitempty" validate:"required,max=100"`
	CategoryID int64  `json:"Category_ID,omitempty" bson:"Category_ID,omitempty" validate:"required"`
	Location   string `json:"Location,omitempty" bson:"Location,omitempty" validate:"required,max=200"`
}

type Librarian struct {
	Base        `bson:",inline"`
	LibrarianID int64  `json:"Librarian_ID,omitempty" bson:"Librarian_ID,omitempty" validate:"required"`
	Name        string `json:"Name,omitempty" bson:"Name,omitempty" validate:"required,max=100"`
	Email       string `json:"Email,omitempty" bson:"Email,omitempty" validate:"required,email"`
	PhoneNumber int64  `json:"Phone_Number,omitempty" bson:"Phone_Number,omitempty" validate:"required"`
}

// Transaction records a book loan.
type Transaction struct {
	Base          `bson:",inline"`
	TransactionID int64    `json:"Transaction_ID,omitempty" bson:"Transaction_ID,omitempty" validate:"required"`
	StudentID     int64    `json:"Student_ID,omitempty" bson:"Student_ID,omitempty" validate:"required"`
	BookID        int64    `json:"Book_ID,omitempty" bson:"Book_ID,omitempty" validate:"required"`
	FacultyID     int64    `json:"Faculty_ID,omitempty" bson:"Faculty_ID,omitempty" validate:"required"`
	BorrowDate    string   `json:"Borrow_Date,omitempty" bson:"Borrow_Date,omitempty" validate:"required,date"`
	ReturnDate    string   `json:"Return_Date,omitempty" bson:"Return_Date,omitempty" validate:"required,date"`
	Fine          *float64 `json:"Fine,omitempty" bson:"Fine,omitempty" validate:"required,min=0"`
}

type Fine struct {
	Base          `bson:",inline"`
	FineID        int64    `json:"Fine_ID,omitempty" bson:"Fine_ID,omitempty" validate:"required"`
	StudentID     int64    `json:"Student_ID,omitempty" bson:"Student_ID,omitempty" validate:"required"`
	TransactionID int64    `json:"Transaction_ID,omitempty" bson:"Transaction_ID,omitempty" validate:"required"`
	Amount        *float64 `json:"Amount,omitempty" bson:"Amount,omitempty" validate:"required,min=0"`
	Status        string   `json:"Status,omitempty" bson:"Status,omitempty" validate:"required,max=20"`
}

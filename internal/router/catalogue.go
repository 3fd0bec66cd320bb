package router

import (
	"github.com/Abdurahmanit/GroupProject/campus-service/internal/adapter/memory"
	mongoadapter "github.com/Abdurahmanit/GroupProject/campus-service/internal/adapter/mongo"
	"github.com/Abdurahmanit/GroupProject/campus-service/internal/domain/entity"
	"github.com/Abdurahmanit/GroupProject/campus-service/internal/platform/logger"
	"github.com/Abdurahmanit/GroupProject/campus-service/internal/repository"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
)

// Backend says where catalogue stores live. A nil DB selects the
// in-memory driver.
type Backend struct {
	DB     *mongo.Database
	Logger *logger.Logger
}

func openStore[T entity.Entity](b Backend, collection, keyField string, newRecord func() T) repository.EntityStore[T] {
	if b.DB == nil {
		return memory.NewEntityStore(keyField, newRecord)
	}
	return mongoadapter.NewCollection(b.DB, collection, keyField, newRecord, b.Logger)
}

type catalogueEntry struct {
	Path       string
	Collection string
	KeyField   string
	mount      func(r chi.Router, b Backend, deps Deps)
}

func resource[T entity.Entity](path, collection, keyField string, newRecord func() T) catalogueEntry {
	return catalogueEntry{
		Path:       path,
		Collection: collection,
		KeyField:   keyField,
		mount: func(r chi.Router, b Backend, deps Deps) {
			MountResource(r, ResourceRoute[T]{
				Name:  path,
				Store: openStore(b, collection, keyField, newRecord),
				New:   newRecord,
			}, deps)
		},
	}
}

var catalogue = []catalogueEntry{
	resource("attendance", "attendances", "Attendance_ID", func() *entity.Attendance { return &entity.Attendance{} }),
	resource("book", "books", "Book_ID", func() *entity.Book { return &entity.Book{} }),
	resource("category", "categories", "Category_ID", func() *entity.Category { return &entity.Category{} }),
	resource("course", "courses", "Course_ID", func() *entity.Course { return &entity.Course{} }),
	resource("department", "departments", "Department_ID", func() *entity.Department { return &entity.Department{} }),
	resource("enrollment", "enrollments", "Enrollment_ID", func() *entity.Enrollment { return &entity.Enrollment{} }),
	resource("faculty", "faculties", "Faculty_ID", func() *entity.Faculty { return &entity.Faculty{} }),
	resource("fine", "fines", "Fine_ID", func() *entity.Fine { return &entity.Fine{} }),
	resource("grade", "grades", "Grade_ID", func() *entity.Grade { return &entity.Grade{} }),
	resource("leave", "leaves", "Leave_ID", func() *entity.Leave { return &entity.Leave{} }),
	resource("librarian", "librarians", "Librarian_ID", func() *entity.Librarian { return &entity.Librarian{} }),
	resource("schedule", "schedules", "Schedule_ID", func() *entity.Schedule { return &entity.Schedule{} }),
	resource("shelf", "shelves", "Shelf_ID", func() *entity.Shelf { return &entity.Shelf{} }),
	resource("student", "students", "Student_ID", func() *entity.Student { return &entity.Student{} }),
	resource("subject", "subjects", "Subject_ID", func() *entity.Subject { return &entity.Subject{} }),
	resource("transaction", "transactions", "Transaction_ID", func() *entity.Transaction { return &entity.Transaction{} }),
}

// MountCatalogue mounts every campus resource.
func MountCatalogue(r chi.Router, b Backend, deps Deps) {
	for _, e := range catalogue {
		e.mount(r, b, deps)
	}
}

// Resources lists the mounted resource paths.
func Resources() []string {
	names := make([]string, 0, len(catalogue))
	for _, e := range catalogue {
		names = append(names, e.Path)
	}
	return names
}

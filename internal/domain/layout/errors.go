package layout

import "errors"

var (
	ErrCourseNotFound      = errors.New("course not found")
	ErrLayoutNotFound      = errors.New("layout not found")
	ErrLayoutExists        = errors.New("layout with same name already exists for course")
	ErrDuplicateHoleNumber = errors.New("hole numbers must be unique within a layout")
)

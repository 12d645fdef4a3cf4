package course

import "errors"

var (
	ErrCourseNotFound   = errors.New("course not found")
	ErrCourseExists     = errors.New("course with same name in same location already exists")
	ErrLocationNotFound = errors.New("location not found")
)

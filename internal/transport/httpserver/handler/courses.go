package handler

import (
	"errors"
	"net/http"

	coursedomain "scorekeeper/internal/domain/course"
	"scorekeeper/pkg/logger"
)

type courseRequest struct {
	Name  string   `json:"name" validate:"required"`
	Lat   *float64 `json:"lat" validate:"required,gte=-90,lte=90"`
	Lon   *float64 `json:"lon" validate:"required,gte=-180,lte=180"`
	City  string   `json:"city" validate:"required"`
	State string   `json:"state" validate:"required"`
}

func (req courseRequest) input() coursedomain.CourseInput {
	return coursedomain.CourseInput{
		Name:  req.Name,
		City:  req.City,
		State: req.State,
		Lat:   *req.Lat,
		Lon:   *req.Lon,
	}
}

type courseResponse struct {
	ID    uint    `json:"id"`
	Name  string  `json:"name"`
	Lat   float64 `json:"lat"`
	Lon   float64 `json:"lon"`
	City  string  `json:"city"`
	State string  `json:"state"`
}

func (h *Handlers) ListCourses(w http.ResponseWriter, r *http.Request) {
	courses, err := h.Courses.ListCourses(r.Context())
	if err != nil {
		h.logger(r).InternalError("courses.list: list courses failed", err)
		writeInternalError(w)
		return
	}

	items := make([]courseResponse, 0, len(courses))
	for i := range courses {
		items = append(items, toCourseResponse(&courses[i]))
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"courses": items})
}

func (h *Handlers) GetCourse(w http.ResponseWriter, r *http.Request) {
	courseID, ok := pathID(r, "courseId")
	if !ok {
		writeNotFound(w, "course_not_found", "course not found")
		return
	}

	result, err := h.Courses.GetCourse(r.Context(), courseID)
	if err != nil {
		writeCourseError(w, h.logger(r), "courses.get", err, courseID)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"course": toCourseResponse(result)})
}

func (h *Handlers) CreateCourse(w http.ResponseWriter, r *http.Request) {
	var req courseRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}
	if fields := h.validate(req); fields != nil {
		writeValidationError(w, fields)
		return
	}

	result, err := h.Courses.CreateCourse(r.Context(), req.input())
	if err != nil {
		writeCourseError(w, h.logger(r), "courses.create", err, 0)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{"course": toCourseResponse(result)})
}

func (h *Handlers) UpdateCourse(w http.ResponseWriter, r *http.Request) {
	courseID, ok := pathID(r, "courseId")
	if !ok {
		writeNotFound(w, "course_not_found", "course not found")
		return
	}

	var req courseRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}
	if fields := h.validate(req); fields != nil {
		writeValidationError(w, fields)
		return
	}

	result, err := h.Courses.UpdateCourse(r.Context(), courseID, req.input())
	if err != nil {
		writeCourseError(w, h.logger(r), "courses.update", err, courseID)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"course": toCourseResponse(result)})
}

// DeleteCourse answers 204 whether or not the course existed.
func (h *Handlers) DeleteCourse(w http.ResponseWriter, r *http.Request) {
	courseID, ok := pathID(r, "courseId")
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	if err := h.Courses.DeleteCourse(r.Context(), courseID); err != nil {
		writeCourseError(w, h.logger(r), "courses.delete", err, courseID)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func writeCourseError(w http.ResponseWriter, log logger.Logger, op string, err error, courseID uint) {
	switch {
	case errors.Is(err, coursedomain.ErrCourseNotFound):
		log.BusinessError(op+": course not found", err, "course_id", courseID)
		writeNotFound(w, "course_not_found", "course not found")
	case errors.Is(err, coursedomain.ErrCourseExists):
		log.BusinessError(op+": course exists", err, "course_id", courseID)
		writeError(w, http.StatusConflict, "course_exists", err.Error())
	default:
		log.InternalError(op+": failed", err, "course_id", courseID)
		writeInternalError(w)
	}
}

func toCourseResponse(c *coursedomain.Course) courseResponse {
	return courseResponse{
		ID:    c.ID,
		Name:  c.Name,
		Lat:   c.Location.Lat,
		Lon:   c.Location.Lon,
		City:  c.Location.City,
		State: c.Location.State,
	}
}

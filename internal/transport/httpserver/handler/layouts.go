package handler

import (
	"errors"
	"net/http"

	layoutdomain "scorekeeper/internal/domain/layout"
	"scorekeeper/pkg/logger"
)

type holeRequest struct {
	Number   int  `json:"number" validate:"required,gt=0"`
	Par      int  `json:"par" validate:"required,gt=0"`
	Distance *int `json:"distance" validate:"required,gte=0"`
}

type layoutRequest struct {
	Name  string        `json:"name" validate:"required"`
	Holes []holeRequest `json:"holes" validate:"required,min=1,dive"`
}

func (req layoutRequest) input() layoutdomain.LayoutInput {
	holes := make([]layoutdomain.HoleInput, 0, len(req.Holes))
	for _, hole := range req.Holes {
		holes = append(holes, layoutdomain.HoleInput{
			Number:   hole.Number,
			Par:      hole.Par,
			Distance: *hole.Distance,
		})
	}
	return layoutdomain.LayoutInput{Name: req.Name, Holes: holes}
}

type holeResponse struct {
	Number   int `json:"number"`
	Par      int `json:"par"`
	Distance int `json:"distance"`
}

type layoutResponse struct {
	ID    uint           `json:"id"`
	Name  string         `json:"name"`
	Holes []holeResponse `json:"holes"`
}

func (h *Handlers) ListLayouts(w http.ResponseWriter, r *http.Request) {
	courseID, ok := pathID(r, "courseId")
	if !ok {
		writeNotFound(w, "course_not_found", "course not found")
		return
	}

	layouts, err := h.Layouts.ListLayouts(r.Context(), courseID)
	if err != nil {
		writeLayoutError(w, h.logger(r), "layouts.list", err, courseID, 0)
		return
	}

	items := make([]layoutResponse, 0, len(layouts))
	for i := range layouts {
		items = append(items, toLayoutResponse(&layouts[i]))
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"layouts": items})
}

func (h *Handlers) GetLayout(w http.ResponseWriter, r *http.Request) {
	courseID, layoutID, ok := layoutPath(w, r)
	if !ok {
		return
	}

	result, err := h.Layouts.GetLayout(r.Context(), courseID, layoutID)
	if err != nil {
		writeLayoutError(w, h.logger(r), "layouts.get", err, courseID, layoutID)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"layout": toLayoutResponse(result)})
}

func (h *Handlers) CreateLayout(w http.ResponseWriter, r *http.Request) {
	courseID, ok := pathID(r, "courseId")
	if !ok {
		writeNotFound(w, "course_not_found", "course not found")
		return
	}

	var req layoutRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}
	if fields := h.validate(req); fields != nil {
		writeValidationError(w, fields)
		return
	}

	result, err := h.Layouts.CreateLayout(r.Context(), courseID, req.input())
	if err != nil {
		writeLayoutError(w, h.logger(r), "layouts.create", err, courseID, 0)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{"layout": toLayoutResponse(result)})
}

func (h *Handlers) UpdateLayout(w http.ResponseWriter, r *http.Request) {
	courseID, layoutID, ok := layoutPath(w, r)
	if !ok {
		return
	}

	var req layoutRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}
	if fields := h.validate(req); fields != nil {
		writeValidationError(w, fields)
		return
	}

	result, err := h.Layouts.UpdateLayout(r.Context(), courseID, layoutID, req.input())
	if err != nil {
		writeLayoutError(w, h.logger(r), "layouts.update", err, courseID, layoutID)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"layout": toLayoutResponse(result)})
}

func (h *Handlers) DeleteLayout(w http.ResponseWriter, r *http.Request) {
	courseID, layoutID, ok := layoutPath(w, r)
	if !ok {
		return
	}

	if err := h.Layouts.DeleteLayout(r.Context(), courseID, layoutID); err != nil {
		writeLayoutError(w, h.logger(r), "layouts.delete", err, courseID, layoutID)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func layoutPath(w http.ResponseWriter, r *http.Request) (uint, uint, bool) {
	courseID, ok := pathID(r, "courseId")
	if !ok {
		writeNotFound(w, "course_not_found", "course not found")
		return 0, 0, false
	}
	layoutID, ok := pathID(r, "layoutId")
	if !ok {
		writeNotFound(w, "layout_not_found", "layout not found")
		return 0, 0, false
	}
	return courseID, layoutID, true
}

func writeLayoutError(w http.ResponseWriter, log logger.Logger, op string, err error, courseID, layoutID uint) {
	switch {
	case errors.Is(err, layoutdomain.ErrCourseNotFound):
		log.BusinessError(op+": course not found", err, "course_id", courseID)
		writeNotFound(w, "course_not_found", "course not found")
	case errors.Is(err, layoutdomain.ErrLayoutNotFound):
		log.BusinessError(op+": layout not found", err, "course_id", courseID, "layout_id", layoutID)
		writeNotFound(w, "layout_not_found", "layout not found")
	case errors.Is(err, layoutdomain.ErrLayoutExists):
		log.BusinessError(op+": layout exists", err, "course_id", courseID)
		writeError(w, http.StatusConflict, "layout_exists", err.Error())
	case errors.Is(err, layoutdomain.ErrDuplicateHoleNumber):
		log.BusinessError(op+": duplicate hole number", err, "course_id", courseID)
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
	default:
		log.InternalError(op+": failed", err, "course_id", courseID, "layout_id", layoutID)
		writeInternalError(w)
	}
}

func toLayoutResponse(l *layoutdomain.Layout) layoutResponse {
	holes := make([]holeResponse, 0, len(l.Holes))
	for _, hole := range l.Holes {
		holes = append(holes, holeResponse{
			Number:   hole.Number,
			Par:      hole.Par,
			Distance: hole.Distance,
		})
	}
	return layoutResponse{ID: l.ID, Name: l.Name, Holes: holes}
}

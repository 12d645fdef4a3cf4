package handler

import (
	"errors"
	"net/http"
	"time"

	scorecarddomain "scorekeeper/internal/domain/scorecard"
	"scorekeeper/pkg/logger"
)

const scoreCardTimeLayout = "2006-01-02T15:04:05.000Z07:00"

type scoreRequest struct {
	Number  int `json:"number" validate:"required,gt=0"`
	Strokes int `json:"strokes" validate:"required,gt=0"`
}

type createScoreCardRequest struct {
	LayoutID uint           `json:"layoutId" validate:"required"`
	Datetime string         `json:"datetime" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
	Scores   []scoreRequest `json:"scores" validate:"required,dive"`
}

type updateScoreCardRequest struct {
	Datetime string         `json:"datetime" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
	Scores   []scoreRequest `json:"scores" validate:"required,dive"`
}

type scoreResponse struct {
	Number  int `json:"number"`
	Strokes int `json:"strokes"`
}

type scoreCardResponse struct {
	ID       uint            `json:"id"`
	CourseID uint            `json:"courseId"`
	LayoutID uint            `json:"layoutId"`
	Datetime string          `json:"datetime"`
	Scores   []scoreResponse `json:"scores"`
}

func (h *Handlers) ListScoreCards(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(r, "userId")
	if !ok {
		writeNotFound(w, "user_not_found", "user not found")
		return
	}

	cards, err := h.ScoreCards.ListScoreCards(r.Context(), userID)
	if err != nil {
		writeScoreCardError(w, h.logger(r), "scorecards.list", err, userID, 0)
		return
	}

	items := make([]scoreCardResponse, 0, len(cards))
	for i := range cards {
		items = append(items, toScoreCardResponse(&cards[i]))
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"scoreCards": items})
}

func (h *Handlers) GetScoreCard(w http.ResponseWriter, r *http.Request) {
	userID, cardID, ok := scoreCardPath(w, r)
	if !ok {
		return
	}

	result, err := h.ScoreCards.GetScoreCard(r.Context(), userID, cardID)
	if err != nil {
		writeScoreCardError(w, h.logger(r), "scorecards.get", err, userID, cardID)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"scoreCard": toScoreCardResponse(result)})
}

func (h *Handlers) CreateScoreCard(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(r, "userId")
	if !ok {
		writeNotFound(w, "user_not_found", "user not found")
		return
	}

	var req createScoreCardRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}
	if fields := h.validate(req); fields != nil {
		writeValidationError(w, fields)
		return
	}
	date, err := time.Parse(time.RFC3339, req.Datetime)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "datetime must be an ISO-8601 date time")
		return
	}

	log := h.logger(r)
	result, err := h.ScoreCards.CreateScoreCard(r.Context(), userID, scorecarddomain.CreateInput{
		LayoutID: req.LayoutID,
		Date:     date,
		Scores:   toScoreInputs(req.Scores),
	})
	if err != nil {
		if errors.Is(err, scorecarddomain.ErrLayoutNotFound) {
			log.BusinessError("scorecards.create: layout not found", err, "user_id", userID, "layout_id", req.LayoutID)
			writeError(w, http.StatusBadRequest, "layout_not_found", "layout not found")
			return
		}
		writeScoreCardError(w, log, "scorecards.create", err, userID, 0)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{"scoreCard": toScoreCardResponse(result)})
}

func (h *Handlers) UpdateScoreCard(w http.ResponseWriter, r *http.Request) {
	userID, cardID, ok := scoreCardPath(w, r)
	if !ok {
		return
	}

	var req updateScoreCardRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}
	if fields := h.validate(req); fields != nil {
		writeValidationError(w, fields)
		return
	}
	date, err := time.Parse(time.RFC3339, req.Datetime)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "datetime must be an ISO-8601 date time")
		return
	}

	result, err := h.ScoreCards.UpdateScoreCard(r.Context(), userID, cardID, scorecarddomain.UpdateInput{
		Date:   date,
		Scores: toScoreInputs(req.Scores),
	})
	if err != nil {
		writeScoreCardError(w, h.logger(r), "scorecards.update", err, userID, cardID)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"scoreCard": toScoreCardResponse(result)})
}

func (h *Handlers) DeleteScoreCard(w http.ResponseWriter, r *http.Request) {
	userID, cardID, ok := scoreCardPath(w, r)
	if !ok {
		return
	}

	if err := h.ScoreCards.DeleteScoreCard(r.Context(), userID, cardID); err != nil {
		writeScoreCardError(w, h.logger(r), "scorecards.delete", err, userID, cardID)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func scoreCardPath(w http.ResponseWriter, r *http.Request) (uint, uint, bool) {
	userID, ok := pathID(r, "userId")
	if !ok {
		writeNotFound(w, "user_not_found", "user not found")
		return 0, 0, false
	}
	cardID, ok := pathID(r, "scoreId")
	if !ok {
		writeNotFound(w, "score_card_not_found", "score card not found")
		return 0, 0, false
	}
	return userID, cardID, true
}

func writeScoreCardError(w http.ResponseWriter, log logger.Logger, op string, err error, userID, cardID uint) {
	switch {
	case errors.Is(err, scorecarddomain.ErrUserNotFound):
		log.BusinessError(op+": user not found", err, "user_id", userID)
		writeNotFound(w, "user_not_found", "user not found")
	case errors.Is(err, scorecarddomain.ErrScoreCardNotFound):
		log.BusinessError(op+": score card not found", err, "user_id", userID, "score_card_id", cardID)
		writeNotFound(w, "score_card_not_found", "score card not found")
	case errors.Is(err, scorecarddomain.ErrLayoutNotFound):
		log.BusinessError(op+": layout not found", err, "user_id", userID, "score_card_id", cardID)
		writeNotFound(w, "layout_not_found", "layout not found")
	case errors.Is(err, scorecarddomain.ErrUnknownHole):
		log.BusinessError(op+": unknown hole", err, "user_id", userID)
		writeError(w, http.StatusBadRequest, "unknown_hole", err.Error())
	case errors.Is(err, scorecarddomain.ErrDuplicateHoleNumber):
		log.BusinessError(op+": duplicate hole number", err, "user_id", userID)
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
	default:
		log.InternalError(op+": failed", err, "user_id", userID, "score_card_id", cardID)
		writeInternalError(w)
	}
}

func toScoreInputs(scores []scoreRequest) []scorecarddomain.ScoreInput {
	inputs := make([]scorecarddomain.ScoreInput, 0, len(scores))
	for _, score := range scores {
		inputs = append(inputs, scorecarddomain.ScoreInput{Number: score.Number, Strokes: score.Strokes})
	}
	return inputs
}

func toScoreCardResponse(c *scorecarddomain.ScoreCard) scoreCardResponse {
	scores := make([]scoreResponse, 0, len(c.Scores))
	for _, score := range c.Scores {
		scores = append(scores, scoreResponse{Number: score.HoleNumber, Strokes: score.Strokes})
	}
	return scoreCardResponse{
		ID:       c.ID,
		CourseID: c.CourseID,
		LayoutID: c.LayoutID,
		Datetime: c.Date.UTC().Format(scoreCardTimeLayout),
		Scores:   scores,
	}
}

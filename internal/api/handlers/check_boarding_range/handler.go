package check_boarding_range

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers"
	checkBoardingRange "github.com/m04kA/SMC-AvailabilityService/internal/usecase/check_boarding_range"
)

const (
	msgInvalidSitterID  = "некорректный ID ситтера"
	msgMissingRange     = "параметры start и end обязательны"
	msgInvalidDateRange = "некорректные даты заезда и выезда"
	msgRangeTooLong     = "слишком длинная передержка"
	msgInvalidInputData = "некорректные параметры запроса"
)

type Handler struct {
	useCase CheckBoardingRangeUseCase
	logger  Logger
}

func NewHandler(useCase CheckBoardingRangeUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/sitters/{sitterId}/boarding/check
// Query params: start, end (required, YYYY-MM-DD, включительно)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	sitterID, err := strconv.ParseInt(vars["sitterId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /sitters/{id}/boarding/check - Invalid sitter ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSitterID)
		return
	}

	start, end := r.URL.Query().Get("start"), r.URL.Query().Get("end")
	if start == "" || end == "" {
		h.logger.Warn("GET /sitters/{id}/boarding/check - Missing range: start=%q, end=%q", start, end)
		handlers.RespondBadRequest(w, msgMissingRange)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &checkBoardingRange.Request{
		SitterID:  sitterID,
		StartDate: start,
		EndDate:   end,
	})
	if err != nil {
		switch {
		case errors.Is(err, checkBoardingRange.ErrInvalidDateRange):
			handlers.RespondBadRequest(w, msgInvalidDateRange)

		case errors.Is(err, checkBoardingRange.ErrRangeTooLong):
			handlers.RespondBadRequest(w, msgRangeTooLong)

		case errors.Is(err, checkBoardingRange.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidInputData)

		default:
			h.logger.Error("GET /sitters/{id}/boarding/check - Failed to check range: sitter_id=%d, start=%s, end=%s, error=%v",
				sitterID, start, end, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /sitters/{id}/boarding/check - Range checked: sitter_id=%d, status=%s", sitterID, result.Result.Status)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}

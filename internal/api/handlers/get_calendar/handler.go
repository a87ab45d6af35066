package get_calendar

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers"
	getCalendar "github.com/m04kA/SMC-AvailabilityService/internal/usecase/get_calendar"
)

const (
	msgInvalidSitterID  = "некорректный ID ситтера"
	msgMissingRange     = "параметры from и to обязательны"
	msgInvalidDateRange = "некорректный диапазон дат, ожидается YYYY-MM-DD и from <= to"
	msgRangeTooLong     = "слишком длинный диапазон дат"
	msgUnknownService   = "неизвестная услуга"
	msgInvalidInputData = "некорректные параметры запроса"
)

type Handler struct {
	useCase GetCalendarUseCase
	logger  Logger
}

func NewHandler(useCase GetCalendarUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/sitters/{sitterId}/calendar
// Query params: from, to (required, YYYY-MM-DD), services (optional, через запятую)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	sitterID, err := strconv.ParseInt(vars["sitterId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /sitters/{id}/calendar - Invalid sitter ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSitterID)
		return
	}

	query := r.URL.Query()
	from, to := query.Get("from"), query.Get("to")
	if from == "" || to == "" {
		h.logger.Warn("GET /sitters/{id}/calendar - Missing range: from=%q, to=%q", from, to)
		handlers.RespondBadRequest(w, msgMissingRange)
		return
	}

	result, err := h.useCase.Execute(r.Context(), ToUseCaseRequest(sitterID, from, to, query.Get("services")))
	if err != nil {
		switch {
		case errors.Is(err, getCalendar.ErrInvalidDateRange):
			handlers.RespondBadRequest(w, msgInvalidDateRange)

		case errors.Is(err, getCalendar.ErrRangeTooLong):
			handlers.RespondBadRequest(w, msgRangeTooLong)

		case errors.Is(err, getCalendar.ErrUnknownService):
			handlers.RespondBadRequest(w, msgUnknownService)

		case errors.Is(err, getCalendar.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidInputData)

		default:
			h.logger.Error("GET /sitters/{id}/calendar - Failed to build calendar: sitter_id=%d, from=%s, to=%s, error=%v",
				sitterID, from, to, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /sitters/{id}/calendar - Calendar built successfully: sitter_id=%d, days=%d", sitterID, len(result.Days))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}

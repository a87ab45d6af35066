package get_day_slots

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers"
	getDaySlots "github.com/m04kA/SMC-AvailabilityService/internal/usecase/get_day_slots"
)

const (
	msgInvalidSitterID  = "некорректный ID ситтера"
	msgMissingDate      = "дата обязательна"
	msgInvalidDate      = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidDuration  = "некорректная длительность"
	msgUnknownService   = "неизвестная услуга"
	msgInvalidInputData = "некорректные параметры запроса"
)

type Handler struct {
	useCase GetDaySlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetDaySlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/sitters/{sitterId}/services/{service}/slots
// Query params: date (required, YYYY-MM-DD), duration (optional, минуты)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	// Извлекаем sitterId из URL
	sitterID, err := strconv.ParseInt(vars["sitterId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /sitters/{id}/services/{service}/slots - Invalid sitter ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSitterID)
		return
	}

	// Извлекаем date из query параметров
	date := r.URL.Query().Get("date")
	if date == "" {
		h.logger.Warn("GET /sitters/{id}/services/{service}/slots - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	// Формируем запрос к use case
	useCaseReq, err := ToUseCaseRequest(sitterID, vars["service"], date, r.URL.Query().Get("duration"))
	if err != nil {
		h.logger.Warn("GET /sitters/{id}/services/{service}/slots - Invalid duration: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDuration)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		// Обработка ошибок use case
		switch {
		case errors.Is(err, getDaySlots.ErrUnknownService):
			h.logger.Warn("GET /sitters/{id}/services/{service}/slots - Unknown service: %s", vars["service"])
			handlers.RespondNotFound(w, msgUnknownService)

		case errors.Is(err, getDaySlots.ErrInvalidDate):
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, getDaySlots.ErrInvalidDuration):
			handlers.RespondBadRequest(w, msgInvalidDuration)

		case errors.Is(err, getDaySlots.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidInputData)

		default:
			h.logger.Error("GET /sitters/{id}/services/{service}/slots - Failed to get slots: sitter_id=%d, service=%s, date=%s, error=%v",
				sitterID, vars["service"], date, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Формируем HTTP ответ
	response := FromUseCaseResponse(result)

	h.logger.Info("GET /sitters/{id}/services/{service}/slots - Slots retrieved successfully: sitter_id=%d, service=%s, date=%s, slots_count=%d",
		sitterID, vars["service"], date, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, response)
}

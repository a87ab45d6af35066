package get_service_config

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers"
	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/serviceconfig"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/serviceconfig/models"
)

const (
	msgInvalidSitterID = "некорректный ID ситтера"
	msgUnknownService  = "неизвестная услуга"
)

type Handler struct {
	service ConfigService
	logger  Logger
}

func NewHandler(service ConfigService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/sitters/{sitterId}/services/{service}/config
// Если конфигурация не сохранена - возвращаются дефолтные значения (isDefault=true)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	sitterID, err := strconv.ParseInt(vars["sitterId"], 10, 64)
	if err != nil || sitterID <= 0 {
		h.logger.Warn("GET /sitters/{id}/services/{service}/config - Invalid sitter ID: %s", vars["sitterId"])
		handlers.RespondBadRequest(w, msgInvalidSitterID)
		return
	}

	result, err := h.service.GetEffective(r.Context(), &models.GetConfigRequest{
		SitterID: sitterID,
		Service:  domain.ServiceType(vars["service"]),
	})
	if err != nil {
		switch {
		case errors.Is(err, serviceconfig.ErrUnknownService):
			h.logger.Warn("GET /sitters/{id}/services/{service}/config - Unknown service: %s", vars["service"])
			handlers.RespondNotFound(w, msgUnknownService)

		case errors.Is(err, serviceconfig.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidSitterID)

		default:
			h.logger.Error("GET /sitters/{id}/services/{service}/config - Failed to get config: sitter_id=%d, error=%v",
				sitterID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /sitters/{id}/services/{service}/config - Config retrieved: sitter_id=%d, service=%s, default=%t",
		sitterID, result.Service, result.IsDefault)
	handlers.RespondJSON(w, http.StatusOK, result)
}

package handler

import (
	"errors"
	"myflix_api/internal/common"
	"myflix_api/internal/common/validation"
	"net/http"

	"go.uber.org/zap"
)

type validationResponse struct {
	Errors validation.Errors `json:"errors"`
}

// respondWithServiceError writes err with the status its kind maps to.
// Missing and duplicate user messages go out as plain text. Internal errors
// are logged and replaced by a generic message.
func respondWithServiceError(w http.ResponseWriter, r *http.Request, logger *zap.Logger, err error) {
	var verrs validation.Errors
	if errors.As(err, &verrs) {
		common.RespondWithJSON(w, http.StatusUnprocessableEntity, validationResponse{Errors: verrs})
		return
	}

	status := common.HTTPStatusFromError(err)
	if errors.Is(err, common.ErrNotFound) || errors.Is(err, common.ErrConflict) {
		common.RespondWithText(w, status, common.PublicMessage(err))
		return
	}
	if status == http.StatusInternalServerError {
		logger.Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
	}
	common.RespondWithError(w, status, common.PublicMessage(err))
}

package middleware

import (
	"fmt"
	"net/http"

	"yumexpress-be/internal/logger"
	"yumexpress-be/internal/utils"

	"go.uber.org/zap"
)

func RecoveryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				logger.FromCtx(r.Context()).Error("panic recovered",
					zap.String("path", r.URL.Path),
					zap.Error(fmt.Errorf("%v", rec)),
				)
				utils.WriteJSONError(w, "Internal server error", http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

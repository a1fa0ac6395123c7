package app

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/Spok95/hifz-contest/internal/auth"
	"github.com/Spok95/hifz-contest/internal/ctxutil"
	"github.com/Spok95/hifz-contest/internal/db"
	"github.com/Spok95/hifz-contest/internal/importer"
	"github.com/Spok95/hifz-contest/internal/metrics"
	"github.com/Spok95/hifz-contest/internal/observability"
)

const msgGeneric = "حدث خطأ، حاول مرة أخرى"

type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

func JSONResponse(w http.ResponseWriter, code int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(data)
}

func ErrorResponse(w http.ResponseWriter, code int, message string) {
	JSONResponse(w, code, errorBody{Error: http.StatusText(code), Message: message})
}

// parseJSON читает тело не больше 1 МБ.
func parseJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	defer func() { _ = r.Body.Close() }()
	return json.NewDecoder(r.Body).Decode(v)
}

// fail раскладывает ошибку по HTTP-кодам. Неизвестные ошибки: 500, лог и Sentry.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	var (
		ve *importer.ValidationError
		pe *paramError
	)
	switch {
	case errors.As(err, &pe):
		ErrorResponse(w, http.StatusBadRequest, pe.msg)
	case errors.As(err, &ve):
		JSONResponse(w, http.StatusUnprocessableEntity, errorBody{
			Error: http.StatusText(http.StatusUnprocessableEntity), Message: ve.Reason, Field: ve.Field,
		})
	case errors.Is(err, db.ErrNotFound):
		ErrorResponse(w, http.StatusNotFound, "غير موجود")
	case errors.Is(err, db.ErrDuplicate):
		ErrorResponse(w, http.StatusConflict, "المتسابق مسجل مسبقاً")
	case errors.Is(err, auth.ErrInvalidCredentials):
		ErrorResponse(w, http.StatusUnauthorized, "اسم المستخدم أو كلمة المرور غير صحيحة")
	case errors.Is(err, auth.ErrForbidden):
		ErrorResponse(w, http.StatusForbidden, "غير مصرح")
	default:
		op, _ := ctxutil.Op(r.Context())
		s.log.Error("request failed",
			zap.String("op", op),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
		metrics.HandlerErrors.Inc()
		observability.CaptureErrWith(err, map[string]string{"op": op, "path": r.URL.Path})
		ErrorResponse(w, http.StatusInternalServerError, msgGeneric)
	}
}

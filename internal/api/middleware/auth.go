package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/m04kA/CHS-ReservationService/internal/api/handlers"
	"github.com/m04kA/CHS-ReservationService/internal/domain"
)

// Заголовки, которыми API-шлюз передаёт личность жильца.
// Сервис доверяет шлюзу и сам токены не проверяет.
const (
	HeaderUserID     = "X-User-ID"
	HeaderUnitNumber = "X-Unit-Number"
	HeaderUserRole   = "X-User-Role"
)

const msgMissingIdentity = "запрос без идентификации пользователя"

type actorKey struct{}

// Auth извлекает актора из заголовков шлюза и кладёт его в контекст запроса.
// Запросы без корректной идентификации отклоняются с 401.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, err := strconv.ParseInt(r.Header.Get(HeaderUserID), 10, 64)
		if err != nil || userID <= 0 {
			handlers.RespondUnauthorized(w, msgMissingIdentity)
			return
		}

		role := domain.Role(r.Header.Get(HeaderUserRole))
		if !role.IsValid() {
			handlers.RespondUnauthorized(w, msgMissingIdentity)
			return
		}

		// Номер квартиры обязателен только для жильцов
		unitNumber := 0
		if raw := r.Header.Get(HeaderUnitNumber); raw != "" {
			unitNumber, err = strconv.Atoi(raw)
			if err != nil || unitNumber < 0 {
				handlers.RespondUnauthorized(w, msgMissingIdentity)
				return
			}
		}
		if role == domain.RoleResident && unitNumber == 0 {
			handlers.RespondUnauthorized(w, msgMissingIdentity)
			return
		}

		actor := domain.Actor{
			UserID:     userID,
			UnitNumber: unitNumber,
			Role:       role,
		}

		ctx := context.WithValue(r.Context(), actorKey{}, actor)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ActorFromContext возвращает актора запроса. Второе значение false
// означает, что запрос прошёл мимо Auth-middleware.
func ActorFromContext(ctx context.Context) (domain.Actor, bool) {
	actor, ok := ctx.Value(actorKey{}).(domain.Actor)
	return actor, ok
}

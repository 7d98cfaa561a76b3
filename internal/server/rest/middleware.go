package rest

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/kcaldiary/kcaldiary/internal/common"
	"github.com/kcaldiary/kcaldiary/internal/server/auth"
	"github.com/kcaldiary/kcaldiary/internal/server/models"
)

type ctxKey string

const memberKey ctxKey = "member"

// MemberFromContext returns the member the middleware resolved for this
// request.
func MemberFromContext(ctx context.Context) (*models.Member, bool) {
	member, ok := ctx.Value(memberKey).(*models.Member)
	return member, ok
}

// withMember authenticates the request's bearer token and loads the member
// it names into the request context. A token for a member that no longer
// exists is a 404, everything else wrong with the token is a 401.
func (s *RESTServer) withMember(next http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get(common.AuthorizationHeaderName)
		token, ok := strings.CutPrefix(header, common.BearerSchemePrefix)
		if !ok || token == "" {
			writeError(w, http.StatusUnauthorized, "missing token")
			return
		}

		memberID, err := auth.GetMemberIDFromToken(token, s.jwtSecret)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "invalid token")
			return
		}

		member, err := s.members.GetByID(r.Context(), memberID)
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				writeError(w, http.StatusNotFound, "member not found")
				return
			}
			s.logger.Error(r.Context(), "error resolving member", "member", memberID, "error", err)
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		ctx := context.WithValue(r.Context(), memberKey, member)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/go-petr/pet-wallet/pkg/web"
)

// Scheme routing headers.
const (
	FSPIOPSourceHeader      = "FSPIOP-Source"
	FSPIOPDestinationHeader = "FSPIOP-Destination"
)

// ErrSourceNotAllowed indicates a callback from an FSP that is not configured as a peer.
var ErrSourceNotAllowed = errors.New("fspiop source is not allowed")

// AllowedSources rejects scheme requests whose FSPIOP-Source is not in allowed.
//
// An empty list lets every source through.
func AllowedSources(allowed []string) gin.HandlerFunc {
	set := make(map[string]struct{}, len(allowed))
	for _, s := range allowed {
		set[s] = struct{}{}
	}

	return func(c *gin.Context) {
		if len(set) == 0 {
			c.Next()
			return
		}

		source := c.GetHeader(FSPIOPSourceHeader)
		if _, ok := set[source]; !ok {
			zerolog.Ctx(c.Request.Context()).Warn().Str("source", source).Msg("rejected scheme request")
			c.AbortWithStatusJSON(http.StatusForbidden, web.Response{Error: ErrSourceNotAllowed.Error()})

			return
		}

		c.Next()
	}
}

package router

import (
	"net/http"
	"regexp"

	"github.com/gin-gonic/gin"

	"neocommerce.in/storefront/pkg/global"
	"neocommerce.in/storefront/pkg/notify"
	"neocommerce.in/storefront/pkg/storage"
)

const ClientIDHeader = "X-Client-ID"

const (
	clientIDKey  = "client_id"
	clientKVKey  = "client_store"
	collectorKey = "notifications"
)

var clientIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

// ClientMiddleware resolves the calling client and gives the request its own slice of storage
// and a fresh toast collector.
func ClientMiddleware(store storage.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		clientID := c.GetHeader(ClientIDHeader)
		if clientID == "" {
			c.JSON(http.StatusBadRequest, global.ErrorResponse("client id header required", []global.ValidationError{
				{Field: ClientIDHeader, Message: ClientIDHeader + " header is required", Code: "required"},
			}))
			c.Abort()
			return
		}
		if !clientIDPattern.MatchString(clientID) {
			c.JSON(http.StatusBadRequest, global.ErrorResponse("invalid client id", []global.ValidationError{
				{Field: ClientIDHeader, Message: "Client id must be 1-64 letters, digits, '-' or '_'", Code: "invalid_format"},
			}))
			c.Abort()
			return
		}

		c.Set(clientIDKey, clientID)
		c.Set(clientKVKey, storage.Namespace(store, clientID))
		c.Set(collectorKey, notify.NewCollector())
		c.Next()
	}
}

func clientStore(c *gin.Context) storage.Store {
	return c.MustGet(clientKVKey).(storage.Store)
}

func collector(c *gin.Context) *notify.Collector {
	if v, ok := c.Get(collectorKey); ok {
		return v.(*notify.Collector)
	}
	return nil
}

package api

import (
	stdhttp "net/http"
	"reflect"
	"strings"
	"sync"

	intconfig "dataconnector/internal/config"
	h "dataconnector/internal/http/handlers"
	"dataconnector/internal/http/middleware"
	"dataconnector/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
)

var tagNameOnce sync.Once

func NewRouter(env intconfig.Env, svc services.DataService) *gin.Engine {
	useFormTagNames()

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), middleware.Recovery(), middleware.CORS(env.AllowedOrigins()))

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Warn().Err(err).Msg("failed to set trusted proxies")
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{"detail": "Not Found"})
	})

	data := h.DataHandler{Service: svc}

	r.GET("/health", h.Health)
	r.GET("/routes", h.Routes)
	r.GET("/sources", h.Sources)
	r.GET("/data", data.GetData)

	h.SetRouter(r)
	return r
}

// useFormTagNames makes validation errors report query parameter names
// instead of Go field names.
func useFormTagNames() {
	tagNameOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
			if name == "" || name == "-" {
				return fld.Name
			}
			return name
		})
	})
}

package bootstrap

import "github.com/gin-gonic/gin"

func SetGinMode(env string, debug bool) {
	switch {
	case debug:
		gin.SetMode(gin.DebugMode)
	case env == "production":
		gin.SetMode(gin.ReleaseMode)
	}
}

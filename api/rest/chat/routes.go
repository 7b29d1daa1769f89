package chat

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	mgin "github.com/ulule/limiter/v3/drivers/middleware/gin"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

// per-client cap on generation calls
const chatRequestsPerMinute = 30

func RegisterRoutes(router *gin.RouterGroup, answerer Answerer) {
	rate := limiter.Rate{
		Period: time.Minute,
		Limit:  chatRequestsPerMinute,
	}

	rateMiddleware := mgin.NewMiddleware(limiter.New(memory.NewStore(), rate))

	router.POST("/chat", rateMiddleware, Handler(answerer))
}

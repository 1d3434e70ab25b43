package fcm

import (
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"fcmrelay/appconfig"
	"fcmrelay/metrics"
	"fcmrelay/middleware"
)

const (
	apiKeyHeader = "x-api-key"
	apiKeyQuery  = "api_key"

	configKey = "fcm.config"
)

// RegisterRoutes mounts the relay endpoints. Every method is routed so that
// the API key is checked before the method.
func (r *Relay) RegisterRoutes(router gin.IRouter) {
	guarded := router.Group("/api", r.RequireAPIKey(), r.RequirePost())
	guarded.Any("/send-notification", r.SendNotificationHandler)
	guarded.Any("/send-topic", r.SendTopicHandler)
}

// RequireAPIKey rejects requests whose x-api-key header (or api_key query
// parameter) does not match API_KEY. The configuration read here is stored
// on the context for the handler.
func (r *Relay) RequireAPIKey() gin.HandlerFunc {
	return func(c *gin.Context) {
		cfg := appconfig.Load()
		if !validAPIKey(c, cfg.APIKey) {
			r.fail(c, ErrUnauthorized)
			return
		}
		c.Set(configKey, cfg)
		c.Next()
	}
}

// RequirePost rejects anything but POST.
func (r *Relay) RequirePost() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodPost {
			r.fail(c, ErrMethodNotAllowed)
			return
		}
		c.Next()
	}
}

func validAPIKey(c *gin.Context, expected string) bool {
	supplied := c.GetHeader(apiKeyHeader)
	if supplied == "" {
		supplied = c.Query(apiKeyQuery)
	}
	if supplied == "" || expected == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(supplied), []byte(expected)) == 1
}

// SendNotificationHandler relays one notification to a single device token.
func (r *Relay) SendNotificationHandler(c *gin.Context) {
	var req NotificationRequest
	if err := bindPayload(c, &req, msgMissingFields); err != nil {
		r.fail(c, err)
		return
	}

	result, err := r.Dispatch(c.Request.Context(), requestConfig(c), req)
	if err != nil {
		r.fail(c, err)
		return
	}

	if !result.OK() {
		r.logFailure(c, KindUpstream, fmt.Sprintf("FCM responded with status %d", result.StatusCode))
		metrics.ObserveRequest(c.FullPath(), string(KindUpstream))
		if json.Valid(result.Body) {
			c.Data(result.StatusCode, "application/json; charset=utf-8", result.Body)
			return
		}
		c.JSON(result.StatusCode, gin.H{"error": upstreamText(result)})
		return
	}

	if !json.Valid(result.Body) {
		r.fail(c, fmt.Errorf("FCM returned a non-JSON response (status %d)", result.StatusCode))
		return
	}

	metrics.ObserveRequest(c.FullPath(), "ok")
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"fcm":     json.RawMessage(result.Body),
	})
}

// SendTopicHandler broadcasts one notification to a topic through the Admin SDK.
func (r *Relay) SendTopicHandler(c *gin.Context) {
	var req TopicRequest
	if err := bindPayload(c, &req, msgMissingTopic); err != nil {
		r.fail(c, err)
		return
	}

	cfg := requestConfig(c)
	if cfg.ProjectID == "" {
		r.fail(c, configurationError("FIREBASE_PROJECT_ID is not configured"))
		return
	}
	if _, err := ParseServiceAccount(cfg.ServiceAccountJSON); err != nil {
		r.fail(c, err)
		return
	}

	id, err := r.Topics.SendToTopic(c.Request.Context(), cfg, req)
	if err != nil {
		r.fail(c, err)
		return
	}

	r.Logger.Info("topic notification sent",
		zap.String("request_id", middleware.RequestID(c)),
		zap.String("topic", req.Topic),
		zap.String("message_id", id))
	metrics.ObserveRequest(c.FullPath(), "ok")
	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"messageId": id,
	})
}

func bindPayload(c *gin.Context, dst any, missingMsg string) error {
	err := c.ShouldBindJSON(dst)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.Is(err, io.EOF) || errors.As(err, &verrs) {
		return badRequest(missingMsg, nil)
	}
	return badRequest("invalid request body", err)
}

func requestConfig(c *gin.Context) appconfig.Config {
	if v, ok := c.Get(configKey); ok {
		if cfg, ok := v.(appconfig.Config); ok {
			return cfg
		}
	}
	return appconfig.Load()
}

func upstreamText(result *SendResult) string {
	if text := strings.TrimSpace(string(result.Body)); text != "" {
		return text
	}
	return http.StatusText(result.StatusCode)
}

// fail logs err, counts it and writes the {"error": ...} response.
func (r *Relay) fail(c *gin.Context, err error) {
	status, kind, message := classify(err)
	r.logFailure(c, kind, message)
	metrics.ObserveRequest(c.FullPath(), string(kind))
	c.AbortWithStatusJSON(status, gin.H{"error": message})
}

func (r *Relay) logFailure(c *gin.Context, kind ErrorKind, message string) {
	fields := []zap.Field{
		zap.String("request_id", middleware.RequestID(c)),
		zap.String("route", c.FullPath()),
		zap.String("outcome", string(kind)),
		zap.String("error", message),
	}
	if kind == KindUnknown || kind == KindConfiguration || kind == KindCredential {
		r.Logger.Error("relay request failed", fields...)
		return
	}
	r.Logger.Warn("relay request rejected", fields...)
}

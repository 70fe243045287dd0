package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	apperrors "github.com/aurumascend/raisesignal-backend/errors"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	testCases := []struct {
		name               string
		err                error
		ginErrorType       gin.ErrorType
		expectedStatusCode int
		expectedBody       map[string]any
		absentFields       []string
		expectedHeaders    map[string]string
		debugMode          bool
	}{
		{
			name:               "Validation error includes details",
			err:                apperrors.ValidationFailed("validation_failed", "fullName: is required; email: must be a valid email address"),
			ginErrorType:       gin.ErrorTypePublic,
			expectedStatusCode: http.StatusBadRequest,
			expectedBody: map[string]any{
				"success": false,
				"type":    string(apperrors.ValidationError),
				"message": "Submission validation failed",
				"details": "fullName: is required; email: must be a valid email address",
				"code":    "400",
			},
		},
		{
			name:               "Payload error includes details",
			err:                apperrors.InvalidPayload("invalid_attachment", "attachment must be a PDF document"),
			ginErrorType:       gin.ErrorTypePublic,
			expectedStatusCode: http.StatusBadRequest,
			expectedBody: map[string]any{
				"success": false,
				"type":    string(apperrors.PayloadError),
				"message": "Invalid request payload",
				"details": "attachment must be a PDF document",
			},
		},
		{
			name:               "Email delivery error hides provider detail",
			err:                apperrors.NewEmailDeliveryError(errors.New("resend: 401 invalid api key")),
			ginErrorType:       gin.ErrorTypePrivate,
			expectedStatusCode: http.StatusBadGateway,
			expectedBody: map[string]any{
				"success": false,
				"type":    string(apperrors.EmailDeliveryError),
				"message": "Failed to send your submission. Please try again later.",
			},
			absentFields: []string{"details"},
		},
		{
			name:               "Rate limit error sets Retry-After",
			err:                apperrors.RateLimitExceeded("Too many submissions. Please try again later.", 42),
			ginErrorType:       gin.ErrorTypePublic,
			expectedStatusCode: http.StatusTooManyRequests,
			expectedBody: map[string]any{
				"success": false,
				"type":    string(apperrors.RateLimitError),
				"message": "Too many submissions. Please try again later.",
			},
			expectedHeaders: map[string]string{"Retry-After": "42"},
		},
		{
			name:               "Gin bind error",
			err:                errors.New("invalid character '}' looking for beginning of value"),
			ginErrorType:       gin.ErrorTypeBind,
			expectedStatusCode: http.StatusBadRequest,
			expectedBody: map[string]any{
				"success": false,
				"type":    string(apperrors.PayloadError),
				"message": "Invalid request payload",
			},
			absentFields: []string{"details"},
		},
		{
			name:               "Unknown error - production mode",
			err:                errors.New("template render exploded"),
			ginErrorType:       gin.ErrorTypePrivate,
			expectedStatusCode: http.StatusInternalServerError,
			expectedBody: map[string]any{
				"success": false,
				"type":    string(apperrors.ServerError),
				"message": "Internal Server Error",
			},
			absentFields: []string{"details"},
		},
		{
			name:               "Unknown error - debug mode",
			err:                errors.New("template render exploded"),
			ginErrorType:       gin.ErrorTypePrivate,
			expectedStatusCode: http.StatusInternalServerError,
			expectedBody: map[string]any{
				"success": false,
				"type":    string(apperrors.ServerError),
				"message": "Internal Server Error",
				"details": "template render exploded",
			},
			debugMode: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if tc.debugMode {
				gin.SetMode(gin.DebugMode)
			} else {
				gin.SetMode(gin.ReleaseMode)
			}
			defer gin.SetMode(gin.TestMode)

			w := httptest.NewRecorder()
			_, r := gin.CreateTestContext(w)

			r.Use(ErrorHandler())
			r.GET("/test", func(ctx *gin.Context) {
				_ = ctx.Error(tc.err).SetType(tc.ginErrorType)
				ctx.Abort()
			})

			req, _ := http.NewRequest("GET", "/test", nil)
			r.ServeHTTP(w, req)

			assert.Equal(t, tc.expectedStatusCode, w.Code)

			var body map[string]any
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))

			for key, want := range tc.expectedBody {
				assert.Equal(t, want, body[key], "field %s", key)
			}
			for _, field := range tc.absentFields {
				assert.NotContains(t, body, field)
			}
			for header, want := range tc.expectedHeaders {
				assert.Equal(t, want, w.Header().Get(header))
			}
		})
	}
}

func TestErrorHandlerNoError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	_, r := gin.CreateTestContext(w)

	r.Use(ErrorHandler())
	r.GET("/test", func(ctx *gin.Context) {
		ctx.String(http.StatusOK, "OK")
	})

	req, _ := http.NewRequest("GET", "/test", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OK", w.Body.String())
}

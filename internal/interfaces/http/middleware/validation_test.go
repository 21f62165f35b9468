package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type validatedPayload struct {
	Email string `json:"email" binding:"required,email"`
	Name  string `json:"name" binding:"required,min=3"`
	Role  string `json:"role" binding:"omitempty,oneof=user admin"`
}

func TestFormatValidationErrors(t *testing.T) {
	gin.SetMode(gin.TestMode)
	SetupValidator()

	bind := func(body string) error {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")
		var p validatedPayload
		return c.ShouldBindJSON(&p)
	}

	t.Run("reports json field names", func(t *testing.T) {
		err := bind(`{"email":"not-an-email","name":"ab"}`)
		require.Error(t, err)

		resp := FormatValidationErrors(err, "req-123")
		require.NotNil(t, resp.Error)
		assert.False(t, resp.Success)
		assert.Equal(t, "req-123", resp.RequestID)
		require.Len(t, resp.Error.Details, 2)

		fields := map[string]string{}
		for _, d := range resp.Error.Details {
			fields[d.Field] = d.Message
		}
		assert.Equal(t, "Invalid email format", fields["email"])
		assert.Equal(t, "Must be at least 3 characters", fields["name"])
	})

	t.Run("required and oneof messages", func(t *testing.T) {
		err := bind(`{"email":"a@b.co","name":"abc","role":"root"}`)
		require.Error(t, err)

		resp := FormatValidationErrors(err, "")
		require.Len(t, resp.Error.Details, 1)
		assert.Equal(t, "role", resp.Error.Details[0].Field)
		assert.Equal(t, "Must be one of: user admin", resp.Error.Details[0].Message)
	})

	t.Run("non-validator error yields empty details", func(t *testing.T) {
		err := bind(`{invalid json`)
		require.Error(t, err)

		resp := FormatValidationErrors(err, "")
		require.NotNil(t, resp.Error)
		assert.Empty(t, resp.Error.Details)
	})
}

package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestMoneyValidation(t *testing.T) {
	gin.SetMode(gin.TestMode)
	SetupValidator()

	type payload struct {
		Amount string `json:"amount" binding:"required,money"`
	}

	engine := gin.New()
	engine.POST("/pay", func(c *gin.Context) {
		var p payload
		if err := c.ShouldBindJSON(&p); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"amount": p.Amount})
	})

	cases := []struct {
		name   string
		body   string
		status int
	}{
		{"valid amount", `{"amount":"120.50"}`, http.StatusOK},
		{"integer amount", `{"amount":"100"}`, http.StatusOK},
		{"zero", `{"amount":"0"}`, http.StatusOK},
		{"negative", `{"amount":"-5.00"}`, http.StatusBadRequest},
		{"too many decimals", `{"amount":"10.005"}`, http.StatusBadRequest},
		{"not a number", `{"amount":"ten cedis"}`, http.StatusBadRequest},
		{"missing", `{}`, http.StatusBadRequest},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/pay", strings.NewReader(tc.body))
			req.Header.Set("Content-Type", "application/json")
			engine.ServeHTTP(w, req)
			assert.Equal(t, tc.status, w.Code, tc.body)
		})
	}
}

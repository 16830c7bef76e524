package controllers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbelova/canvashare/utils"
)

func newAuthRouter(t *testing.T) (*gin.Engine, *AuthController) {
	t.Helper()
	loadTestConfig(t)
	db := newTestDB(t)
	ac := NewAuthController(db)
	r := gin.New()
	r.POST("/signup", ac.Signup)
	r.POST("/login", ac.Login)
	return r, ac
}

func TestSignupIssuesToken(t *testing.T) {
	r, _ := newAuthRouter(t)

	w := performJSON(t, r, http.MethodPost, "/signup", gin.H{
		"email":     "Anna@Example.com",
		"password":  "secret123",
		"full_name": "Anna",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var data struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}
	env := decodeData(t, w, &data)
	assert.Equal(t, 0, env.Code)
	assert.Equal(t, "bearer", data.TokenType)
	require.NotEmpty(t, data.AccessToken)

	claims, err := utils.ParseToken(data.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "anna@example.com", claims.Email)
}

func TestSignupRejectsDuplicateEmail(t *testing.T) {
	r, _ := newAuthRouter(t)

	payload := gin.H{"email": "dup@example.com", "password": "secret123"}
	w := performJSON(t, r, http.MethodPost, "/signup", payload)
	require.Equal(t, http.StatusOK, w.Code)

	w = performJSON(t, r, http.MethodPost, "/signup", payload)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSignupValidation(t *testing.T) {
	r, _ := newAuthRouter(t)

	cases := []struct {
		name    string
		payload gin.H
	}{
		{"missing email", gin.H{"password": "secret123"}},
		{"malformed email", gin.H{"email": "not-an-email", "password": "secret123"}},
		{"short password", gin.H{"email": "a@example.com", "password": "abc"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := performJSON(t, r, http.MethodPost, "/signup", tc.payload)
			assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		})
	}
}

func TestLogin(t *testing.T) {
	r, _ := newAuthRouter(t)

	w := performJSON(t, r, http.MethodPost, "/signup", gin.H{
		"email": "bo@example.com", "password": "secret123",
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = performJSON(t, r, http.MethodPost, "/login", gin.H{
		"email": "bo@example.com", "password": "wrong-pass",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "login failed", decodeEnvelope(t, w).Message)

	w = performJSON(t, r, http.MethodPost, "/login", gin.H{
		"email": "bo@example.com", "password": "secret123",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var data struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}
	decodeData(t, w, &data)
	assert.Equal(t, "bearer", data.TokenType)
	assert.NotEmpty(t, data.AccessToken)

	w = performJSON(t, r, http.MethodPost, "/login", gin.H{
		"email": "ghost@example.com", "password": "secret123",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestErrorUsesDefaultMessage(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	Error(c, http.StatusBadRequest, CodeSelfRequest, "", "")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.True(t, c.IsAborted())

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, CodeSelfRequest, body.Code)
	assert.Equal(t, Message(CodeSelfRequest), body.Message)
	assert.Empty(t, body.Details)
}

func TestSuccessWithData(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	Success(c, http.StatusCreated, CodeCreated, "Friend request sent successfully.", gin.H{"id": 7})

	assert.Equal(t, http.StatusCreated, w.Code)

	var body struct {
		Code    int            `json:"code"`
		Message string         `json:"message"`
		Data    map[string]int `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, CodeCreated, body.Code)
	assert.Equal(t, "Friend request sent successfully.", body.Message)
	assert.Equal(t, 7, body.Data["id"])
}

func TestMessageUnknownCode(t *testing.T) {
	assert.Empty(t, Message(1))
}

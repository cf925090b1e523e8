package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/hexanode/accounts/pkg/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newRegisterRouter wires only the register route. The handler gets a nil
// service: binding must reject bad requests before the service (and any
// storage behind it) is ever reached.
func newRegisterRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	require.NoError(t, validation.RegisterRules())

	r := gin.New()
	r.POST("/api/auth/register", NewAuthHandler(nil).Register)
	return r
}

func postRegister(t *testing.T, r *gin.Engine, body map[string]any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

type validationErrorBody struct {
	Message string `json:"message"`
	Errors  []struct {
		Field   string `json:"field"`
		Message string `json:"message"`
	} `json:"errors"`
}

func TestRegisterRejectsWeakPassword(t *testing.T) {
	r := newRegisterRouter(t)

	w := postRegister(t, r, map[string]any{
		"firstName": "Ada",
		"lastName":  "Lovelace",
		"email":     "ada@example.com",
		"password":  "alllowercase1",
	})

	require.Equal(t, http.StatusBadRequest, w.Code)

	var res validationErrorBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, "Invalid request", res.Message)

	require.Len(t, res.Errors, 1)
	assert.Equal(t, "password", res.Errors[0].Field)
	assert.Contains(t, res.Errors[0].Message, "uppercase")
}

func TestRegisterRejectsMissingFields(t *testing.T) {
	r := newRegisterRouter(t)

	w := postRegister(t, r, map[string]any{
		"firstName": "Ada",
	})

	require.Equal(t, http.StatusBadRequest, w.Code)

	var res validationErrorBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))

	fields := make([]string, 0, len(res.Errors))
	for _, fe := range res.Errors {
		fields = append(fields, fe.Field)
	}
	assert.ElementsMatch(t, []string{"lastName", "email", "password"}, fields)
}

package handler

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	httpcontext "github.com/dtroode/superapp-gateway/internal/api/http/context"
	"github.com/dtroode/superapp-gateway/internal/model"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestContext(t *testing.T, method, target string, body any) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()

	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		require.NoError(t, json.NewEncoder(&buf).Encode(b))
	}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, target, &buf)
	c.Request.Header.Set("Content-Type", "application/json")
	return c, w
}

func withIdentity(c *gin.Context, identity model.AuthenticatedIdentity) {
	ctx := httpcontext.NewManager().SetIdentityToContext(c.Request.Context(), identity)
	c.Request = c.Request.WithContext(ctx)
}

func withID(c *gin.Context, id string) {
	c.Params = gin.Params{{Key: "id", Value: id}}
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func standardIdentity() model.AuthenticatedIdentity {
	return model.AuthenticatedIdentity{ID: uuid.New(), Role: model.RoleStandard}
}


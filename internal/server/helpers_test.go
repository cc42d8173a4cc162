package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"photogram/internal/config"
	"photogram/internal/database"
	"photogram/internal/models"
	"photogram/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type testEnv struct {
	app *fiber.App
	srv *Server
	db  *gorm.DB
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	cfg := &config.Config{
		JWTSecret: "test_secret",
		Port:      "0",
		UploadDir: t.TempDir(),
		Env:       "test",
	}

	srv := NewServerWithDeps(cfg, db, nil)
	app := fiber.New()
	srv.SetupRoutes(app)

	return &testEnv{app: app, srv: srv, db: db}
}

// createUser persists a user through the auth service and returns it with a
// valid bearer token.
func (e *testEnv) createUser(t *testing.T, username string) (*models.User, string) {
	t.Helper()
	user, token, err := e.srv.authService.Register(context.Background(), registerInput(username))
	require.NoError(t, err)
	return user, token
}

func (e *testEnv) createAdmin(t *testing.T, username string) (*models.User, string) {
	t.Helper()
	user, token := e.createUser(t, username)
	require.NoError(t, e.db.Model(user).Update("role", models.RoleAdmin).Error)
	user.Role = models.RoleAdmin
	return user, token
}

func registerInput(username string) service.RegisterInput {
	return service.RegisterInput{
		Username:        username,
		Email:           username + "@example.com",
		Password:        "Password1!",
		ConfirmPassword: "Password1!",
		BaseURL:         "http://localhost:8080",
	}
}

func (e *testEnv) doJSON(t *testing.T, method, path string, body interface{}, token string) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// doMultipart sends a multipart request with the given text fields and an
// optional png image part under fileField.
func (e *testEnv) doMultipart(t *testing.T, method, path string, fields map[string]string, fileField, token string) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}
	if fileField != "" {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename="photo.png"`, fileField))
		header.Set("Content-Type", "image/png")
		part, err := writer.CreatePart(header)
		require.NoError(t, err)
		_, err = part.Write([]byte("fake-png-bytes"))
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer func() { _ = resp.Body.Close() }()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func TestMapServiceError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"validation", models.NewValidationError("bad"), fiber.StatusBadRequest},
		{"conflict", models.NewConflictError("taken"), fiber.StatusBadRequest},
		{"invalid credentials", models.NewInvalidCredentialsError("nope"), fiber.StatusBadRequest},
		{"not found", models.NewNotFoundError("Post"), fiber.StatusNotFound},
		{"unauthenticated", models.NewUnauthenticatedError("Please authenticate."), fiber.StatusNotImplemented},
		{"internal", models.NewInternalError(fmt.Errorf("boom")), fiber.StatusInternalServerError},
		{"plain error", fmt.Errorf("boom"), fiber.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, mapServiceError(tt.err))
		})
	}
}

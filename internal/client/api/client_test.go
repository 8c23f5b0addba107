package api

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"perfectmatch/internal/client/models"
	"perfectmatch/internal/common"
	"perfectmatch/internal/logging"
)

func testClient(t *testing.T, h http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	log := logging.NewTextLogger(io.Discard, slog.LevelError)
	return New(srv.URL+"/api", 5*time.Second, "dev-1", log)
}

func TestGetProfile_Success(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/users/42", r.URL.Path)
		assert.Equal(t, "dev-1", r.Header.Get("X-Device-ID"))
		_, _ = w.Write([]byte(`{"id": 42, "name": "Asha", "gender": "FEMALE"}`))
	}))

	p, err := c.GetProfile(context.Background(), "42")
	require.NoError(t, err)
	assert.Equal(t, "42", p.ID)
	assert.Equal(t, "Asha", p.Name)
}

func TestGetProfile_NotFound(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "User not found", http.StatusNotFound)
	}))

	_, err := c.GetProfile(context.Background(), "9")
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestGetProfile_ServerError(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))

	_, err := c.GetProfile(context.Background(), "9")
	assert.ErrorIs(t, err, common.ErrServer)
}

func TestGetProfile_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	t.Cleanup(srv.Close)
	log := logging.NewTextLogger(io.Discard, slog.LevelError)
	c := New(srv.URL+"/api", 20*time.Millisecond, "", log)

	_, err := c.GetProfile(context.Background(), "1")
	assert.ErrorIs(t, err, common.ErrTimeout)
}

func TestGetProfile_CancellationPassesThrough(t *testing.T) {
	started := make(chan struct{})
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(started)
		time.Sleep(time.Second)
	}))

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		<-started
		cancel()
	}()

	_, err := c.GetProfile(ctx, "1")
	assert.ErrorIs(t, err, context.Canceled)
	assert.NotErrorIs(t, err, common.ErrTimeout)
	assert.NotErrorIs(t, err, common.ErrNetwork)
}

func TestListProfiles_EmptyArray(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/users", r.URL.Path)
		_, _ = w.Write([]byte(`[]`))
	}))

	list, err := c.ListProfiles(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)
}

func writeTempFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func TestRegister_MultipartAndProgress(t *testing.T) {
	var gotName, gotMobile string
	var photoBytes int
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/users/register", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(32<<20))

		gotName = r.FormValue("name")
		gotMobile = r.FormValue("mobile")

		f, _, err := r.FormFile("profilePhoto")
		require.NoError(t, err)
		b, _ := io.ReadAll(f)
		photoBytes = len(b)

		_, _ = w.Write([]byte(`{"id": 7, "user": {"id": 7, "name": "Ram"}}`))
	}))

	photo := writeTempFile(t, "p.png", []byte{0x89, 'P', 'N', 'G', 1, 2, 3, 4})
	doc := writeTempFile(t, "a.pdf", []byte("%PDF-1.4"))

	form := &models.RegistrationForm{
		Name:             "Ram",
		Mobile:           "9876543210",
		ProfilePhotoPath: photo,
		AadhaarPath:      doc,
	}

	var lastLoaded, lastTotal int64
	res, err := c.Register(context.Background(), form, func(loaded, total int64) {
		lastLoaded, lastTotal = loaded, total
	})
	require.NoError(t, err)

	assert.Equal(t, "7", res.ID)
	require.NotNil(t, res.Profile)
	assert.Equal(t, "Ram", res.Profile.Name)
	assert.Equal(t, "Ram", gotName)
	assert.Equal(t, "9876543210", gotMobile)
	assert.Equal(t, 8, photoBytes)
	assert.Equal(t, lastTotal, int64(16))
	assert.Equal(t, lastLoaded, lastTotal)
}

func TestUpdate_OmitsMissingAttachments(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		require.Equal(t, "/api/users/update/5", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(32<<20))

		assert.Equal(t, "Asha", r.FormValue("name"))
		_, _, err := r.FormFile("profilePhoto")
		assert.Error(t, err) // no file part sent

		_, _ = w.Write([]byte(`{"message": "updated"}`))
	}))

	form := &models.RegistrationForm{Name: "Asha"}
	require.NoError(t, c.Update(context.Background(), "5", form, nil))
}

func TestDelete_ErrorMessageExtracted(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "cannot delete"})
	}))

	err := c.Delete(context.Background(), "3")
	require.Error(t, err)
	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "cannot delete", apiErr.Message)
}

func TestAdminLogin_FallsBackToLegacyRoute(t *testing.T) {
	var legacyHit bool
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/admin/login":
			http.NotFound(w, r)
		case "/api/users/admin/login":
			legacyHit = true
			var creds map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
			assert.Equal(t, "admin", creds["username"])
			_, _ = w.Write([]byte(`"Login successful"`))
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	}))

	require.NoError(t, c.AdminLogin(context.Background(), "admin", "secret"))
	assert.True(t, legacyHit)
}

func TestAdminLogin_Unauthorized(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Invalid credentials", http.StatusUnauthorized)
	}))

	err := c.AdminLogin(context.Background(), "admin", "wrong")
	assert.ErrorIs(t, err, common.ErrUnauthorized)
}

func TestExtractMessage_Priority(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		status int
		want   string
	}{
		{name: "raw string", body: `"User deleted successfully!"`, status: 200, want: "User deleted successfully!"},
		{name: "message field", body: `{"message": "m", "error": "e"}`, status: 400, want: "m"},
		{name: "error field", body: `{"error": "e"}`, status: 400, want: "e"},
		{name: "plain text", body: `something broke`, status: 500, want: "something broke"},
		{name: "empty", body: ``, status: 502, want: "HTTP 502"},
		{name: "other json", body: `{"weird": true}`, status: 418, want: "HTTP 418"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ExtractMessage([]byte(tc.body), tc.status))
		})
	}
}

package dropsdk_test

import (
	"context"
	"errors"
	"io"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/oatfile/filedrop/internal/filedrop/blob"
	httpapi "github.com/oatfile/filedrop/internal/filedrop/http"
	"github.com/oatfile/filedrop/internal/filedrop/service"
	"github.com/oatfile/filedrop/internal/filedrop/store/drivers/sqlite"
	"github.com/oatfile/filedrop/internal/filedrop/store/seed"
	"github.com/oatfile/filedrop/pkg/cryptox"
	"github.com/oatfile/filedrop/pkg/dropsdk"
	"github.com/oatfile/filedrop/pkg/jwtx"
	"github.com/oatfile/filedrop/pkg/slogx"
)

func TestMain(m *testing.M) {
	cryptox.SetPepperPath(filepath.Join(os.TempDir(), "filedrop-sdk-test-pepper"))
	os.Exit(m.Run())
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	users, err := seed.DevSeed()
	require.NoError(t, err)

	catalog, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = catalog.Close() })
	require.NoError(t, catalog.ApplyMigrations())

	blobs, err := blob.NewStore(t.TempDir())
	require.NoError(t, err)

	secret := []byte("0123456789abcdef0123456789abcdef")
	signer, err := jwtx.NewSignerHS256(secret)
	require.NoError(t, err)
	verifier := jwtx.NewVerifierHS256(secret, "filedrop-test")

	logger := slogx.New(slogx.Config{Service: "filedrop", Level: "error", Format: "text"})

	router := httpapi.NewRouter(verifier, "test", catalog, logger)
	router.AuthService = &service.AuthService{
		Users:     users,
		Signer:    signer,
		Issuer:    "filedrop-test",
		AccessTTL: time.Minute,
	}
	router.FileService = &service.FileService{Blobs: blobs, Catalog: catalog}
	router.ApplyRoutes()

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func TestClientFullFlow(t *testing.T) {
	srv := newTestServer(t)
	ctx := context.Background()

	client := dropsdk.NewClient(srv.URL)

	token, err := client.Login(ctx, "john_doe", "password123")
	require.NoError(t, err)
	require.Equal(t, "bearer", token.TokenType)
	require.Equal(t, token.AccessToken, client.Token)

	me, err := client.Whoami(ctx)
	require.NoError(t, err)
	require.Equal(t, "john_doe", me.Username)

	up, err := client.Upload(ctx, "a.txt", strings.NewReader("file contents"))
	require.NoError(t, err)
	require.Equal(t, "File uploaded successfully", up.Message)
	require.Equal(t, "a.txt", up.Filename)

	files, err := client.ListFiles(ctx)
	require.NoError(t, err)
	require.Len(t, files, 1)
	require.Equal(t, up.FileID, files[0].FileID)

	body, err := client.Download(ctx, up.FileID)
	require.NoError(t, err)
	defer body.Close()

	got, err := io.ReadAll(body)
	require.NoError(t, err)
	require.Equal(t, "file contents", string(got))
}

func TestClientLoginError(t *testing.T) {
	srv := newTestServer(t)

	client := dropsdk.NewClient(srv.URL)
	_, err := client.Login(context.Background(), "john_doe", "wrongpass")
	require.Error(t, err)

	var apiErr *dropsdk.APIError
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, 401, apiErr.StatusCode)
	require.Equal(t, dropsdk.ErrorCodeInvalidCredentials, apiErr.Code)
	require.Empty(t, client.Token)
}

func TestClientUnauthenticated(t *testing.T) {
	srv := newTestServer(t)

	client := dropsdk.NewClient(srv.URL)
	_, err := client.Whoami(context.Background())

	var apiErr *dropsdk.APIError
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, 401, apiErr.StatusCode)
}

package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	iauth "github.com/dealdock/dealdock/internal/auth"
	"github.com/dealdock/dealdock/internal/database/testutil"
	"github.com/dealdock/dealdock/internal/models"
	"github.com/dealdock/dealdock/internal/objects"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func newTestRouter(t *testing.T) (*gin.Engine, string) {
	r, token, _ := newTestRouterWithDB(t)
	return r, token
}

func newTestRouterWithDB(t *testing.T) (*gin.Engine, string, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testutil.MustOpenTestDB(t)

	jwt, err := iauth.NewJWTService(iauth.JWTConfig{Secret: "router-test-secret", Issuer: "dealdock"})
	require.NoError(t, err)

	store, err := objects.NewDiskStore(t.TempDir())
	require.NoError(t, err)

	r, err := NewRouter(db, jwt, store)
	require.NoError(t, err)

	token, err := jwt.GenerateSessionToken(iauth.SessionTokenInput{
		UserID:    "auth0|router-test",
		Email:     "seller@example.com",
		FirstName: "Sam",
		LastName:  "Seller",
	})
	require.NoError(t, err)

	return r, token, db
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	}
	return w, env
}

func TestRouterHealthAndAuthGate(t *testing.T) {
	r, _ := newTestRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, w.Code)

	got, env := doJSON(t, r, http.MethodGet, "/api/deal-rooms", "", nil)
	require.Equal(t, http.StatusUnauthorized, got.Code)
	require.False(t, env.Success)
	require.Equal(t, "UNAUTHORIZED", env.Error.Code)
}

func TestRouterSellerAndShareFlow(t *testing.T) {
	r, token, db := newTestRouterWithDB(t)

	// Library file.
	w, env := doJSON(t, r, http.MethodPost, "/api/files", token, map[string]any{
		"fileName": "pitch.pdf",
		"fileUrl":  "/objects/uploads/pitch",
		"fileType": "application/pdf",
		"fileSize": 2048,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var file struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &file))

	// Room with one asset, password-gated.
	w, env = doJSON(t, r, http.MethodPost, "/api/deal-rooms", token, map[string]any{
		"name":     "Enterprise Pilot",
		"password": "opensesame",
		"assets": []map[string]any{
			{"fileId": file.ID, "title": "Pitch deck", "order": 0},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var room struct {
		ID         string `json:"id"`
		ShareToken string `json:"shareToken"`
		Status     string `json:"status"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &room))
	require.Equal(t, "draft", room.Status)
	require.NotEmpty(t, room.ShareToken)

	sharePath := "/api/share/" + room.ShareToken

	// Draft rooms never resolve publicly.
	w, env = doJSON(t, r, http.MethodGet, sharePath, "", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	require.Equal(t, "ROOM_NOT_AVAILABLE", env.Error.Code)

	// Publish and resolve.
	w, _ = doJSON(t, r, http.MethodPut, fmt.Sprintf("/api/deal-rooms/%s/publish", room.ID), token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w, env = doJSON(t, r, http.MethodGet, sharePath, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var public struct {
		HasPassword bool `json:"hasPassword"`
		Assets      []struct {
			ID string `json:"id"`
		} `json:"assets"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &public))
	require.True(t, public.HasPassword)
	require.Len(t, public.Assets, 1)
	require.NotContains(t, string(env.Data), "opensesame")

	// Password gate.
	w, env = doJSON(t, r, http.MethodPost, sharePath+"/verify", "", map[string]any{"password": "wrong"})
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Equal(t, "INVALID_PASSWORD", env.Error.Code)

	w, _ = doJSON(t, r, http.MethodPost, sharePath+"/verify", "", map[string]any{"password": "opensesame"})
	require.Equal(t, http.StatusOK, w.Code)

	// Engagement: view, click, duration.
	w, env = doJSON(t, r, http.MethodPost, sharePath+"/track", "", map[string]any{"viewerEmail": "pat@prospect.com"})
	require.Equal(t, http.StatusCreated, w.Code)
	var tracked struct {
		ViewID string `json:"viewId"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &tracked))
	require.NotEmpty(t, tracked.ViewID)

	w, env = doJSON(t, r, http.MethodPost, sharePath+"/click", "", map[string]any{"viewId": tracked.ViewID})
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "BAD_REQUEST", env.Error.Code)

	w, _ = doJSON(t, r, http.MethodPost, sharePath+"/click", "", map[string]any{
		"assetId": public.Assets[0].ID,
		"viewId":  tracked.ViewID,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w, _ = doJSON(t, r, http.MethodPost, sharePath+"/duration", "", map[string]any{
		"viewId":   tracked.ViewID,
		"duration": 37,
	})
	require.Equal(t, http.StatusOK, w.Code)

	var trackedView models.DealRoomView
	require.NoError(t, db.First(&trackedView, "id = ?", tracked.ViewID).Error)
	require.Equal(t, 37, trackedView.Duration)

	// Comments flow both ways.
	w, _ = doJSON(t, r, http.MethodPost, sharePath+"/comments", "", map[string]any{
		"authorName": "Pat Prospect",
		"message":    "When can we start?",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w, _ = doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/deal-rooms/%s/comments", room.ID), token, map[string]any{
		"message": "Next week works.",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w, env = doJSON(t, r, http.MethodGet, sharePath+"/comments", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var comments []struct {
		AuthorRole string `json:"authorRole"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &comments))
	require.Len(t, comments, 2)

	// The dashboard sees the engagement.
	w, env = doJSON(t, r, http.MethodGet, "/api/analytics/overview", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var overview struct {
		TotalRooms  int `json:"totalRooms"`
		TotalViews  int `json:"totalViews"`
		TotalClicks int `json:"totalClicks"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &overview))
	require.Equal(t, 1, overview.TotalRooms)
	require.Equal(t, 1, overview.TotalViews)
	require.Equal(t, 1, overview.TotalClicks)

	// The referenced file cannot be deleted while attached.
	w, env = doJSON(t, r, http.MethodDelete, "/api/files/"+file.ID, token, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "FILE_IN_USE", env.Error.Code)
}

func TestRouterShareUnknownToken(t *testing.T) {
	r, _ := newTestRouter(t)

	w, env := doJSON(t, r, http.MethodGet, "/api/share/nope", "", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	require.Equal(t, "NOT_FOUND", env.Error.Code)
}

func TestRouterShareExpiredRoom(t *testing.T) {
	r, token := newTestRouter(t)

	w, env := doJSON(t, r, http.MethodPost, "/api/deal-rooms", token, map[string]any{
		"name":      "Already Over",
		"expiresAt": "2020-01-01T00:00:00Z",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var room struct {
		ID         string `json:"id"`
		ShareToken string `json:"shareToken"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &room))

	w, _ = doJSON(t, r, http.MethodPut, fmt.Sprintf("/api/deal-rooms/%s/publish", room.ID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w, env = doJSON(t, r, http.MethodGet, "/api/share/"+room.ShareToken, "", nil)
	require.Equal(t, http.StatusGone, w.Code)
	require.Equal(t, "ROOM_EXPIRED", env.Error.Code)
}

func TestRouterCrossTenantRoomsAreInvisible(t *testing.T) {
	r, token := newTestRouter(t)

	w, env := doJSON(t, r, http.MethodPost, "/api/deal-rooms", token, map[string]any{"name": "Mine"})
	require.Equal(t, http.StatusCreated, w.Code)
	var room struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &room))

	// Same router, different identity, therefore a different organization.
	jwt, err := iauth.NewJWTService(iauth.JWTConfig{Secret: "router-test-secret", Issuer: "dealdock"})
	require.NoError(t, err)
	otherToken, err := jwt.GenerateSessionToken(iauth.SessionTokenInput{
		UserID: "auth0|other-tenant",
		Email:  "other@example.com",
	})
	require.NoError(t, err)

	w, env = doJSON(t, r, http.MethodGet, "/api/deal-rooms/"+room.ID, otherToken, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	require.Equal(t, "NOT_FOUND", env.Error.Code)
}

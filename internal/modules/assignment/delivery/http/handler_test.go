package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/gradebench/webapp/internal/entity"
	assignmentRepo "github.com/gradebench/webapp/internal/modules/assignment/repository"
	assignmentService "github.com/gradebench/webapp/internal/modules/assignment/service"
	submissionRepo "github.com/gradebench/webapp/internal/modules/submission/repository"
	"github.com/gradebench/webapp/pkg/response"
)

func newTestRouter(t *testing.T) (*gin.Engine, *gorm.DB, *entity.Account) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	binding.EnableDecoderDisallowUnknownFields = true

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&entity.Account{}, &entity.Assignment{}, &entity.Submission{}))

	account := &entity.Account{
		FirstName:    "Alan",
		LastName:     "Turing",
		Email:        "alan@example.com",
		PasswordHash: "x",
	}
	require.NoError(t, db.Create(account).Error)

	svc := assignmentService.NewAssignmentService(
		assignmentRepo.NewAssignmentRepository(db),
		submissionRepo.NewSubmissionRepository(db),
	)
	h := NewAssignmentHandler(svc)

	router := gin.New()
	router.Use(func(c *gin.Context) {
		response.SetIdentity(c, response.Identity{AccountID: account.ID, Email: account.Email})
	})
	router.POST("/v1/assignments", h.CreateAssignment)
	router.GET("/v1/assignments", h.GetAllAssignments)
	router.GET("/v1/assignments/:id", h.GetAssignmentByID)
	router.PUT("/v1/assignments/:id", h.UpdateAssignment)
	router.DELETE("/v1/assignments/:id", h.DeleteAssignment)

	return router, db, account
}

func postJSON(router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	payload, _ := json.Marshal(body)
	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func assignmentBody(points, attempts int) map[string]any {
	return map[string]any{
		"name":            "Homework 1",
		"points":          points,
		"num_of_attempts": attempts,
		"deadline":        time.Now().Add(time.Hour).UTC().Format("2006-01-02T15:04:05.000Z"),
	}
}

func TestCreateAssignmentPointsBoundaries(t *testing.T) {
	router, _, _ := newTestRouter(t)

	cases := []struct {
		points int
		want   int
	}{
		{0, http.StatusBadRequest},
		{1, http.StatusCreated},
		{100, http.StatusCreated},
		{101, http.StatusBadRequest},
	}

	for _, tc := range cases {
		t.Run(fmt.Sprintf("points=%d", tc.points), func(t *testing.T) {
			rec := postJSON(router, http.MethodPost, "/v1/assignments", assignmentBody(tc.points, 3))
			assert.Equal(t, tc.want, rec.Code)
		})
	}
}

func TestCreateAssignmentAttemptsBoundaries(t *testing.T) {
	router, _, _ := newTestRouter(t)

	for attempts, want := range map[int]int{
		0:   http.StatusBadRequest,
		1:   http.StatusCreated,
		100: http.StatusCreated,
		101: http.StatusBadRequest,
	} {
		rec := postJSON(router, http.MethodPost, "/v1/assignments", assignmentBody(10, attempts))
		assert.Equal(t, want, rec.Code, "num_of_attempts=%d", attempts)
	}
}

func TestCreateAssignmentRejectsUnknownFields(t *testing.T) {
	router, _, _ := newTestRouter(t)

	body := assignmentBody(10, 3)
	body["grade"] = "A"

	rec := postJSON(router, http.MethodPost, "/v1/assignments", body)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateAssignmentRejectsNonIntegerPoints(t *testing.T) {
	router, _, _ := newTestRouter(t)

	body := assignmentBody(10, 3)
	body["points"] = 9.5

	rec := postJSON(router, http.MethodPost, "/v1/assignments", body)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreatedAssignmentResponse(t *testing.T) {
	router, _, _ := newTestRouter(t)

	rec := postJSON(router, http.MethodPost, "/v1/assignments", assignmentBody(10, 3))
	require.Equal(t, http.StatusCreated, rec.Code)

	var got map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "Homework 1", got["name"])
	assert.EqualValues(t, 10, got["points"])
	assert.NotEmpty(t, got["id"])
	assert.NotEmpty(t, got["assignment_created"])
	assert.NotContains(t, got, "account_id")
}

func TestMalformedIDReturns400(t *testing.T) {
	router, _, _ := newTestRouter(t)

	for _, route := range []struct {
		method, path string
	}{
		{http.MethodGet, "/v1/assignments/not-a-uuid"},
		{http.MethodPut, "/v1/assignments/not-a-uuid"},
		{http.MethodDelete, "/v1/assignments/not-a-uuid"},
		// uuid.Parse would accept this compact form; the API must not.
		{http.MethodGet, "/v1/assignments/0123456789abcdef0123456789abcdef"},
	} {
		req := httptest.NewRequest(route.method, route.path, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "%s %s", route.method, route.path)
	}
}

func TestGetUnknownAssignmentReturns404(t *testing.T) {
	router, _, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/assignments/"+uuid.NewString(), nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateByNonOwnerReturns403(t *testing.T) {
	router, db, _ := newTestRouter(t)

	other := &entity.Account{FirstName: "Eve", LastName: "Adams", Email: "eve@example.com", PasswordHash: "x"}
	require.NoError(t, db.Create(other).Error)

	foreign := &entity.Assignment{
		Name:          "Not yours",
		Points:        5,
		NumOfAttempts: 1,
		Deadline:      time.Now().Add(time.Hour),
		AccountID:     other.ID,
	}
	require.NoError(t, db.Create(foreign).Error)

	rec := postJSON(router, http.MethodPut, "/v1/assignments/"+foreign.ID.String(), assignmentBody(10, 3))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestDeleteWithSubmissionsReturns409(t *testing.T) {
	router, db, account := newTestRouter(t)

	owned := &entity.Assignment{
		Name:          "Homework 1",
		Points:        5,
		NumOfAttempts: 1,
		Deadline:      time.Now().Add(time.Hour),
		AccountID:     account.ID,
	}
	require.NoError(t, db.Create(owned).Error)
	require.NoError(t, db.Create(&entity.Submission{
		AssignmentID:  owned.ID,
		SubmissionURL: "https://example.com/hw1.zip",
	}).Error)

	req := httptest.NewRequest(http.MethodDelete, "/v1/assignments/"+owned.ID.String(), nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestUpdateReturns204WithNoBody(t *testing.T) {
	router, _, _ := newTestRouter(t)

	rec := postJSON(router, http.MethodPost, "/v1/assignments", assignmentBody(10, 3))
	require.Equal(t, http.StatusCreated, rec.Code)

	var created map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	update := postJSON(router, http.MethodPut, "/v1/assignments/"+created["id"].(string), assignmentBody(20, 5))
	assert.Equal(t, http.StatusNoContent, update.Code)
	assert.Empty(t, update.Body.String())
}

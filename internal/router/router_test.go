package router_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/noah-isme/clarifyai-api/internal/auth"
	"github.com/noah-isme/clarifyai-api/internal/config"
	"github.com/noah-isme/clarifyai-api/internal/database"
	"github.com/noah-isme/clarifyai-api/internal/handler"
	"github.com/noah-isme/clarifyai-api/internal/middleware"
	"github.com/noah-isme/clarifyai-api/internal/repository"
	"github.com/noah-isme/clarifyai-api/internal/router"
	"github.com/noah-isme/clarifyai-api/internal/service"
	"github.com/noah-isme/clarifyai-api/internal/utils"
	"github.com/noah-isme/clarifyai-api/pkg/events"
)

const secret = "router-test-secret"

var testConfig = config.Config{
	AppName:                "ClarifyAI API",
	AppEnv:                 "test",
	AppVersion:             "1.0.0",
	ChatLogRateLimitPerMin: 100,
}

func newApp(t *testing.T) *fiber.App {
	t.Helper()

	dsn := "file:" + strings.ReplaceAll(t.Name(), "/", "_") + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))

	log := zerolog.Nop()
	validate := utils.NewValidator()
	publisher := events.Nop{}

	faqService := service.NewFAQService(repository.NewFAQRepository(db, log), validate, publisher, log)
	announcementService := service.NewAnnouncementService(repository.NewAnnouncementRepository(db, log), nil, 0, validate, publisher, log)
	chatLogService := service.NewChatLogService(repository.NewChatLogRepository(db, log), validate, publisher, log)

	app := fiber.New(fiber.Config{ErrorHandler: router.ErrorHandler(testConfig, log)})
	middleware.Register(app, middleware.Config{Logger: &log})
	router.Register(app, testConfig, router.Dependencies{
		FAQHandler:          handler.NewFAQHandler(faqService, log),
		AnnouncementHandler: handler.NewAnnouncementHandler(announcementService, log),
		ChatLogHandler:      handler.NewChatLogHandler(chatLogService, log),
		AuthHandler:         handler.NewAuthHandler(),
		JWTMiddleware:       middleware.JWTProtected(auth.NewVerifier(secret)),
	})
	return app
}

func token(t *testing.T, subject string) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   subject,
		"email": subject + "@campus.edu",
		"exp":   time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

type result struct {
	status int
	body   []byte
}

func (r result) into(t *testing.T, target interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(r.body, target), string(r.body))
}

func call(t *testing.T, app *fiber.App, method, path, bearer string, body interface{}) result {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	}

	req := httptest.NewRequest(method, path, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return result{status: resp.StatusCode, body: data}
}

type faqBody struct {
	ID        string   `json:"id"`
	Tags      []string `json:"tags"`
	ViewCount int      `json:"view_count"`
	IsActive  bool     `json:"is_active"`
	CreatedBy *string  `json:"created_by"`
}

func TestFAQLifecycle(t *testing.T) {
	app := newApp(t)
	alice := token(t, "alice")

	created := call(t, app, http.MethodPost, "/api/v1/faqs", alice, map[string]interface{}{
		"question": "When does the library open?",
		"answer":   "The library opens at 8am on weekdays.",
		"category": "library",
		"tags":     []string{"Library ", " Timings"},
	})
	require.Equal(t, fiber.StatusCreated, created.status, string(created.body))

	var faq faqBody
	created.into(t, &faq)
	require.Equal(t, []string{"library", "timings"}, faq.Tags)
	require.Zero(t, faq.ViewCount)
	require.NotNil(t, faq.CreatedBy)
	require.Equal(t, "alice", *faq.CreatedBy)

	path := "/api/v1/faqs/" + faq.ID
	require.Equal(t, fiber.StatusOK, call(t, app, http.MethodGet, path, "", nil).status)
	second := call(t, app, http.MethodGet, path, "", nil)
	require.Equal(t, fiber.StatusOK, second.status)

	var read faqBody
	second.into(t, &read)
	require.Equal(t, 1, read.ViewCount)

	var stored faqBody
	call(t, app, http.MethodGet, path, "", nil).into(t, &stored)
	require.Equal(t, 2, stored.ViewCount)

	empty := call(t, app, http.MethodPut, path, alice, map[string]interface{}{})
	require.Equal(t, fiber.StatusBadRequest, empty.status)
	require.JSONEq(t, `{"detail":"No fields to update"}`, string(empty.body))

	stranger := call(t, app, http.MethodDelete, path, token(t, "bob"), nil)
	require.Equal(t, fiber.StatusForbidden, stranger.status)

	deleted := call(t, app, http.MethodDelete, path, alice, nil)
	require.Equal(t, fiber.StatusOK, deleted.status)
	require.JSONEq(t, `{"message":"FAQ deleted successfully"}`, string(deleted.body))

	var listed []faqBody
	call(t, app, http.MethodGet, "/api/v1/faqs", "", nil).into(t, &listed)
	require.Empty(t, listed)

	var afterDelete faqBody
	fetched := call(t, app, http.MethodGet, path, "", nil)
	require.Equal(t, fiber.StatusOK, fetched.status)
	fetched.into(t, &afterDelete)
	require.False(t, afterDelete.IsActive)
}

func TestFAQAnswerRoundTripsUnchanged(t *testing.T) {
	app := newApp(t)
	alice := token(t, "alice")
	answer := "You need a score > 50 & attendance < 75% is not allowed."

	created := call(t, app, http.MethodPost, "/api/v1/faqs", alice, map[string]interface{}{
		"question": "What are the exam rules?",
		"answer":   answer,
		"category": "academics",
	})
	require.Equal(t, fiber.StatusCreated, created.status, string(created.body))

	var faq struct {
		ID     string `json:"id"`
		Answer string `json:"answer"`
	}
	created.into(t, &faq)
	require.Equal(t, answer, faq.Answer)

	updated := call(t, app, http.MethodPut, "/api/v1/faqs/"+faq.ID, alice, map[string]interface{}{"answer": faq.Answer})
	require.Equal(t, fiber.StatusOK, updated.status)
	updated.into(t, &faq)
	require.Equal(t, answer, faq.Answer)

	tooLong := call(t, app, http.MethodPost, "/api/v1/faqs", alice, map[string]interface{}{
		"question": "Why so many ampersands?",
		"answer":   "<p>" + strings.Repeat("&", 4990) + "</p>",
		"category": "general",
	})
	require.Equal(t, fiber.StatusUnprocessableEntity, tooLong.status)
}

func TestFAQRequiresToken(t *testing.T) {
	app := newApp(t)

	resp := call(t, app, http.MethodPost, "/api/v1/faqs", "", map[string]interface{}{"question": "x"})
	require.Equal(t, fiber.StatusUnauthorized, resp.status)
	require.JSONEq(t, `{"detail":"Missing Bearer token"}`, string(resp.body))
}

func TestAnnouncementOwnershipAndUpcoming(t *testing.T) {
	app := newApp(t)
	alice := token(t, "alice")

	future := time.Now().UTC().Add(48 * time.Hour).Format(time.RFC3339)
	past := time.Now().UTC().Add(-48 * time.Hour).Format(time.RFC3339)

	var upcoming struct {
		ID       string `json:"id"`
		Priority string `json:"priority"`
	}
	created := call(t, app, http.MethodPost, "/api/v1/announcements", alice, map[string]interface{}{
		"title":       "Midterm exams",
		"description": "Midterm exams start next week in the main hall.",
		"category":    "exam",
		"date":        future,
	})
	require.Equal(t, fiber.StatusCreated, created.status, string(created.body))
	created.into(t, &upcoming)
	require.Equal(t, "medium", upcoming.Priority)

	require.Equal(t, fiber.StatusCreated, call(t, app, http.MethodPost, "/api/v1/announcements", alice, map[string]interface{}{
		"title":       "Orientation day",
		"description": "Orientation for new students has already happened.",
		"category":    "event",
		"date":        past,
	}).status)

	forbidden := call(t, app, http.MethodPut, "/api/v1/announcements/"+upcoming.ID, token(t, "bob"), map[string]interface{}{
		"title": "Hijacked title",
	})
	require.Equal(t, fiber.StatusForbidden, forbidden.status)
	require.JSONEq(t, `{"detail":"You are not authorized to update this announcement"}`, string(forbidden.body))

	var listed []struct {
		ID   string    `json:"id"`
		Date time.Time `json:"date"`
	}
	call(t, app, http.MethodGet, "/api/v1/announcements", "", nil).into(t, &listed)
	require.Len(t, listed, 1)
	require.Equal(t, upcoming.ID, listed[0].ID)

	call(t, app, http.MethodGet, "/api/v1/announcements?upcoming_only=false", "", nil).into(t, &listed)
	require.Len(t, listed, 2)

	badDate := call(t, app, http.MethodPost, "/api/v1/announcements", alice, map[string]interface{}{
		"title":       "Broken date",
		"description": "This announcement has a date nobody can parse.",
		"category":    "general",
		"date":        "next tuesday",
	})
	require.Equal(t, fiber.StatusUnprocessableEntity, badDate.status)
}

func TestChatLogFeedbackIsScopedToOwner(t *testing.T) {
	app := newApp(t)
	alice := token(t, "alice")
	bob := token(t, "bob")

	mismatch := call(t, app, http.MethodPost, "/api/v1/chat-logs", alice, map[string]interface{}{
		"user_id":  "bob",
		"question": "Where is the gym?",
	})
	require.Equal(t, fiber.StatusForbidden, mismatch.status)
	require.JSONEq(t, `{"detail":"Cannot create chat log for another user"}`, string(mismatch.body))

	created := call(t, app, http.MethodPost, "/api/v1/chat-logs", bob, map[string]interface{}{
		"user_id":    "bob",
		"question":   "Where is the gym?",
		"confidence": 0.75,
	})
	require.Equal(t, fiber.StatusCreated, created.status, string(created.body))

	var log struct {
		ID         string `json:"id"`
		WasHelpful *bool  `json:"was_helpful"`
	}
	created.into(t, &log)
	require.Nil(t, log.WasHelpful)

	feedbackPath := "/api/v1/chat-logs/" + log.ID + "/feedback"
	denied := call(t, app, http.MethodPut, feedbackPath, alice, map[string]interface{}{"was_helpful": true})
	require.Equal(t, fiber.StatusNotFound, denied.status)

	accepted := call(t, app, http.MethodPut, feedbackPath, bob, map[string]interface{}{"was_helpful": false})
	require.Equal(t, fiber.StatusOK, accepted.status)
	accepted.into(t, &log)
	require.NotNil(t, log.WasHelpful)
	require.False(t, *log.WasHelpful)

	var history []struct {
		ID string `json:"id"`
	}
	call(t, app, http.MethodGet, "/api/v1/chat-logs/my-history", alice, nil).into(t, &history)
	require.Empty(t, history)
	call(t, app, http.MethodGet, "/api/v1/chat-logs/my-history", bob, nil).into(t, &history)
	require.Len(t, history, 1)
}

func TestServiceEndpoints(t *testing.T) {
	app := newApp(t)

	ping := call(t, app, http.MethodGet, "/ping", "", nil)
	require.JSONEq(t, `{"status":"healthy"}`, string(ping.body))

	banner := call(t, app, http.MethodGet, "/", "", nil)
	require.Equal(t, fiber.StatusOK, banner.status)
	require.Contains(t, string(banner.body), "ClarifyAI API")

	require.Equal(t, fiber.StatusOK, call(t, app, http.MethodGet, "/api/v1/faqs", "", nil).status)
	metrics := call(t, app, http.MethodGet, "/metrics", "", nil)
	require.Equal(t, fiber.StatusOK, metrics.status)
	require.Contains(t, string(metrics.body), "clarify_http_requests_total")

	missing := call(t, app, http.MethodGet, "/api/v1/unknown", "", nil)
	require.Equal(t, fiber.StatusNotFound, missing.status)
	require.JSONEq(t, `{"detail":"Not Found"}`, string(missing.body))
}

func TestMetricsAfterMixedTraffic(t *testing.T) {
	app := newApp(t)
	alice := token(t, "alice")

	created := call(t, app, http.MethodPost, "/api/v1/faqs", alice, map[string]interface{}{
		"question": "Where is the career office?",
		"answer":   "The career office is next to the main library.",
		"category": "placement",
	})
	require.Equal(t, fiber.StatusCreated, created.status, string(created.body))
	var faq faqBody
	created.into(t, &faq)
	path := "/api/v1/faqs/" + faq.ID

	for i := 0; i < 3; i++ {
		call(t, app, http.MethodGet, path, "", nil)
		call(t, app, http.MethodPut, path, alice, map[string]interface{}{"tags": []string{"careers"}})
		call(t, app, http.MethodGet, "/api/v1/announcements?upcoming_only=false", "", nil)
		call(t, app, http.MethodPost, "/api/v1/chat-logs", alice, map[string]interface{}{"user_id": "alice", "question": "Is the gym open?"})
		call(t, app, http.MethodDelete, "/api/v1/nothing-here", alice, nil)
		call(t, app, http.MethodGet, "/api/v1/faqs/not-a-uuid", "", nil)
	}
	require.Equal(t, fiber.StatusOK, call(t, app, http.MethodDelete, path, alice, nil).status)

	metrics := call(t, app, http.MethodGet, "/metrics", "", nil)
	require.Equal(t, fiber.StatusOK, metrics.status, string(metrics.body))
	require.Contains(t, string(metrics.body), `route="unmatched"`)
	require.NotContains(t, string(metrics.body), "nothing-here")
}

func TestProtectedRoutesFailClosedWithoutMiddleware(t *testing.T) {
	log := zerolog.Nop()
	app := fiber.New(fiber.Config{ErrorHandler: router.ErrorHandler(testConfig, log)})
	router.Register(app, testConfig, router.Dependencies{AuthHandler: handler.NewAuthHandler()})

	resp := call(t, app, http.MethodGet, "/api/v1/auth/me", "", nil)
	require.Equal(t, fiber.StatusInternalServerError, resp.status)

	var payload utils.InternalErrorResponse
	resp.into(t, &payload)
	require.Equal(t, "authentication not configured", payload.Detail)
}

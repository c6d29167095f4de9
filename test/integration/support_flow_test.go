package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/merchops/support-assistant/internal/config"
	"github.com/merchops/support-assistant/internal/domain"
	"github.com/merchops/support-assistant/internal/eventbus"
	"github.com/merchops/support-assistant/internal/handler"
	"github.com/merchops/support-assistant/internal/server"
	"github.com/merchops/support-assistant/internal/service"
	"github.com/merchops/support-assistant/internal/storage"
	"github.com/merchops/support-assistant/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestServer(t *testing.T) (*httptest.Server, eventbus.EventBus, string) {
	log := logger.NewNop()
	dataDir := t.TempDir()

	repo := storage.NewMerchantStore(storage.NewFileStore(dataDir), log)

	eventBusCfg := &eventbus.Config{
		ChannelBuffer: 100,
		MaxRetries:    3,
	}
	bus := eventbus.New(log, eventBusCfg)

	notificationConsumer := eventbus.NewNotificationConsumer(repo, log, 2)
	err := bus.Subscribe(eventbus.EventTypeNotification, notificationConsumer)
	require.NoError(t, err)

	err = bus.Start(context.Background())
	require.NoError(t, err)

	rules, err := service.LoadRoutingRules("")
	require.NoError(t, err)

	// No generator wired up, so responses come from the deterministic
	// fallback templates.
	supportService := service.NewSupportService(repo, nil, bus, rules, 100, log)

	supportHandler := handler.NewSupportHandler(supportService, log)
	dataHandler := handler.NewDataHandler(repo, log)
	ticketHandler := handler.NewTicketHandler(supportService, log)
	healthHandler := handler.NewHealthHandler()

	cfg := &config.Config{
		Server: config.ServerConfig{
			Port: "8080",
			Host: "0.0.0.0",
		},
	}

	srv := server.New(cfg, log, supportHandler, dataHandler, ticketHandler, healthHandler)

	testServer := httptest.NewServer(srv.Handler())

	return testServer, bus, dataDir
}

func postJSON(t *testing.T, url string, payload any) (*http.Response, map[string]interface{}) {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	resp, err := http.Post(url, "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	var result map[string]interface{}
	err = json.NewDecoder(resp.Body).Decode(&result)
	require.NoError(t, err)

	return resp, result
}

func putJSON(t *testing.T, url string, payload any) (*http.Response, map[string]interface{}) {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodPut, url, bytes.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var result map[string]interface{}
	err = json.NewDecoder(resp.Body).Decode(&result)
	require.NoError(t, err)

	return resp, result
}

func getJSON(t *testing.T, url string) (*http.Response, map[string]interface{}) {
	t.Helper()

	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()

	var result map[string]interface{}
	err = json.NewDecoder(resp.Body).Decode(&result)
	require.NoError(t, err)

	return resp, result
}

func TestHealthCheck(t *testing.T) {
	srv, bus, _ := setupTestServer(t)
	defer srv.Close()
	defer bus.Shutdown(context.Background())

	resp, result := getJSON(t, srv.URL+"/health")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", result["status"])
	assert.NotEmpty(t, result["timestamp"])
}

func TestQueryFlow(t *testing.T) {
	srv, bus, _ := setupTestServer(t)
	defer srv.Close()
	defer bus.Shutdown(context.Background())

	resp, result := postJSON(t, srv.URL+"/api/query", map[string]string{
		"query": "Why is my account on hold?",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	assert.Equal(t, "account", result["topic"])
	assert.Equal(t, true, result["demo_mode"])
	assert.Equal(t, false, result["escalation_needed"])
	assert.Equal(t, float64(1), result["conversation_id"])
	assert.NotEmpty(t, result["response"])
	assert.Len(t, result["suggestions"], 5)

	merchantData, ok := result["merchant_data"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "MERCH123456", merchantData["merchant_id"])

	// An urgent payout query escalates.
	resp, result = postJSON(t, srv.URL+"/api/query", map[string]string{
		"query": "This is urgent, my payout failed",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "payout", result["topic"])
	assert.Equal(t, true, result["escalation_needed"])
	assert.Equal(t, float64(2), result["conversation_id"])
}

func TestQueryValidation(t *testing.T) {
	srv, bus, _ := setupTestServer(t)
	defer srv.Close()
	defer bus.Shutdown(context.Background())

	resp, result := postJSON(t, srv.URL+"/api/query", map[string]string{"query": ""})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.NotEmpty(t, result["error"])
}

func TestTicketFlow(t *testing.T) {
	srv, bus, dataDir := setupTestServer(t)
	defer srv.Close()
	defer bus.Shutdown(context.Background())

	// Create
	resp, ticket := postJSON(t, srv.URL+"/api/ticket/create", map[string]string{
		"subject":     "Payout delayed",
		"description": "Settlement from Monday has not arrived",
		"priority":    "high",
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "TKT100", ticket["ticket_id"])
	assert.Equal(t, "open", ticket["status"])
	assert.Equal(t, "high", ticket["priority"])

	resp, tickets := getJSON(t, srv.URL+"/api/data/tickets")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(1), tickets["open_tickets"])
	assert.Equal(t, float64(1), tickets["total_tickets"])

	// Resolve
	resp, _ = putJSON(t, srv.URL+"/api/ticket/TKT100/status", map[string]string{
		"status": "resolved",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, tickets = getJSON(t, srv.URL+"/api/data/tickets")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(0), tickets["open_tickets"])
	assert.Equal(t, float64(1), tickets["resolved_tickets"])

	// Unknown ticket
	resp, _ = putJSON(t, srv.URL+"/api/ticket/TKT999/status", map[string]string{
		"status": "closed",
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// Missing status
	resp, _ = putJSON(t, srv.URL+"/api/ticket/TKT100/status", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// The async notification pipeline records a delivery for ticket_updates.
	assert.Eventually(t, func() bool {
		data, err := os.ReadFile(filepath.Join(dataDir, "notification_data.json"))
		if err != nil {
			return false
		}
		var doc domain.NotificationDocument
		if json.Unmarshal(data, &doc) != nil {
			return false
		}
		return len(doc.NotificationHistory) > 0
	}, 3*time.Second, 50*time.Millisecond)
}

func TestKYCDocumentFlow(t *testing.T) {
	srv, bus, _ := setupTestServer(t)
	defer srv.Close()
	defer bus.Shutdown(context.Background())

	resp, result := postJSON(t, srv.URL+"/api/kyc/document", map[string]string{
		"document_type": "pan_card",
		"status":        "pending",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, result["message"])

	resp, kyc := getJSON(t, srv.URL+"/api/data/kyc")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, kyc["uploaded_documents"], "pan_card")

	// Duplicate upload is rejected.
	resp, result = postJSON(t, srv.URL+"/api/kyc/document", map[string]string{
		"document_type": "pan_card",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "document already exists", result["error"])
}

func TestScenarioEndpoint(t *testing.T) {
	srv, bus, _ := setupTestServer(t)
	defer srv.Close()
	defer bus.Shutdown(context.Background())

	resp, result := postJSON(t, srv.URL+"/api/scenario/account_hold", map[string]string{
		"query": "my account is frozen",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "account_hold", result["scenario_type"])
	assert.Equal(t, "account", result["topic"])
	assert.Equal(t, true, result["demo_mode"])
	assert.NotEmpty(t, result["response"])
}

func TestAnalyzeEndpoint(t *testing.T) {
	srv, bus, _ := setupTestServer(t)
	defer srv.Close()
	defer bus.Shutdown(context.Background())

	resp, result := postJSON(t, srv.URL+"/api/analyze", map[string]string{
		"query": "This is urgent, my payout failed",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "payout", result["category"])
	assert.Equal(t, "high", result["priority"])
	assert.NotEmpty(t, result["analysis"])
}

func TestConversationSummaryEndpoint(t *testing.T) {
	srv, bus, _ := setupTestServer(t)
	defer srv.Close()
	defer bus.Shutdown(context.Background())

	resp, result := getJSON(t, srv.URL+"/api/summary")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "No conversation history available.", result["summary"])

	_, _ = postJSON(t, srv.URL+"/api/query", map[string]string{
		"query": "where is my payout",
	})

	resp, result = getJSON(t, srv.URL+"/api/summary")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, result["summary"], "Handled 1 support queries")
}

func TestDataEndpoints(t *testing.T) {
	srv, bus, _ := setupTestServer(t)
	defer srv.Close()
	defer bus.Shutdown(context.Background())

	endpoints := []string{
		"/api/data/merchant",
		"/api/data/account",
		"/api/data/kyc",
		"/api/data/payout",
		"/api/data/limits",
		"/api/data/tickets",
		"/api/data/notifications",
		"/api/data/dashboard",
	}

	for _, endpoint := range endpoints {
		resp, result := getJSON(t, srv.URL+endpoint)
		assert.Equal(t, http.StatusOK, resp.StatusCode, endpoint)
		assert.Equal(t, "MERCH123456", result["merchant_id"], endpoint)
	}

	resp, summary := getJSON(t, srv.URL+"/api/data/summary")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, summary, "merchant_info")
	assert.Contains(t, summary, "dashboard_insights")
}

func TestReloadEndpoint(t *testing.T) {
	srv, bus, dataDir := setupTestServer(t)
	defer srv.Close()
	defer bus.Shutdown(context.Background())

	doc := domain.MerchantDocument{
		MerchantID:   "MERCH777",
		BusinessName: "Edited Offline",
	}
	data, err := json.Marshal(doc)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dataDir, "merchant_data.json"), data, 0o644))

	resp, _ := postJSON(t, srv.URL+"/api/data/reload", map[string]string{})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, merchant := getJSON(t, srv.URL+"/api/data/merchant")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "MERCH777", merchant["merchant_id"])
}

func TestFilesEndpoint(t *testing.T) {
	srv, bus, _ := setupTestServer(t)
	defer srv.Close()
	defer bus.Shutdown(context.Background())

	_, _ = postJSON(t, srv.URL+"/api/ticket/create", map[string]string{
		"subject":     "Creates a file",
		"description": "so the listing is not empty",
	})

	resp, result := getJSON(t, srv.URL+"/api/data/files")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	files, ok := result["files"].([]interface{})
	require.True(t, ok)
	require.NotEmpty(t, files)

	names := make([]string, 0, len(files))
	for _, f := range files {
		entry, ok := f.(map[string]interface{})
		require.True(t, ok)
		names = append(names, entry["filename"].(string))
	}
	assert.Contains(t, names, "ticket_data.json")
}

func TestMain(m *testing.M) {
	code := m.Run()
	os.Exit(code)
}

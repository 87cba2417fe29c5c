package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(Config{APIKey: "test-key", BaseURL: srv.URL})
}

func TestSummarizeSuccess(t *testing.T) {
	var gotPath string
	var gotBody generateRequest

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		assert.Equal(t, "test-key", r.Header.Get("x-goog-api-key"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		resp := map[string]any{
			"candidates": []map[string]any{
				{"content": map[string]any{"parts": []map[string]string{{"text": "a short summary"}}}},
			},
		}
		json.NewEncoder(w).Encode(resp)
	})

	out, err := client.Summarize(context.Background(), "the prompt", 0.5, 300)
	require.NoError(t, err)
	assert.Equal(t, "a short summary", out)

	assert.Equal(t, "/models/gemini-2.5-flash:generateContent", gotPath)
	require.Len(t, gotBody.Contents, 1)
	assert.Equal(t, "the prompt", gotBody.Contents[0].Parts[0].Text)
	assert.Equal(t, 0.5, gotBody.GenerationConfig.Temperature)
	assert.Equal(t, 300, gotBody.GenerationConfig.MaxOutputTokens)
}

func TestSummarizeQuotaErrorWithReportedLimit(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"code":429,"status":"RESOURCE_EXHAUSTED","details":[{"quotaValue":"20"}]}}`))
	})

	_, err := client.Summarize(context.Background(), "p", 0.1, 50)
	require.Error(t, err)

	var qe *QuotaError
	require.ErrorAs(t, err, &qe)
	require.NotNil(t, qe.ReportedLimit)
	assert.Equal(t, 20, *qe.ReportedLimit)
}

func TestSummarizeQuotaErrorWithoutLimit(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"code":429,"message":"slow down"}}`))
	})

	_, err := client.Summarize(context.Background(), "p", 0.1, 50)

	var qe *QuotaError
	require.ErrorAs(t, err, &qe)
	assert.Nil(t, qe.ReportedLimit)
}

func TestSummarizeServerErrorIsGeneric(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":{"message":"internal"}}`))
	})

	_, err := client.Summarize(context.Background(), "p", 0.1, 50)
	require.Error(t, err)

	var qe *QuotaError
	assert.False(t, errors.As(err, &qe), "5xx must not classify as quota error")
}

func TestSummarizeEmptyCandidates(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates":[]}`))
	})

	_, err := client.Summarize(context.Background(), "p", 0.1, 50)
	assert.ErrorContains(t, err, "no candidates")
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name      string
		message   string
		wantQuota bool
		wantLimit *int
	}{
		{
			name:      "429 with quotaValue",
			message:   `status 429: {"quotaValue": 20}`,
			wantQuota: true,
			wantLimit: intPtr(20),
		},
		{
			name:      "resource exhausted without value",
			message:   "RESOURCE_EXHAUSTED: try later",
			wantQuota: true,
		},
		{
			name:    "plain network failure",
			message: "dial tcp: connection refused",
		},
		{
			name:      "quotaValue with separator noise",
			message:   "429 quotaValue : 15 per day",
			wantQuota: true,
			wantLimit: intPtr(15),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Classify(tt.message)
			require.Error(t, err)
			assert.Equal(t, tt.message, err.Error(), "message surfaces verbatim")

			var qe *QuotaError
			if !tt.wantQuota {
				assert.False(t, errors.As(err, &qe))
				return
			}
			require.ErrorAs(t, err, &qe)
			if tt.wantLimit == nil {
				assert.Nil(t, qe.ReportedLimit)
			} else {
				require.NotNil(t, qe.ReportedLimit)
				assert.Equal(t, *tt.wantLimit, *qe.ReportedLimit)
			}
		})
	}
}

func intPtr(v int) *int { return &v }

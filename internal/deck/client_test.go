package deck

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/seo-audit/internal/config"
	"github.com/jonesrussell/seo-audit/internal/logger"
)

func TestGenerate(t *testing.T) {
	var batch struct {
		Requests []map[string]any `json:"requests"`
	}
	var shared bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer token-abc", r.Header.Get("Authorization"))
		switch r.URL.Path {
		case "/presentations":
			_, _ = w.Write([]byte(`{"presentationId":"pres-1","slides":[{"objectId":"default-slide"}]}`))
		case "/presentations/pres-1:batchUpdate":
			require.NoError(t, json.NewDecoder(r.Body).Decode(&batch))
			_, _ = w.Write([]byte(`{}`))
		case "/files/pres-1/permissions":
			shared = true
			_, _ = w.Write([]byte(`{}`))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	assembler := NewAssembler(nil, NewSequentialIDs(), logger.NewNop())
	client := NewClient(config.SlidesConfig{
		BaseURL:      srv.URL,
		DriveBaseURL: srv.URL,
		AccessToken:  "token-abc",
	}, assembler, logger.NewNop())

	result, err := client.Generate(context.Background(), BuildInput{Domain: "acme.com", Data: sampleData()})

	require.NoError(t, err)
	assert.Equal(t, "pres-1", result.PresentationID)
	assert.Equal(t, "https://docs.google.com/presentation/d/pres-1/edit", result.PresentationURL)
	assert.Equal(t, 16, result.SlideCount)
	assert.True(t, shared)

	// The seeded default slide is deleted in the same batch, ahead of the
	// deck's own requests.
	require.NotEmpty(t, batch.Requests)
	del, ok := batch.Requests[0]["deleteObject"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "default-slide", del["objectId"])
}

func TestGenerate_CreateFails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	assembler := NewAssembler(nil, NewSequentialIDs(), logger.NewNop())
	client := NewClient(config.SlidesConfig{BaseURL: srv.URL, DriveBaseURL: srv.URL}, assembler, logger.NewNop())

	_, err := client.Generate(context.Background(), BuildInput{Domain: "acme.com"})

	assert.Error(t, err)
}

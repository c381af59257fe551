package profile

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/duetsim/duet/pkg/retry"
)

const caseyPage = `<html><body>
<h1>Casey Reed</h1>
<p>I spend most weekends climbing and bouldering in the mountains.</p>
<p>My camera follows me on every trail, mostly for portraits.</p>
</body></html>`

func newTestImporter() *Importer {
	return &Importer{
		client: &http.Client{Timeout: 2 * time.Second},
		retrier: retry.NewRetrier(&retry.Config{
			MaxRetries:    3,
			BackoffFactor: 2,
			InitialDelay:  time.Millisecond,
			MaxDelay:      10 * time.Millisecond,
			Jitter:        time.Millisecond,
		}),
		policy: bluemonday.UGCPolicy(),
	}
}

func TestImporterFromURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NotEmpty(t, r.Header.Get("User-Agent"))
		w.Write([]byte(caseyPage))
	}))
	defer server.Close()

	p, err := newTestImporter().FromURL(context.Background(), "Casey Reed", server.URL)
	require.NoError(t, err)

	assert.Equal(t, "Casey Reed", p.Name)
	assert.Contains(t, p.Hobbies, "climbing")
	assert.Contains(t, p.Hobbies, "photography")
	assert.Contains(t, p.Personality.Traits, "adventurous")
}

func TestImporterRetriesServerErrors(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(caseyPage))
	}))
	defer server.Close()

	p, err := newTestImporter().FromURL(context.Background(), "Casey Reed", server.URL)
	require.NoError(t, err, "import should succeed after retry")
	assert.EqualValues(t, 2, hits.Load(), "server should be hit twice")
	assert.NotEmpty(t, p.Hobbies)
}

func TestImporterGivesUpOnClientErrors(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		http.NotFound(w, r)
	}))
	defer server.Close()

	_, err := newTestImporter().FromURL(context.Background(), "Nobody", server.URL)
	require.Error(t, err)
	assert.EqualValues(t, 1, hits.Load(), "404 should not be retried")
}

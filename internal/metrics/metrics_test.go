package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsRecordSequence(t *testing.T) {
	m := New()

	m.IncrementSequencesStarted()
	m.IncrementPagesFetched()
	m.IncrementPagesFetched()
	m.SetPersonsLoaded(20)
	m.ObserveSequenceFinished("done", 0.5)

	assert.Equal(t, float64(1), testutil.ToFloat64(m.SequencesStarted))
	assert.Equal(t, float64(2), testutil.ToFloat64(m.PagesFetched))
	assert.Equal(t, float64(20), testutil.ToFloat64(m.PersonsLoaded))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.SequencesFinished.WithLabelValues("done")))
	assert.Equal(t, float64(0), testutil.ToFloat64(m.SequencesFinished.WithLabelValues("error")))
}

func TestMetricsHandlerExposesCollectors(t *testing.T) {
	m := New()
	m.IncrementSequencesStarted()

	server := httptest.NewServer(m.Handler())
	t.Cleanup(server.Close)

	response, err := http.Get(server.URL)
	require.NoError(t, err)
	defer response.Body.Close()

	body, err := io.ReadAll(response.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, response.StatusCode)
	assert.Contains(t, string(body), "ppl_fetch_sequences_started_total 1")
}

func TestMetricsInstancesAreIndependent(t *testing.T) {
	first := New()
	second := New()

	first.IncrementPagesFetched()

	assert.Equal(t, float64(0), testutil.ToFloat64(second.PagesFetched))
}

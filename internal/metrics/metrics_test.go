package metrics

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aretw0/incorporate"
	"github.com/aretw0/incorporate/pkg/domain"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHooks_CountEngineEvents(t *testing.T) {
	reg, m := NewRegistry()
	engine, err := incorporate.New(incorporate.WithLifecycleHooks(m.Hooks()))
	require.NoError(t, err)
	ctx := context.Background()

	s, err := engine.Start(ctx, "m1")
	require.NoError(t, err)

	_, err = engine.SubmitSingle(ctx, s, domain.IncorporationCountryID, "uae")
	require.Error(t, err)

	s, err = engine.SubmitSingle(ctx, s, domain.CompanyStatusID, "existing")
	require.NoError(t, err)
	s, err = engine.SubmitSingle(ctx, s, domain.IncorporationCountryID, "other")
	require.NoError(t, err)

	for !s.Completed() {
		q, err := engine.CurrentQuestion(s)
		require.NoError(t, err)
		if q.MultiSelect {
			s, err = engine.ToggleMulti(ctx, s, q.ID, domain.SentinelAll)
			require.NoError(t, err)
			s, err = engine.SubmitMulti(ctx, s, q.ID)
		} else {
			s, err = engine.SubmitSingle(ctx, s, q.ID, q.Options[0].ID)
		}
		require.NoError(t, err)
	}

	assert.Equal(t, 1.0, testutil.ToFloat64(m.SessionsStarted))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Rejections.WithLabelValues("submit_single")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Answers.WithLabelValues(domain.CompanyStatusID)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.FlowsSelected.WithLabelValues("existing_other")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Completions.WithLabelValues("existing_other")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.Completions.WithLabelValues("new")))

	w := httptest.NewRecorder()
	HandlerFor(reg).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Contains(t, w.Body.String(), "incorporate_sessions_started_total 1")
}

func TestCaptureHook(t *testing.T) {
	_, m := NewRegistry()
	hook := m.CaptureHook()

	hook(context.Background(), &domain.Lead{ID: "l1"}, nil)
	hook(context.Background(), &domain.Lead{ID: "l2"}, nil)
	hook(context.Background(), &domain.Lead{ID: "l3"}, errors.New("crm down"))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Leads.WithLabelValues("submitted")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Leads.WithLabelValues("failed")))
}

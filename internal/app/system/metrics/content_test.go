package metrics

import (
	"context"
	"strings"
	"testing"

	metricsstore "github.com/edumanage/schoolsite/internal/app/store/metrics"
	"github.com/edumanage/schoolsite/internal/domain/models"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatchContent_ExportsGauges(t *testing.T) {
	m := New()
	calls := 0
	err := m.WatchContent(func(ctx context.Context) metricsstore.Counts {
		calls++
		_, hasDeadline := ctx.Deadline()
		assert.True(t, hasDeadline)
		return metricsstore.Counts{
			ContactsByStatus: map[models.ContactStatus]int64{
				models.ContactStatusNew:      4,
				models.ContactStatusResolved: 1,
			},
			TestimonialsActive:   6,
			TestimonialsInactive: 2,
		}
	})
	require.NoError(t, err)

	want := `
# HELP contact_submissions_stored Stored contact submissions by status
# TYPE contact_submissions_stored gauge
contact_submissions_stored{status="in_progress"} 0
contact_submissions_stored{status="new"} 4
contact_submissions_stored{status="resolved"} 1
# HELP testimonials_stored Stored testimonials by active flag
# TYPE testimonials_stored gauge
testimonials_stored{active="false"} 2
testimonials_stored{active="true"} 6
`
	err = testutil.GatherAndCompare(m.Registry(), strings.NewReader(want),
		"contact_submissions_stored", "testimonials_stored")
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestWatchContent_RegistersOnce(t *testing.T) {
	m := New()
	src := func(context.Context) metricsstore.Counts { return metricsstore.Counts{} }
	require.NoError(t, m.WatchContent(src))
	assert.Error(t, m.WatchContent(src))
}

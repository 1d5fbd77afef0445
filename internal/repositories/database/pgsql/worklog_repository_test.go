package pgsql

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shiftwise-app/shiftwise_backend/internal/core/domain"
	portsrepo "github.com/shiftwise-app/shiftwise_backend/internal/core/ports/repositories"
	"github.com/shiftwise-app/shiftwise_backend/internal/utils/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func datedLog(date time.Time, createdAt time.Time) domain.WorkLog {
	return domain.WorkLog{
		WorkLogID: uuid.NewString(),
		Type:      domain.WorkLogParticular,
		Date:      &date,
		CreatedAt: createdAt,
	}
}

func undatedLog(createdAt time.Time) domain.WorkLog {
	return domain.WorkLog{
		WorkLogID: uuid.NewString(),
		Type:      domain.WorkLogParticular,
		CreatedAt: createdAt,
	}
}

// The ORDER BY key and the keyset predicate must use the same never-NULL
// expression. With a two-column COALESCE the predicate evaluated to NULL for
// undated manual entries, which dropped them from every page after the first.
func TestListWorkLogsQuery_SortKeyAndPredicateAreSymmetric(t *testing.T) {
	token := pagination.EncodeToken(
		time.Date(2025, time.June, 3, 0, 0, 0, 0, time.UTC),
		time.Date(2025, time.June, 3, 18, 0, 0, 0, time.UTC),
	)

	query, args, limit, err := buildListWorkLogsQuery(portsrepo.ListWorkLogsParams{
		Limit:     50,
		PageToken: token,
	})

	require.NoError(t, err)
	assert.Equal(t, 50, limit)
	assert.Contains(t, query, `(COALESCE(date, start_date, created_at), created_at) < ($1, $2)`)
	assert.Contains(t, query, `ORDER BY COALESCE(date, start_date, created_at) DESC, created_at DESC`)
	assert.NotContains(t, query, "NULLS LAST")
	require.Len(t, args, 3) // token date, token created_at, limit+1
	assert.Equal(t, 51, args[2])
}

func TestListWorkLogsQuery_RejectsMalformedToken(t *testing.T) {
	_, _, _, err := buildListWorkLogsQuery(portsrepo.ListWorkLogsParams{
		Limit:     10,
		PageToken: "not-a-token",
	})
	assert.Error(t, err)
}

func TestListWorkLogsQuery_DefaultsLimit(t *testing.T) {
	query, args, limit, err := buildListWorkLogsQuery(portsrepo.ListWorkLogsParams{})

	require.NoError(t, err)
	assert.Equal(t, 50, limit)
	require.Len(t, args, 1)
	assert.Equal(t, 51, args[0])
	assert.True(t, strings.HasSuffix(query, "LIMIT $1;"))
}

func TestWorkLogPage_UndatedBoundaryRowStaysReachable(t *testing.T) {
	base := time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)

	// Page boundary lands on an undated entry; two more rows follow.
	page := []domain.WorkLog{
		datedLog(time.Date(2025, time.June, 10, 0, 0, 0, 0, time.UTC), base.Add(3*time.Hour)),
		undatedLog(base.Add(2 * time.Hour)),
		undatedLog(base.Add(time.Hour)),
		datedLog(time.Date(2025, time.May, 20, 0, 0, 0, 0, time.UTC), base),
	}

	got, token := workLogPage(page, 2)

	require.Len(t, got, 2)
	require.NotEmpty(t, token)

	// The token's sort key for an undated row is its creation timestamp, the
	// same value COALESCE(date, start_date, created_at) yields in the
	// predicate, so the next page picks up right behind it.
	tokenDate, tokenCreated, err := pagination.DecodeToken(token)
	require.NoError(t, err)
	assert.True(t, tokenDate.Equal(base.Add(2*time.Hour)))
	assert.True(t, tokenCreated.Equal(base.Add(2*time.Hour)))
}

func TestWorkLogPage_DatedBoundaryRowEncodesItsDate(t *testing.T) {
	date := time.Date(2025, time.June, 10, 0, 0, 0, 0, time.UTC)
	createdAt := time.Date(2025, time.June, 10, 9, 30, 0, 0, time.UTC)

	page := []domain.WorkLog{
		datedLog(date, createdAt),
		undatedLog(createdAt.Add(-time.Hour)),
	}

	got, token := workLogPage(page, 1)

	require.Len(t, got, 1)
	tokenDate, tokenCreated, err := pagination.DecodeToken(token)
	require.NoError(t, err)
	assert.True(t, tokenDate.Equal(date))
	assert.True(t, tokenCreated.Equal(createdAt))
}

func TestWorkLogPage_LastPageHasNoToken(t *testing.T) {
	page := []domain.WorkLog{
		undatedLog(time.Now()),
	}

	got, token := workLogPage(page, 50)

	assert.Len(t, got, 1)
	assert.Empty(t, token)
}

package timesheet_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/bacembenhfayehd/manarja-sub001/internal/timeentry"
	"github.com/bacembenhfayehd/manarja-sub001/internal/timesheet"
)

var (
	weekStart = time.Date(2025, time.March, 3, 0, 0, 0, 0, time.UTC)
	weekEnd   = weekStart.AddDate(0, 0, 6)
	rangeEnd  = weekEnd.AddDate(0, 0, 1)
)

type mocks struct {
	repo *timesheet.MockRepository
	tx   *timesheet.MockTx
}

func newService(t *testing.T) (*timesheet.Service, mocks) {
	t.Helper()

	ctrl := gomock.NewController(t)

	m := mocks{
		repo: timesheet.NewMockRepository(ctrl),
		tx:   timesheet.NewMockTx(ctrl),
	}

	return timesheet.NewService(m.repo), m
}

func expectTx(m mocks) {
	m.repo.EXPECT().Begin(gomock.Any()).Return(m.tx, nil)
	m.tx.EXPECT().Rollback().Return(nil).AnyTimes()
}

func TestService_Create(t *testing.T) {
	userID := uuid.New()

	t.Run("PullsInUnassignedEntriesAndTotals", func(t *testing.T) {
		svc, m := newService(t)

		expectTx(m)
		m.tx.EXPECT().CreateTimesheet(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, ts *timesheet.Timesheet) error {
				ts.ID = uuid.New()
				return nil
			})
		m.tx.EXPECT().AssignUnassignedInRange(gomock.Any(), gomock.Any(), userID, weekStart, rangeEnd).Return(nil)
		m.tx.EXPECT().RecomputeTotal(gomock.Any(), gomock.Any()).Return(decimal.RequireFromString("12.5"), nil)
		m.tx.EXPECT().Commit().Return(nil)

		got, err := svc.Create(context.Background(), timesheet.CreateParams{
			UserID:    userID,
			WeekStart: weekStart,
			WeekEnd:   weekEnd,
		})
		require.NoError(t, err)
		assert.Equal(t, timesheet.StatusDraft, got.Status)
		assert.True(t, got.TotalHours.Equal(decimal.RequireFromString("12.5")))
	})

	t.Run("InvalidWeekWindow", func(t *testing.T) {
		svc, _ := newService(t)

		_, err := svc.Create(context.Background(), timesheet.CreateParams{
			UserID:    userID,
			WeekStart: weekStart,
			WeekEnd:   weekStart,
		})
		assert.ErrorIs(t, err, timesheet.ErrInvalidWeek)
	})

	t.Run("DuplicateWeek", func(t *testing.T) {
		svc, m := newService(t)

		expectTx(m)
		m.tx.EXPECT().CreateTimesheet(gomock.Any(), gomock.Any()).Return(timesheet.ErrDuplicate)

		_, err := svc.Create(context.Background(), timesheet.CreateParams{
			UserID:    userID,
			WeekStart: weekStart,
			WeekEnd:   weekEnd,
		})
		assert.ErrorIs(t, err, timesheet.ErrDuplicate)
	})
}

func TestService_Generate(t *testing.T) {
	userID := uuid.New()

	t.Run("RefusesEmptyWeek", func(t *testing.T) {
		svc, m := newService(t)

		expectTx(m)
		m.tx.EXPECT().CountUnassignedInRange(gomock.Any(), userID, weekStart, rangeEnd).Return(0, nil)

		_, err := svc.Generate(context.Background(), userID, weekStart)
		assert.ErrorIs(t, err, timesheet.ErrNoEntries)
	})

	t.Run("DerivesWeekEndAndAssigns", func(t *testing.T) {
		svc, m := newService(t)

		expectTx(m)
		m.tx.EXPECT().CountUnassignedInRange(gomock.Any(), userID, weekStart, rangeEnd).Return(3, nil)
		m.tx.EXPECT().CreateTimesheet(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, ts *timesheet.Timesheet) error {
				assert.Equal(t, weekEnd, ts.WeekEnd)
				ts.ID = uuid.New()
				return nil
			})
		m.tx.EXPECT().AssignUnassignedInRange(gomock.Any(), gomock.Any(), userID, weekStart, rangeEnd).Return(nil)
		m.tx.EXPECT().RecomputeTotal(gomock.Any(), gomock.Any()).Return(decimal.NewFromInt(20), nil)
		m.tx.EXPECT().Commit().Return(nil)

		got, err := svc.Generate(context.Background(), userID, weekStart)
		require.NoError(t, err)
		assert.True(t, got.TotalHours.Equal(decimal.NewFromInt(20)))
	})
}

func TestService_Submit(t *testing.T) {
	sheetID := uuid.New()
	userID := uuid.New()

	draft := func() *timesheet.Timesheet {
		return &timesheet.Timesheet{
			ID:        sheetID,
			UserID:    userID,
			WeekStart: weekStart,
			WeekEnd:   weekEnd,
			Status:    timesheet.StatusDraft,
		}
	}

	t.Run("StampsAndRetotals", func(t *testing.T) {
		svc, m := newService(t)

		expectTx(m)
		m.tx.EXPECT().GetTimesheet(gomock.Any(), sheetID).Return(draft(), nil)
		m.tx.EXPECT().CountMemberEntries(gomock.Any(), sheetID).Return(4, nil)
		m.tx.EXPECT().RecomputeTotal(gomock.Any(), sheetID).Return(decimal.NewFromInt(32), nil)
		m.tx.EXPECT().UpdateTimesheet(gomock.Any(), gomock.Any()).Return(nil)
		m.tx.EXPECT().Commit().Return(nil)

		got, err := svc.Submit(context.Background(), sheetID)
		require.NoError(t, err)
		assert.Equal(t, timesheet.StatusSubmitted, got.Status)
		require.NotNil(t, got.SubmittedAt)
		assert.True(t, got.TotalHours.Equal(decimal.NewFromInt(32)))
	})

	t.Run("EmptySheetRefused", func(t *testing.T) {
		svc, m := newService(t)

		expectTx(m)
		m.tx.EXPECT().GetTimesheet(gomock.Any(), sheetID).Return(draft(), nil)
		m.tx.EXPECT().CountMemberEntries(gomock.Any(), sheetID).Return(0, nil)

		_, err := svc.Submit(context.Background(), sheetID)
		assert.ErrorIs(t, err, timesheet.ErrEmptyTimesheet)
	})

	t.Run("OnlyDraftsSubmit", func(t *testing.T) {
		svc, m := newService(t)

		submitted := draft()
		submitted.Status = timesheet.StatusSubmitted

		expectTx(m)
		m.tx.EXPECT().GetTimesheet(gomock.Any(), sheetID).Return(submitted, nil)

		_, err := svc.Submit(context.Background(), sheetID)
		assert.ErrorIs(t, err, timesheet.ErrInvalidTransition)
	})
}

func TestService_ApproveReject(t *testing.T) {
	sheetID := uuid.New()
	ownerID := uuid.New()
	managerID := uuid.New()

	submitted := func() *timesheet.Timesheet {
		now := time.Now()
		return &timesheet.Timesheet{
			ID:          sheetID,
			UserID:      ownerID,
			WeekStart:   weekStart,
			WeekEnd:     weekEnd,
			Status:      timesheet.StatusSubmitted,
			SubmittedAt: &now,
		}
	}

	t.Run("ApproveStampsApprover", func(t *testing.T) {
		svc, m := newService(t)

		expectTx(m)
		m.tx.EXPECT().GetTimesheet(gomock.Any(), sheetID).Return(submitted(), nil)
		m.tx.EXPECT().UpdateTimesheet(gomock.Any(), gomock.Any()).Return(nil)
		m.tx.EXPECT().Commit().Return(nil)

		got, err := svc.Approve(context.Background(), sheetID, managerID, "looks good")
		require.NoError(t, err)
		assert.Equal(t, timesheet.StatusApproved, got.Status)
		require.NotNil(t, got.ApprovedBy)
		assert.Equal(t, managerID, *got.ApprovedBy)
		assert.Nil(t, got.RejectedAt)
		assert.Equal(t, "looks good", got.Comments)
	})

	t.Run("RejectClearsApprovalStamps", func(t *testing.T) {
		svc, m := newService(t)

		ts := submitted()
		prev := time.Now().Add(-time.Hour)
		ts.ApprovedAt = &prev
		ts.ApprovedBy = &managerID

		expectTx(m)
		m.tx.EXPECT().GetTimesheet(gomock.Any(), sheetID).Return(ts, nil)
		m.tx.EXPECT().UpdateTimesheet(gomock.Any(), gomock.Any()).Return(nil)
		m.tx.EXPECT().Commit().Return(nil)

		got, err := svc.Reject(context.Background(), sheetID, managerID, "missing friday")
		require.NoError(t, err)
		assert.Equal(t, timesheet.StatusRejected, got.Status)
		assert.Nil(t, got.ApprovedAt)
		assert.Nil(t, got.ApprovedBy)
		require.NotNil(t, got.RejectedBy)
		assert.Equal(t, managerID, *got.RejectedBy)
	})

	t.Run("OwnerCannotApproveOwnSheet", func(t *testing.T) {
		svc, m := newService(t)

		expectTx(m)
		m.tx.EXPECT().GetTimesheet(gomock.Any(), sheetID).Return(submitted(), nil)

		_, err := svc.Approve(context.Background(), sheetID, ownerID, "")
		assert.ErrorIs(t, err, timesheet.ErrSelfApproval)
	})

	t.Run("DraftCannotBeApproved", func(t *testing.T) {
		svc, m := newService(t)

		ts := submitted()
		ts.Status = timesheet.StatusDraft

		expectTx(m)
		m.tx.EXPECT().GetTimesheet(gomock.Any(), sheetID).Return(ts, nil)

		_, err := svc.Approve(context.Background(), sheetID, managerID, "")
		assert.ErrorIs(t, err, timesheet.ErrInvalidTransition)
	})
}

func TestService_Reopen(t *testing.T) {
	sheetID := uuid.New()

	t.Run("RejectedGoesBackToDraft", func(t *testing.T) {
		svc, m := newService(t)

		now := time.Now()
		rejectedBy := uuid.New()
		ts := &timesheet.Timesheet{
			ID:          sheetID,
			UserID:      uuid.New(),
			Status:      timesheet.StatusRejected,
			SubmittedAt: &now,
			RejectedAt:  &now,
			RejectedBy:  &rejectedBy,
		}

		expectTx(m)
		m.tx.EXPECT().GetTimesheet(gomock.Any(), sheetID).Return(ts, nil)
		m.tx.EXPECT().UpdateTimesheet(gomock.Any(), gomock.Any()).Return(nil)
		m.tx.EXPECT().Commit().Return(nil)

		got, err := svc.Reopen(context.Background(), sheetID)
		require.NoError(t, err)
		assert.Equal(t, timesheet.StatusDraft, got.Status)
		assert.Nil(t, got.SubmittedAt)
		assert.NotNil(t, got.RejectedAt, "rejection history kept")
	})

	t.Run("OnlyRejectedReopens", func(t *testing.T) {
		svc, m := newService(t)

		expectTx(m)
		m.tx.EXPECT().GetTimesheet(gomock.Any(), sheetID).Return(&timesheet.Timesheet{
			ID:     sheetID,
			Status: timesheet.StatusDraft,
		}, nil)

		_, err := svc.Reopen(context.Background(), sheetID)
		assert.ErrorIs(t, err, timesheet.ErrInvalidTransition)
	})
}

func TestService_AddEntries(t *testing.T) {
	sheetID := uuid.New()
	userID := uuid.New()

	draft := func() *timesheet.Timesheet {
		return &timesheet.Timesheet{
			ID:        sheetID,
			UserID:    userID,
			WeekStart: weekStart,
			WeekEnd:   weekEnd,
			Status:    timesheet.StatusDraft,
		}
	}

	memberEntry := func(id uuid.UUID) *timeentry.Entry {
		return &timeentry.Entry{
			ID:     id,
			UserID: userID,
			Start:  weekStart.Add(9 * time.Hour),
			Hours:  decimal.NewFromInt(8),
		}
	}

	t.Run("AssignsAndRetotals", func(t *testing.T) {
		svc, m := newService(t)

		entryID := uuid.New()
		ids := []uuid.UUID{entryID}

		expectTx(m)
		m.tx.EXPECT().GetTimesheet(gomock.Any(), sheetID).Return(draft(), nil)
		m.tx.EXPECT().GetEntries(gomock.Any(), ids).Return([]*timeentry.Entry{memberEntry(entryID)}, nil)
		m.tx.EXPECT().AssignEntries(gomock.Any(), sheetID, ids).Return(nil)
		m.tx.EXPECT().RecomputeTotal(gomock.Any(), sheetID).Return(decimal.NewFromInt(8), nil)
		m.tx.EXPECT().Commit().Return(nil)

		got, err := svc.AddEntries(context.Background(), sheetID, ids)
		require.NoError(t, err)
		assert.True(t, got.TotalHours.Equal(decimal.NewFromInt(8)))
	})

	t.Run("ForeignOwnerRefused", func(t *testing.T) {
		svc, m := newService(t)

		entryID := uuid.New()
		foreign := memberEntry(entryID)
		foreign.UserID = uuid.New()

		expectTx(m)
		m.tx.EXPECT().GetTimesheet(gomock.Any(), sheetID).Return(draft(), nil)
		m.tx.EXPECT().GetEntries(gomock.Any(), []uuid.UUID{entryID}).Return([]*timeentry.Entry{foreign}, nil)

		_, err := svc.AddEntries(context.Background(), sheetID, []uuid.UUID{entryID})
		assert.ErrorIs(t, err, timesheet.ErrInvalidMembership)
	})

	t.Run("StartOutsideWeekRefused", func(t *testing.T) {
		svc, m := newService(t)

		entryID := uuid.New()
		outside := memberEntry(entryID)
		outside.Start = weekStart.AddDate(0, 0, 7)

		expectTx(m)
		m.tx.EXPECT().GetTimesheet(gomock.Any(), sheetID).Return(draft(), nil)
		m.tx.EXPECT().GetEntries(gomock.Any(), []uuid.UUID{entryID}).Return([]*timeentry.Entry{outside}, nil)

		_, err := svc.AddEntries(context.Background(), sheetID, []uuid.UUID{entryID})
		assert.ErrorIs(t, err, timesheet.ErrInvalidMembership)
	})

	t.Run("EntryOnAnotherSheetRefused", func(t *testing.T) {
		svc, m := newService(t)

		entryID := uuid.New()
		otherSheet := uuid.New()
		taken := memberEntry(entryID)
		taken.TimesheetID = &otherSheet

		expectTx(m)
		m.tx.EXPECT().GetTimesheet(gomock.Any(), sheetID).Return(draft(), nil)
		m.tx.EXPECT().GetEntries(gomock.Any(), []uuid.UUID{entryID}).Return([]*timeentry.Entry{taken}, nil)

		_, err := svc.AddEntries(context.Background(), sheetID, []uuid.UUID{entryID})
		assert.ErrorIs(t, err, timesheet.ErrInvalidMembership)
	})

	t.Run("SubmittedSheetRefused", func(t *testing.T) {
		svc, m := newService(t)

		ts := draft()
		ts.Status = timesheet.StatusSubmitted

		expectTx(m)
		m.tx.EXPECT().GetTimesheet(gomock.Any(), sheetID).Return(ts, nil)

		_, err := svc.AddEntries(context.Background(), sheetID, []uuid.UUID{uuid.New()})
		assert.ErrorIs(t, err, timesheet.ErrInvalidTransition)
	})
}

func TestService_RemoveEntry(t *testing.T) {
	sheetID := uuid.New()
	userID := uuid.New()
	entryID := uuid.New()

	draft := &timesheet.Timesheet{
		ID:        sheetID,
		UserID:    userID,
		WeekStart: weekStart,
		WeekEnd:   weekEnd,
		Status:    timesheet.StatusDraft,
	}

	t.Run("UnassignsAndRetotals", func(t *testing.T) {
		svc, m := newService(t)

		member := &timeentry.Entry{ID: entryID, UserID: userID, TimesheetID: &sheetID}

		expectTx(m)
		m.tx.EXPECT().GetTimesheet(gomock.Any(), sheetID).Return(draft, nil)
		m.tx.EXPECT().GetEntries(gomock.Any(), []uuid.UUID{entryID}).Return([]*timeentry.Entry{member}, nil)
		m.tx.EXPECT().UnassignEntry(gomock.Any(), entryID).Return(nil)
		m.tx.EXPECT().RecomputeTotal(gomock.Any(), sheetID).Return(decimal.Zero, nil)
		m.tx.EXPECT().Commit().Return(nil)

		got, err := svc.RemoveEntry(context.Background(), sheetID, entryID)
		require.NoError(t, err)
		assert.True(t, got.TotalHours.IsZero())
	})

	t.Run("NonMemberRefused", func(t *testing.T) {
		svc, m := newService(t)

		stray := &timeentry.Entry{ID: entryID, UserID: userID}

		expectTx(m)
		m.tx.EXPECT().GetTimesheet(gomock.Any(), sheetID).Return(draft, nil)
		m.tx.EXPECT().GetEntries(gomock.Any(), []uuid.UUID{entryID}).Return([]*timeentry.Entry{stray}, nil)

		_, err := svc.RemoveEntry(context.Background(), sheetID, entryID)
		assert.ErrorIs(t, err, timesheet.ErrInvalidMembership)
	})
}

func TestService_Delete(t *testing.T) {
	sheetID := uuid.New()

	t.Run("ApprovedSheetIsImmutable", func(t *testing.T) {
		svc, m := newService(t)

		expectTx(m)
		m.tx.EXPECT().GetTimesheet(gomock.Any(), sheetID).Return(&timesheet.Timesheet{
			ID:     sheetID,
			Status: timesheet.StatusApproved,
		}, nil)

		err := svc.Delete(context.Background(), sheetID)
		assert.ErrorIs(t, err, timesheet.ErrImmutable)
	})

	t.Run("MembersOutliveTheSheet", func(t *testing.T) {
		svc, m := newService(t)

		expectTx(m)
		m.tx.EXPECT().GetTimesheet(gomock.Any(), sheetID).Return(&timesheet.Timesheet{
			ID:     sheetID,
			Status: timesheet.StatusDraft,
		}, nil)
		m.tx.EXPECT().UnassignAll(gomock.Any(), sheetID).Return(nil)
		m.tx.EXPECT().DeleteTimesheet(gomock.Any(), sheetID).Return(nil)
		m.tx.EXPECT().Commit().Return(nil)

		err := svc.Delete(context.Background(), sheetID)
		assert.NoError(t, err)
	})
}

func TestService_Summarize(t *testing.T) {
	svc, m := newService(t)

	sheetID := uuid.New()
	userID := uuid.New()

	monday := weekStart.Add(9 * time.Hour)
	tuesday := weekStart.AddDate(0, 0, 1).Add(10 * time.Hour)

	// Same instant as monday 14:00 UTC, written with a +02:00 offset.
	mondayOffset := monday.Add(5 * time.Hour).In(time.FixedZone("EET", 2*60*60))

	m.repo.EXPECT().GetTimesheet(gomock.Any(), sheetID).Return(&timesheet.Timesheet{
		ID:     sheetID,
		UserID: userID,
		Status: timesheet.StatusDraft,
	}, nil)
	m.repo.EXPECT().ListMemberEntries(gomock.Any(), sheetID).Return([]*timeentry.Entry{
		{ID: uuid.New(), UserID: userID, Start: tuesday, Hours: decimal.NewFromInt(2)},
		{ID: uuid.New(), UserID: userID, Start: monday, Hours: decimal.NewFromInt(4), Billable: true},
		{ID: uuid.New(), UserID: userID, Start: mondayOffset, Hours: decimal.NewFromInt(3), Billable: true},
	}, nil)

	got, err := svc.Summarize(context.Background(), sheetID)
	require.NoError(t, err)

	assert.True(t, got.BillableHours.Equal(decimal.NewFromInt(7)))
	assert.True(t, got.NonBillableHours.Equal(decimal.NewFromInt(2)))

	// Days come back chronological, bucketed on the UTC date: the
	// offset-carrying entry joins monday's bucket instead of opening
	// one of its own.
	require.Len(t, got.Days, 2)
	assert.Equal(t, weekStart, got.Days[0].Date)
	assert.True(t, got.Days[0].Hours.Equal(decimal.NewFromInt(7)))
	assert.Equal(t, 2, got.Days[0].Entries)
	assert.True(t, got.Days[1].Hours.Equal(decimal.NewFromInt(2)))
	assert.Equal(t, 1, got.Days[1].Entries)
}

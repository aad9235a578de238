package importer_test

import (
	"io"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/bacembenhfayehd/manarja-sub001/internal/importer"
)

func TestService_Parse(t *testing.T) {
	svc := importer.NewService()

	t.Run("FullHeader", func(t *testing.T) {
		input := strings.Join([]string{
			"start,end,description,billable,hours",
			"2025-03-03T09:00:00Z,2025-03-03T12:30:00Z,sprint planning,true,",
			"2025-03-03 14:00,2025-03-03 16:00,afternoon focus block,false,",
		}, "\n")

		rows, err := svc.Parse(strings.NewReader(input))
		require.NoError(t, err)
		require.Len(t, rows, 2)

		first := rows[0]
		assert.Equal(t, time.Date(2025, time.March, 3, 9, 0, 0, 0, time.UTC), first.Start)
		require.NotNil(t, first.End)
		assert.Equal(t, time.Date(2025, time.March, 3, 12, 30, 0, 0, time.UTC), *first.End)
		assert.Equal(t, "sprint planning", first.Description)
		assert.True(t, first.Billable)
		assert.Nil(t, first.Hours)

		second := rows[1]
		require.NotNil(t, second.End)
		assert.False(t, second.Billable)
	})

	t.Run("ExplicitHoursColumn", func(t *testing.T) {
		input := "start,end,description,hours\n2025-03-03 09:00,2025-03-03 11:00,client call,2.25\n"

		rows, err := svc.Parse(strings.NewReader(input))
		require.NoError(t, err)
		require.Len(t, rows, 1)
		require.NotNil(t, rows[0].Hours)
		assert.True(t, rows[0].Hours.Equal(decimal.RequireFromString("2.25")))
	})

	t.Run("ColumnsInAnyOrder", func(t *testing.T) {
		input := "Description,End,Start\nstandup,2025-03-03 09:15,2025-03-03 09:00\n"

		rows, err := svc.Parse(strings.NewReader(input))
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "standup", rows[0].Description)
	})

	t.Run("MissingStartColumn", func(t *testing.T) {
		input := "end,description\n2025-03-03 17:00,wrap up\n"

		_, err := svc.Parse(strings.NewReader(input))
		require.Error(t, err)
		assert.Contains(t, err.Error(), `missing required column "start"`)
	})

	t.Run("MissingEndColumn", func(t *testing.T) {
		input := "start,description\n2025-03-03 09:00,open ended\n"

		_, err := svc.Parse(strings.NewReader(input))
		require.Error(t, err)
		assert.Contains(t, err.Error(), `missing required column "end"`)
	})

	t.Run("EmptyEndRefused", func(t *testing.T) {
		input := strings.Join([]string{
			"start,end,description",
			"2025-03-03 09:00,2025-03-03 10:00,closed",
			"2025-03-03 11:00,,would-be running timer",
		}, "\n")

		_, err := svc.Parse(strings.NewReader(input))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "row 3")
		assert.Contains(t, err.Error(), "end")
	})

	t.Run("BadTimestampReportsRow", func(t *testing.T) {
		input := strings.Join([]string{
			"start,end,description",
			"2025-03-03 09:00,2025-03-03 10:00,fine",
			"03/03/2025,2025-03-03 11:00,american date",
		}, "\n")

		_, err := svc.Parse(strings.NewReader(input))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "row 3")
	})

	t.Run("BadBillableValue", func(t *testing.T) {
		input := "start,end,description,billable\n2025-03-03 09:00,2025-03-03 10:00,call,yes-ish\n"

		_, err := svc.Parse(strings.NewReader(input))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "billable")
	})

	t.Run("EmptyFile", func(t *testing.T) {
		_, err := svc.Parse(strings.NewReader(""))
		assert.Error(t, err)
	})

	t.Run("Windows1252Export", func(t *testing.T) {
		raw := "start,end,description\n2025-03-03 09:00,2025-03-03 10:30,réunion détaillée\n"

		encoded, err := io.ReadAll(transform.NewReader(strings.NewReader(raw), charmap.Windows1252.NewEncoder()))
		require.NoError(t, err)

		rows, err := svc.Parse(strings.NewReader(string(encoded)))
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "réunion détaillée", rows[0].Description)
	})
}

package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func hostEventRow() []any {
	return []any{
		time.Date(2026, 3, 1, 10, 30, 0, 0, time.UTC), // time
		"node001",  // host
		"12345",    // jid
		"compute",  // type
		"cpu_load", // event
		"load",     // unit
		1.25,       // value
		0.5,        // diff
		0.1,        // arc
	}
}

func jobRow() []any {
	return []any{
		"12345", // jid
		time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),  // submit_time
		time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC), // start_time
		time.Date(2026, 3, 1, 11, 0, 0, 0, time.UTC), // end_time
		3600.0,                        // runtime
		7200.0,                        // timelimit
		2.0,                           // node_hrs
		int64(2),                      // nhosts
		int64(96),                     // ncores
		int64(4),                      // ngpus
		"alice",                       // username
		"acct-42",                     // account
		"normal",                      // queue
		"COMPLETED",                   // state
		"lammps-run",                  // jobname
		"0:0",                         // exitcode
		[]string{"node001", "node002"}, // host_list
	}
}

func TestToHostEvent(t *testing.T) {
	t.Run("maps a full row", func(t *testing.T) {
		ev, err := ToHostEvent(hostEventRow())
		require.NoError(t, err)

		require.Equal(t, time.Date(2026, 3, 1, 10, 30, 0, 0, time.UTC), ev.Time)
		require.Equal(t, "node001", ev.Host)
		require.Equal(t, "12345", ev.JID)
		require.NotNil(t, ev.Type)
		require.Equal(t, "compute", *ev.Type)
		require.Equal(t, "cpu_load", ev.Event)
		require.Equal(t, "load", ev.Unit)
		require.Equal(t, 1.25, ev.Value)
		require.NotNil(t, ev.Diff)
		require.Equal(t, 0.5, *ev.Diff)
		require.NotNil(t, ev.Arc)
		require.Equal(t, 0.1, *ev.Arc)
	})

	t.Run("maps NULL optional fields", func(t *testing.T) {
		row := hostEventRow()
		row[3] = nil // type
		row[7] = nil // diff
		row[8] = nil // arc

		ev, err := ToHostEvent(row)
		require.NoError(t, err)
		require.Nil(t, ev.Type)
		require.Nil(t, ev.Diff)
		require.Nil(t, ev.Arc)
	})

	t.Run("accepts float32 values from the driver", func(t *testing.T) {
		row := hostEventRow()
		row[6] = float32(2.5)

		ev, err := ToHostEvent(row)
		require.NoError(t, err)
		require.Equal(t, 2.5, ev.Value)
	})

	t.Run("rejects short rows", func(t *testing.T) {
		_, err := ToHostEvent(hostEventRow()[:5])

		var malformed *MalformedRecordError
		require.ErrorAs(t, err, &malformed)
		require.Equal(t, "host_event", malformed.Entity)
		require.Equal(t, 9, malformed.Want)
		require.Equal(t, 5, malformed.Got)
	})

	t.Run("rejects long rows", func(t *testing.T) {
		_, err := ToHostEvent(append(hostEventRow(), "extra"))

		var malformed *MalformedRecordError
		require.ErrorAs(t, err, &malformed)
		require.Equal(t, 10, malformed.Got)
	})

	t.Run("rejects a field of the wrong type", func(t *testing.T) {
		row := hostEventRow()
		row[6] = "not-a-number" // value

		_, err := ToHostEvent(row)

		var malformed *MalformedRecordError
		require.ErrorAs(t, err, &malformed)
		require.Contains(t, malformed.Reason, "value")
	})

	t.Run("reports the first bad field only", func(t *testing.T) {
		row := hostEventRow()
		row[1] = 42            // host
		row[6] = "also broken" // value

		_, err := ToHostEvent(row)

		var malformed *MalformedRecordError
		require.ErrorAs(t, err, &malformed)
		require.Contains(t, malformed.Reason, "host")
	})
}

func TestToJob(t *testing.T) {
	t.Run("maps a full row", func(t *testing.T) {
		job, err := ToJob(jobRow())
		require.NoError(t, err)

		require.Equal(t, "12345", job.JID)
		require.Equal(t, time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC), job.StartTime)
		require.NotNil(t, job.Runtime)
		require.Equal(t, 3600.0, *job.Runtime)
		require.NotNil(t, job.NHosts)
		require.EqualValues(t, 2, *job.NHosts)
		require.NotNil(t, job.NCores)
		require.EqualValues(t, 96, *job.NCores)
		require.Equal(t, "alice", job.Username)
		require.NotNil(t, job.Account)
		require.Equal(t, "acct-42", *job.Account)
		require.NotNil(t, job.ExitCode)
		require.Equal(t, "0:0", *job.ExitCode)
		require.Equal(t, []string{"node001", "node002"}, job.HostList)
	})

	t.Run("maps NULL optional fields", func(t *testing.T) {
		row := jobRow()
		for _, idx := range []int{4, 5, 6, 7, 8, 9, 11, 12, 13, 14, 15, 16} {
			row[idx] = nil
		}

		job, err := ToJob(row)
		require.NoError(t, err)
		require.Nil(t, job.Runtime)
		require.Nil(t, job.NGPUs)
		require.Nil(t, job.Account)
		require.Nil(t, job.ExitCode)
		require.Nil(t, job.HostList)
	})

	t.Run("accepts narrower integer widths", func(t *testing.T) {
		row := jobRow()
		row[7] = int32(2)
		row[8] = int16(96)
		row[9] = 4

		job, err := ToJob(row)
		require.NoError(t, err)
		require.EqualValues(t, 2, *job.NHosts)
		require.EqualValues(t, 96, *job.NCores)
		require.EqualValues(t, 4, *job.NGPUs)
	})

	t.Run("accepts host_list as a generic slice", func(t *testing.T) {
		row := jobRow()
		row[16] = []any{"node003", "node004"}

		job, err := ToJob(row)
		require.NoError(t, err)
		require.Equal(t, []string{"node003", "node004"}, job.HostList)
	})

	t.Run("rejects non-string host_list elements", func(t *testing.T) {
		row := jobRow()
		row[16] = []any{"node003", 7}

		_, err := ToJob(row)

		var malformed *MalformedRecordError
		require.ErrorAs(t, err, &malformed)
		require.Contains(t, malformed.Reason, "host_list")
	})

	t.Run("rejects wrong arity", func(t *testing.T) {
		_, err := ToJob(jobRow()[:16])

		var malformed *MalformedRecordError
		require.ErrorAs(t, err, &malformed)
		require.Equal(t, "job", malformed.Entity)
		require.Equal(t, 17, malformed.Want)
		require.Equal(t, 16, malformed.Got)
	})
}

func TestMapAll(t *testing.T) {
	t.Run("maps every row", func(t *testing.T) {
		events, err := MapAll([][]any{hostEventRow(), hostEventRow()}, ToHostEvent)
		require.NoError(t, err)
		require.Len(t, events, 2)
	})

	t.Run("empty input yields an empty slice", func(t *testing.T) {
		events, err := MapAll(nil, ToHostEvent)
		require.NoError(t, err)
		require.NotNil(t, events)
		require.Empty(t, events)
	})

	t.Run("one bad row fails the whole batch", func(t *testing.T) {
		rows := [][]any{hostEventRow(), hostEventRow()[:3], hostEventRow()}

		events, err := MapAll(rows, ToHostEvent)

		var malformed *MalformedRecordError
		require.ErrorAs(t, err, &malformed)
		require.Nil(t, events)
	})
}

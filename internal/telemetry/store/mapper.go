package store

import (
	"fmt"
	"time"

	"github.com/hpcstack/telemetry/internal/telemetry/domain"
)

// Field counts for the two telemetry tables. The queries select explicit
// column lists, so a mismatch here means the query and the mapper have
// drifted apart and must be surfaced loudly.
const (
	hostEventArity = 9
	jobArity       = 17
)

// ToHostEvent maps one raw host_data tuple in column order
// (time, host, jid, type, event, unit, value, diff, arc).
func ToHostEvent(row []any) (domain.HostEvent, error) {
	if len(row) != hostEventArity {
		return domain.HostEvent{}, &MalformedRecordError{Entity: "host_event", Want: hostEventArity, Got: len(row)}
	}

	f := fieldReader{entity: "host_event", row: row}
	ev := domain.HostEvent{
		Time:  f.time(0, "time"),
		Host:  f.string(1, "host"),
		JID:   f.string(2, "jid"),
		Type:  f.nullString(3, "type"),
		Event: f.string(4, "event"),
		Unit:  f.string(5, "unit"),
		Value: f.float(6, "value"),
		Diff:  f.nullFloat(7, "diff"),
		Arc:   f.nullFloat(8, "arc"),
	}
	if f.err != nil {
		return domain.HostEvent{}, f.err
	}
	return ev, nil
}

// ToJob maps one raw job_data tuple in column order
// (jid, submit_time, start_time, end_time, runtime, timelimit, node_hrs,
// nhosts, ncores, ngpus, username, account, queue, state, jobname, exitcode,
// host_list).
func ToJob(row []any) (domain.Job, error) {
	if len(row) != jobArity {
		return domain.Job{}, &MalformedRecordError{Entity: "job", Want: jobArity, Got: len(row)}
	}

	f := fieldReader{entity: "job", row: row}
	job := domain.Job{
		JID:        f.string(0, "jid"),
		SubmitTime: f.time(1, "submit_time"),
		StartTime:  f.time(2, "start_time"),
		EndTime:    f.time(3, "end_time"),
		Runtime:    f.nullFloat(4, "runtime"),
		TimeLimit:  f.nullFloat(5, "timelimit"),
		NodeHours:  f.nullFloat(6, "node_hrs"),
		NHosts:     f.nullInt(7, "nhosts"),
		NCores:     f.nullInt(8, "ncores"),
		NGPUs:      f.nullInt(9, "ngpus"),
		Username:   f.string(10, "username"),
		Account:    f.nullString(11, "account"),
		Queue:      f.nullString(12, "queue"),
		State:      f.nullString(13, "state"),
		JobName:    f.nullString(14, "jobname"),
		ExitCode:   f.nullString(15, "exitcode"),
		HostList:   f.stringSlice(16, "host_list"),
	}
	if f.err != nil {
		return domain.Job{}, f.err
	}
	return job, nil
}

// MapAll applies fn to every raw row. Mapping is atomic: the first failure
// aborts the whole batch so a partially-mapped result can never escape.
func MapAll[T any](rows [][]any, fn func([]any) (T, error)) ([]T, error) {
	out := make([]T, 0, len(rows))
	for _, row := range rows {
		mapped, err := fn(row)
		if err != nil {
			return nil, err
		}
		out = append(out, mapped)
	}
	return out, nil
}

// fieldReader carries the first coercion failure so the mappers above read as
// straight field assignment. Once err is set all further reads are no-ops.
type fieldReader struct {
	entity string
	row    []any
	err    error
}

func (f *fieldReader) fail(idx int, name string, v any) {
	if f.err == nil {
		f.err = &MalformedRecordError{
			Entity: f.entity,
			Reason: fmt.Sprintf("field %d (%s): unexpected type %T", idx, name, v),
		}
	}
}

func (f *fieldReader) string(idx int, name string) string {
	if f.err != nil {
		return ""
	}
	s, ok := f.row[idx].(string)
	if !ok {
		f.fail(idx, name, f.row[idx])
		return ""
	}
	return s
}

func (f *fieldReader) nullString(idx int, name string) *string {
	if f.err != nil || f.row[idx] == nil {
		return nil
	}
	s, ok := f.row[idx].(string)
	if !ok {
		f.fail(idx, name, f.row[idx])
		return nil
	}
	return &s
}

func (f *fieldReader) time(idx int, name string) time.Time {
	if f.err != nil {
		return time.Time{}
	}
	t, ok := f.row[idx].(time.Time)
	if !ok {
		f.fail(idx, name, f.row[idx])
		return time.Time{}
	}
	return t
}

func (f *fieldReader) float(idx int, name string) float64 {
	if f.err != nil {
		return 0
	}
	v, ok := asFloat(f.row[idx])
	if !ok {
		f.fail(idx, name, f.row[idx])
		return 0
	}
	return v
}

func (f *fieldReader) nullFloat(idx int, name string) *float64 {
	if f.err != nil || f.row[idx] == nil {
		return nil
	}
	v, ok := asFloat(f.row[idx])
	if !ok {
		f.fail(idx, name, f.row[idx])
		return nil
	}
	return &v
}

func (f *fieldReader) nullInt(idx int, name string) *int64 {
	if f.err != nil || f.row[idx] == nil {
		return nil
	}
	var v int64
	switch n := f.row[idx].(type) {
	case int64:
		v = n
	case int32:
		v = int64(n)
	case int16:
		v = int64(n)
	case int:
		v = int64(n)
	default:
		f.fail(idx, name, f.row[idx])
		return nil
	}
	return &v
}

// stringSlice accepts the shapes the driver produces for text[]: a typed
// string slice, a generic []any of strings, or NULL.
func (f *fieldReader) stringSlice(idx int, name string) []string {
	if f.err != nil || f.row[idx] == nil {
		return nil
	}
	switch v := f.row[idx].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, el := range v {
			s, ok := el.(string)
			if !ok {
				f.fail(idx, name, el)
				return nil
			}
			out = append(out, s)
		}
		return out
	default:
		f.fail(idx, name, f.row[idx])
		return nil
	}
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	default:
		return 0, false
	}
}

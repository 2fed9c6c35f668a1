package backend

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const trace = `time (s), cpu, gpu,
0, 1.5, 10,
2, 2.5, ,
1, NaN, 11,
3, bogus, 13,
not-a-key, 1, 1,
2, 3.5, Inf,
`

func TestReadDataset(t *testing.T) {
	ds, err := ReadDataset(strings.NewReader(trace))
	require.NoError(t, err)
	require.Equal(t, "time (s)", ds.KeyName)
	require.Len(t, ds.Series, 2)
	assert.Equal(t, "cpu", ds.Series[0].Name)
	assert.Equal(t, "gpu", ds.Series[1].Name)

	cpu := ds.Series[0].Data.Values()
	require.Len(t, cpu, 3)
	assert.Equal(t, GraphData{Key: 0, Value: 1.5}, cpu[0])
	assert.Equal(t, 1.0, cpu[1].Key)
	assert.True(t, math.IsNaN(cpu[1].Value), "NaN cells are stored")
	assert.Equal(t, GraphData{Key: 2, Value: 3.5}, cpu[2], "later rows overwrite earlier ones")

	gpu := ds.Series[1].Data.Values()
	require.Len(t, gpu, 4)
	assert.Equal(t, []float64{0, 1, 2, 3}, []float64{gpu[0].Key, gpu[1].Key, gpu[2].Key, gpu[3].Key})
	assert.True(t, math.IsInf(gpu[2].Value, 1))

	r, ok := ds.KeyRange(SignBoth)
	require.True(t, ok)
	assert.Equal(t, Range{Lower: 0, Upper: 3}, r)
	assert.Equal(t, 7, ds.Len())
}

func TestReadDatasetErrors(t *testing.T) {
	_, err := ReadDataset(strings.NewReader("time\n0\n1\n"))
	assert.ErrorIs(t, err, ErrNoSeries)
	_, err = ReadDataset(strings.NewReader(""))
	assert.ErrorIs(t, err, io.EOF)
}

func TestDatasetSetHeadingsTwice(t *testing.T) {
	var ds Dataset
	ds.SetHeadings([]string{"key", "a"})
	ds.SetHeadings([]string{"b"})
	require.Len(t, ds.Series, 2)
	assert.Equal(t, "key", ds.KeyName)
	assert.Equal(t, "b", ds.Series[1].Name)
	ds.Insert([]Row{{Key: 1, Values: []Cell{{Series: 1, Value: 4}}}})
	assert.Equal(t, 0, ds.Series[0].Data.Len())
	assert.Equal(t, 1, ds.Series[1].Data.Len())
}

func waitForStatus(t *testing.T, statuses <-chan Status, done func(Status) bool) Status {
	t.Helper()
	timeout := time.After(5 * time.Second)
	for {
		select {
		case s := <-statuses:
			if done(s) {
				return s
			}
		case <-timeout:
			t.Fatalf("timed out waiting for ingestion status")
			return Status{}
		}
	}
}

func TestDatasourceStream(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d, err := NewDatasource(ctx)
	require.NoError(t, err)
	defer d.Close()

	statuses := d.Status(ctx)
	d.LoadFromStream("inline", ModeReplaying, io.NopCloser(strings.NewReader(trace)))
	s := waitForStatus(t, statuses, func(s Status) bool { return s.Done })
	require.NoError(t, s.Err)
	assert.Equal(t, "inline", s.Source)
	assert.Equal(t, 5, s.Rows)
	assert.Equal(t, 7, s.Samples)

	d.Data().Read(func(ds *Dataset) {
		assert.True(t, ds.Initialized())
		assert.Equal(t, 7, ds.Len())
	})
}

func TestDatasourceReloadDuringIngestion(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d, err := NewDatasource(ctx)
	require.NoError(t, err)
	defer d.Close()

	var large strings.Builder
	large.WriteString("t, a, b, c\n")
	for i := range 400_000 {
		fmt.Fprintf(&large, "%d, %d, %d, %d\n", i, i, 2*i, 3*i)
	}
	statuses := d.Status(ctx)
	for round := range 3 {
		d.LoadFromStream("large", ModeReplaying, io.NopCloser(strings.NewReader(large.String())))
		waitForStatus(t, statuses, func(s Status) bool { return s.Source == "large" && s.Rows > 0 })

		second := fmt.Sprintf("second-%d", round)
		d.LoadFromStream(second, ModeReplaying, io.NopCloser(strings.NewReader("key, z\n0, 1\n1, 2\n")))
		s := waitForStatus(t, statuses, func(s Status) bool { return s.Source == second && s.Done })
		require.NoError(t, s.Err)
		assert.Equal(t, 2, s.Rows, "rows of the replaced trace are not counted")
		assert.Equal(t, 2, s.Samples)
		d.Data().Read(func(ds *Dataset) {
			require.Len(t, ds.Series, 1)
			assert.Equal(t, "z", ds.Series[0].Name)
			assert.Equal(t, 2, ds.Len())
		})
	}
}

func TestDatasourceStreamError(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d, err := NewDatasource(ctx)
	require.NoError(t, err)
	defer d.Close()

	statuses := d.Status(ctx)
	d.LoadFromStream("empty", ModeReplaying, io.NopCloser(strings.NewReader("key\n")))
	s := waitForStatus(t, statuses, func(s Status) bool { return s.Done })
	assert.True(t, errors.Is(s.Err, ErrNoSeries), "expected ErrNoSeries, got %v", s.Err)
}

func TestDatasourceFollow(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d, err := NewDatasource(ctx)
	require.NoError(t, err)
	defer d.Close()

	path := filepath.Join(t.TempDir(), "trace.csv")
	require.NoError(t, os.WriteFile(path, []byte("t, v\n0, 1\n1, 2\n"), 0o644))

	statuses := d.Status(ctx)
	require.NoError(t, d.LoadFromPath(path, true))
	waitForStatus(t, statuses, func(s Status) bool { return s.Rows == 2 })

	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0)
	require.NoError(t, err)
	_, err = f.WriteString("2, 3\n3, 4\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	s := waitForStatus(t, statuses, func(s Status) bool { return s.Rows == 4 })
	assert.Equal(t, ModeFollowing, s.Mode)
	assert.False(t, s.Done)
	d.Data().Read(func(ds *Dataset) {
		r, ok := ds.KeyRange(SignBoth)
		require.True(t, ok)
		assert.Equal(t, Range{Lower: 0, Upper: 3}, r)
	})
}

package pkg_test

import (
	"bytes"
	"errors"
	"sync"
	"testing"

	. "github.com/tobsdb/reldb/pkg"
	"gotest.tools/assert"
)

func TestFilter(t *testing.T) {
	res := Filter([]int{1, 2, 3, 4, 5, 6}, func(i int) bool {
		return i%2 == 0
	})

	if len(res) != 3 {
		t.Errorf("Expected 3, got %d", len(res))
	}

	if res[0] != 2 || res[1] != 4 || res[2] != 6 {
		t.Errorf("Expected 2, 4, 6, got %d, %d, %d", res[0], res[1], res[2])
	}
}

func TestContainsAll(t *testing.T) {
	assert.Assert(t, ContainsAll([]string{"title", "year", "studioNo"}, []string{"year", "title"}))
	assert.Assert(t, !ContainsAll([]string{"title"}, []string{"title", "year"}))
	assert.Assert(t, ContainsAll([]string{"title"}, nil))
}

func TestConcat(t *testing.T) {
	a := []int{1, 2}
	res := Concat(a, []int{3})
	assert.DeepEqual(t, res, []int{1, 2, 3})

	res[0] = 9
	assert.Equal(t, a[0], 1)
}

func TestIndexOf(t *testing.T) {
	idx := IndexOf([]string{"a", "b", "a"})
	assert.Equal(t, idx.Get("a"), 0)
	assert.Equal(t, idx.Get("b"), 1)
	_, ok := idx.Lookup("c")
	assert.Assert(t, !ok)
}

type locked struct{ locker sync.RWMutex }

func (l *locked) GetLocker() *sync.RWMutex { return &l.locker }

func TestLockWrap(t *testing.T) {
	l := &locked{}
	n := 0
	wg := sync.WaitGroup{}
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			LockWrap(l, func() { n++ })
		}()
	}
	wg.Wait()

	RLockWrap(l, func() { assert.Equal(t, n, 50) })
	err := LockWrapErr(l, func() error { return nil })
	assert.NilError(t, err)
	err = LockWrapErr(l, func() error { return errors.New("rejected") })
	assert.ErrorContains(t, err, "rejected")
}

func TestLogLevels(t *testing.T) {
	buf := &bytes.Buffer{}
	SetLogOutput(buf)
	defer SetLogOutput(&bytes.Buffer{})

	ConfigureLogging(LogOptions{Should_log: false})
	ErrorLog("hidden")
	WarnLog("hidden")
	assert.Equal(t, buf.Len(), 0)

	ConfigureLogging(LogOptions{Should_log: true})
	assert.Equal(t, GetLogLevel(), LogLevelErrOnly)
	assert.Assert(t, !DebugEnabled())
	DebugLog("hidden")
	InfoLog("hidden")
	assert.Equal(t, buf.Len(), 0)
	WarnLog("duplicate key", 1)
	assert.Assert(t, bytes.Contains(buf.Bytes(), []byte("duplicate key 1")))

	ConfigureLogging(LogOptions{Should_log: true, Show_debug_logs: true})
	assert.Assert(t, DebugEnabled())
	InfoLog("saved relation movie")
	assert.Assert(t, bytes.Contains(buf.Bytes(), []byte("saved relation movie")))
	DebugLog("RA> movie.project")
	assert.Assert(t, bytes.Contains(buf.Bytes(), []byte("RA> movie.project")))
}

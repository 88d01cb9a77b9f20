package countof

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBasicMetricsCollector(t *testing.T) {
	m := &BasicMetricsCollector{}

	m.RecordAlloc(Bytes(100), nil)
	m.RecordAlloc(Bytes(50), errors.New("no memory"))
	m.RecordFree(Bytes(40))
	m.RecordReject(Bytes(8))

	stats := m.GetStats()
	assert.Equal(t, uint64(2), stats.AllocCount)
	assert.Equal(t, uint64(1), stats.AllocErrors)
	assert.Equal(t, Bytes(100), stats.AllocBytes)
	assert.Equal(t, uint64(1), stats.FreeCount)
	assert.Equal(t, Bytes(40), stats.FreeBytes)
	assert.Equal(t, uint64(1), stats.RejectCount)
	assert.Equal(t, Bytes(8), stats.RejectBytes)
	assert.Equal(t, Bytes(60), stats.Live())
}

func TestBasicMetricsCollector_Concurrent(t *testing.T) {
	m := &BasicMetricsCollector{}

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 1000 {
				m.RecordAlloc(Bytes(2), nil)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, Bytes(16000), m.GetStats().AllocBytes)
}

func TestNoopMetricsCollector(t *testing.T) {
	var m MetricsCollector = NoopMetricsCollector{}

	assert.NotPanics(t, func() {
		m.RecordAlloc(Bytes(1), nil)
		m.RecordFree(Bytes(1))
		m.RecordReject(Bytes(1))
	})
}

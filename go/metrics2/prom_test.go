package metrics2

import (
	"io"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/aoc2020/calc/go/testutils/unittest"
	"github.com/aoc2020/calc/go/util"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	assert "github.com/stretchr/testify/require"
)

func TestClean(t *testing.T) {
	unittest.SmallTest(t)
	assert.Equal(t, "a_b_c", clean("a.b-c"))
}

func getPromClient() *promClient {
	prometheus.DefaultRegisterer = prometheus.NewRegistry()
	return newPromClient()
}

func get(t *testing.T, metric string) string {
	req := httptest.NewRequest("GET", "/metrics", nil)
	rw := httptest.NewRecorder()
	promhttp.HandlerFor(prometheus.DefaultRegisterer.(*prometheus.Registry), promhttp.HandlerOpts{
		ErrorLog:           nil,
		ErrorHandling:      promhttp.PanicOnError,
		DisableCompression: true,
	}).ServeHTTP(rw, req)
	resp := rw.Result()
	defer util.Close(resp.Body)
	b, err := io.ReadAll(resp.Body)
	assert.NoError(t, err)
	for _, s := range strings.Split(string(b), "\n") {
		if strings.HasPrefix(s, metric) {
			return strings.Split(s, " ")[1]
		}
	}
	return ""
}

func TestInt64(t *testing.T) {
	unittest.SmallTest(t)
	c := getPromClient()
	check := func(m Int64Metric, metric string, expect int64) {
		actual, err := strconv.ParseInt(get(t, metric), 10, 64)
		assert.NoError(t, err)
		assert.Equal(t, expect, actual)
		assert.Equal(t, m.Get(), expect)
	}
	g := c.GetInt64Metric("a.b", map[string]string{"some_key": "some-value"})
	assert.NotNil(t, g)
	assert.NotNil(t, c.int64GaugeVecs["a_b [some_key]"])
	assert.NotNil(t, c.int64Gauges["a_b-some_key-some-value"])
	assert.Nil(t, c.int64GaugeVecs["a.b"])
	check(g, "a_b{some_key=\"some-value\"}", 0)

	g.Update(3)
	check(g, "a_b{some_key=\"some-value\"}", 3)

	g2 := c.GetInt64Metric("a.b", map[string]string{"some_key": "some-new-value"})
	assert.NotNil(t, g2)
	g2.Update(4)

	check(g, "a_b{some_key=\"some-value\"}", 3)
	check(g2, "a_b{some_key=\"some-new-value\"}", 4)

	g2 = c.GetInt64Metric("a.b", map[string]string{"some_key": "some-new-value"})
	check(g2, "a_b{some_key=\"some-new-value\"}", 4)

	// Metric with two tags.
	g = c.GetInt64Metric("metric_name", map[string]string{"a": "2", "b": "1"})
	assert.NotNil(t, g)
	assert.NotNil(t, c.int64GaugeVecs["metric_name [a b]"])
	assert.NotNil(t, c.int64Gauges["metric_name-a-2-b-1"])
	check(g, "metric_name{a=\"2\",b=\"1\"}", 0)

	// Test delete.
	assert.NoError(t, g.Delete())
	assert.Equal(t, "", get(t, "metric_name{a=\"2\",b=\"1\"}"))
}

func TestCounter(t *testing.T) {
	unittest.SmallTest(t)
	c := getPromClient()
	check := func(m Counter, metric string, expect int64) {
		actual, err := strconv.ParseInt(get(t, metric), 10, 64)
		assert.NoError(t, err)
		assert.Equal(t, expect, actual)
		assert.Equal(t, m.Get(), expect)
	}
	g := c.GetCounter("c", map[string]string{"some_key": "some-value"})
	assert.NotNil(t, g)

	g.Inc(3)
	g = c.GetCounter("c", map[string]string{"some_key": "some-value"})
	check(g, "c{some_key=\"some-value\"}", 3)

	g.Dec(2)
	check(g, "c{some_key=\"some-value\"}", 1)

	g.Reset()
	check(g, "c{some_key=\"some-value\"}", 0)

	// Test delete.
	assert.NoError(t, g.Delete())
	assert.Equal(t, "", get(t, "c{some_key=\"some-value\"}"))
}

func TestTimer_ObservesElapsed(t *testing.T) {
	unittest.SmallTest(t)
	c := getPromClient()
	tm := c.NewTimer("eval", map[string]string{"policy": "conventional"})
	time.Sleep(time.Millisecond)
	d := tm.Stop()
	assert.True(t, d >= time.Millisecond)
	assert.Equal(t, "1", get(t, "timer_ns_count{name=\"eval\",policy=\"conventional\"}"))
}

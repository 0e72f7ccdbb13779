package diag

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-echarts/statsview"
	"github.com/rs/cors"
)

// Metrics supplies the live values Dashboard reports; any nil callback is
// simply omitted from the response.
type Metrics struct {
	CyclesPerSecond  func() float64
	YGRFIFOOccupancy func() int
	SCUChannelStates func() [3]string
}

// Dashboard is an opt-in HTTP server plotting scheduler cycle rate, YGR
// FIFO occupancy, and SCU DMA channel state (spec §11.1: "go-echarts/
// statsview + rs/cors, opt-in HTTP server"). It runs statsview's own
// goroutine/GC/heap visualizer alongside a small CORS-enabled JSON endpoint
// for this module's own metrics, rather than trying to splice custom series
// into statsview's internal chart registry.
type Dashboard struct {
	viewer  *statsview.Viewer
	srv     *http.Server
	metrics Metrics
}

// NewDashboard creates a Dashboard reporting m.
func NewDashboard(m Metrics) *Dashboard {
	return &Dashboard{metrics: m}
}

func (d *Dashboard) serveMetrics(w http.ResponseWriter, r *http.Request) {
	out := struct {
		CyclesPerSecond  float64  `json:"cycles_per_second"`
		YGRFIFOOccupancy int      `json:"ygr_fifo_occupancy"`
		SCUChannels      [3]string `json:"scu_channels"`
	}{}
	if d.metrics.CyclesPerSecond != nil {
		out.CyclesPerSecond = d.metrics.CyclesPerSecond()
	}
	if d.metrics.YGRFIFOOccupancy != nil {
		out.YGRFIFOOccupancy = d.metrics.YGRFIFOOccupancy()
	}
	if d.metrics.SCUChannelStates != nil {
		out.SCUChannels = d.metrics.SCUChannelStates()
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(out)
}

// Start runs the dashboard: statsview's built-in visualizer at statsAddr,
// and this package's own CORS-enabled metrics endpoint at metricsAddr
// (path /metrics). It blocks until the metrics server stops.
func (d *Dashboard) Start(statsAddr, metricsAddr string) error {
	d.viewer = statsview.New(statsview.WithAddr(statsAddr))
	go d.viewer.Start()

	mux := http.NewServeMux()
	mux.HandleFunc("/metrics", d.serveMetrics)
	handler := cors.AllowAll().Handler(mux)

	d.srv = &http.Server{Addr: metricsAddr, Handler: handler}
	return d.srv.ListenAndServe()
}

// Stop shuts down the metrics server. The statsview visualizer has no
// programmatic stop in the version this module vendors, so it is left
// running for the process lifetime once started.
func (d *Dashboard) Stop(ctx context.Context) error {
	if d.srv == nil {
		return nil
	}
	return d.srv.Shutdown(ctx)
}

package health

import (
	"context"
	"encoding/json"
	"net/http"
	"sort"
	"time"
)

// DatasetReporter is the part of the loaded dataset readiness looks at.
type DatasetReporter interface {
	Len() int
	Source() string
	Fingerprint() string
}

// Check probes an optional dependency. A failing check marks the service
// degraded but still ready, since every dependency behind a Check has a
// local fallback.
type Check func(ctx context.Context) error

type readyResp struct {
	Status      string            `json:"status"`
	Rows        int               `json:"rows"`
	Source      string            `json:"source,omitempty"`
	Fingerprint string            `json:"fingerprint,omitempty"`
	Checks      map[string]string `json:"checks,omitempty"`
}

func Readiness(ds DatasetReporter, checks map[string]Check) http.HandlerFunc {
	names := make([]string, 0, len(checks))
	for n := range checks {
		names = append(names, n)
	}
	sort.Strings(names)

	return func(w http.ResponseWriter, r *http.Request) {
		out := readyResp{Status: "not_ready"}
		ready := ds != nil && ds.Len() > 0
		if ready {
			out.Status = "ready"
			out.Rows = ds.Len()
			out.Source = ds.Source()
			out.Fingerprint = ds.Fingerprint()
		}

		if len(names) > 0 {
			out.Checks = make(map[string]string, len(names))
			ctx, cancel := context.WithTimeout(r.Context(), time.Second)
			defer cancel()
			for _, n := range names {
				if err := checks[n](ctx); err != nil {
					out.Checks[n] = err.Error()
					if ready {
						out.Status = "degraded"
					}
					continue
				}
				out.Checks[n] = "ok"
			}
		}

		w.Header().Set("Content-Type", "application/json")
		if !ready {
			w.WriteHeader(http.StatusServiceUnavailable)
		}
		_ = json.NewEncoder(w).Encode(out)
	}
}

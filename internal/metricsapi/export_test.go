package metricsapi

import "time"

func SetNow(handler *Handler, now func() time.Time) {
	handler.now = now
}

package ws

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

const EventCatalogReloaded = "catalog_reloaded"

type CatalogReloadedEvent struct {
	ID          string `json:"id"`
	Type        string `json:"type"`
	Jobs        int    `json:"jobs"`
	Fingerprint string `json:"fingerprint"`
	Source      string `json:"source"`
	Timestamp   string `json:"timestamp"`
}

// NotifyCatalogReloaded broadcasts a catalog_reloaded event to every
// subscriber.
func (h *Hub) NotifyCatalogReloaded(jobs int, fingerprint, source string) {
	if h == nil {
		return
	}

	evt := CatalogReloadedEvent{
		ID:          uuid.NewString(),
		Type:        EventCatalogReloaded,
		Jobs:        jobs,
		Fingerprint: fingerprint,
		Source:      source,
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
	}
	b, err := json.Marshal(evt)
	if err != nil {
		return
	}

	h.Broadcast(b)
}

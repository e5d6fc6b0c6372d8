package enum

// ── Domain event types (WebSocket feed + Kafka) ──

const (
	EventOrderCreated       = "order.created"
	EventOrderStatusChanged = "order.status_changed"
	EventAssemblyUpdated    = "order.assembly_updated"
	EventDeliveryUpdated    = "delivery.status_changed"
)

// ── WebSocket rooms ──

// RoomAdmin receives every order event. Each user also has a room keyed by user ID.
const RoomAdmin = "admin"

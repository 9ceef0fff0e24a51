package log

// Common field names for structured logging
const (
	FieldComponent  = "component"
	FieldMethod     = "method"
	FieldPath       = "path"
	FieldStatusCode = "status_code"
	FieldDuration   = "duration_ms"
	FieldError      = "error"
	FieldPackage    = "package"
	FieldApp        = "app"
	FieldAmount     = "amount"
	FieldSender     = "sender"
	FieldEventID    = "event_id"
	FieldPaymentID  = "payment_id"
)

// Components defines standard component names
const (
	ComponentApp      = "app"
	ComponentHTTP     = "http"
	ComponentStorage  = "storage"
	ComponentAMQP     = "amqp"
	ComponentWorker   = "worker"
	ComponentDedup    = "dedup"
	ComponentAnnounce = "announce"
)

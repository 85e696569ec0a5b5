package api

// APIResponse represents a standard API response
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// ServerConfig holds configuration for the API server
type ServerConfig struct {
	Port   int
	Bind   string
	APIKey string
}

// RecordRequest carries a value to store. A null value stores the
// null sentinel.
type RecordRequest struct {
	Value any `json:"value"`
}

// CASRequest carries a compare-and-swap attempt.
type CASRequest struct {
	Expected any `json:"expected"`
	Update   any `json:"update"`
}

// RecidResponse reports the recid an operation produced.
type RecidResponse struct {
	Recid uint64 `json:"recid"`
}

// RecordResponse carries a record read back from the store.
type RecordResponse struct {
	Recid uint64 `json:"recid"`
	Value any    `json:"value"`
}

// CASResponse reports whether a compare-and-swap took effect.
type CASResponse struct {
	Swapped bool `json:"swapped"`
}

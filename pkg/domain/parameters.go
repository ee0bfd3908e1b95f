package domain

// SyncType is how a parameter is replicated by the host.
type SyncType string

const (
	SyncNone  SyncType = "not_synced"
	SyncBool  SyncType = "bool"
	SyncInt   SyncType = "int"
	SyncFloat SyncType = "float"
)

// ParameterConfig is one entry of the parameter manifest installed with the controller.
type ParameterConfig struct {
	Name         string   `json:"name"`
	RemapTo      string   `json:"remap_to,omitempty"`
	SyncType     SyncType `json:"sync_type"`
	DefaultValue float64  `json:"default_value,omitempty"`
	Saved        bool     `json:"saved,omitempty"`
}

package types

// Category represents service categories
type Category string

// CategoryFilesystem groups sandboxed file tools
const CategoryFilesystem Category = "filesystem"

// Service represents a service definition
type Service struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Category     Category `json:"category"`
	Capabilities []string `json:"capabilities"`
	Tools        []Tool   `json:"tools"`
}

// Tool represents a service tool
type Tool struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Parameters  []Parameter `json:"parameters"`
	Returns     string      `json:"returns"`
}

// Parameter represents a tool parameter
type Parameter struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description"`
	Required    bool   `json:"required"`
}

// Result represents a tool execution result.
//
// Exactly one of Data or Error is meaningful, selected by Success. Kind
// carries the error taxonomy name on failure so callers branch on it rather
// than on message text.
type Result struct {
	Success bool                   `json:"success" toml:"success"`
	Data    map[string]interface{} `json:"data,omitempty" toml:"data,omitempty"`
	Error   *string                `json:"error,omitempty" toml:"error,omitempty"`
	Kind    string                 `json:"kind,omitempty" toml:"kind,omitempty"`
}

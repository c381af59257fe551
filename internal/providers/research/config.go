package research

import "fmt"

type TransportType string

const (
	TransportHTTP  TransportType = "http"
	TransportStdio TransportType = "stdio"
)

// Config mirrors research.json: a set of MCP servers whose tools (web
// search, wikis and so on) the researcher may call while profiling a
// persona's dialogue partner.
type Config struct {
	MCPServers map[string]ServerConfig `json:"mcpServers"`
}

// ServerConfig represents an entry in research.json
type ServerConfig struct {
	Command string            `json:"command"`
	Args    []string          `json:"args"`
	Env     map[string]string `json:"env"`
	URL     string            `json:"url,omitempty"`
	Headers map[string]string `json:"headers,omitempty"`
}

func (c *ServerConfig) GetTransport() (TransportType, error) {
	switch {
	case c.URL != "":
		return TransportHTTP, nil
	case c.Command != "":
		return TransportStdio, nil
	default:
		return "", fmt.Errorf("invalid config: neither url nor command provided")
	}
}

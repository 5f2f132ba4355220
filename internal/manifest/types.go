package manifest

// Controller strategies.
const (
	StrategyDirect        = "direct"
	StrategyToolAugmented = "tool-augmented"
)

// Memory backends.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
)

// Defaults applied to fields the file leaves empty.
const (
	DefaultModel       = "openai:gpt-4o-mini"
	DefaultTemperature = 0.2
	DefaultMaxTokens   = 1024
	DefaultNamespace   = "default"
	DefaultMemoryPath  = "knowledge/memory"
	DefaultPageIcon    = "🤖"
	DefaultServerAddr  = "127.0.0.1:8501"
	DefaultLogLevel    = "info"
	DefaultLogFile     = "logs/expertkit.log"
)

// Project is the typed form of configs/project.yaml.
type Project struct {
	TemplateVersion string             `yaml:"template_version" json:"template_version"`
	Project         ProjectInfo        `yaml:"project" json:"project"`
	Agent           AgentSettings      `yaml:"agent" json:"agent"`
	Controller      ControllerSettings `yaml:"controller" json:"controller"`
	Memory          MemorySettings     `yaml:"memory" json:"memory"`
	UI              UISettings         `yaml:"ui" json:"ui"`
	Server          ServerSettings     `yaml:"server" json:"server"`
	Logging         LoggingSettings    `yaml:"logging" json:"logging"`
}

// ProjectInfo names the project.
type ProjectInfo struct {
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
}

// AgentSettings configures the language-model wrapper. Model is
// "provider:model"; Temperature is nil when the file does not set it, so an
// explicit 0 survives defaulting.
type AgentSettings struct {
	Model       string   `yaml:"model" json:"model"`
	Temperature *float64 `yaml:"temperature,omitempty" json:"temperature,omitempty"`
	MaxTokens   int      `yaml:"max_tokens,omitempty" json:"max_tokens,omitempty"`
}

// ControllerSettings selects the query pipeline.
type ControllerSettings struct {
	Strategy string `yaml:"strategy" json:"strategy"`
	Remember bool   `yaml:"remember" json:"remember"`
}

// MemorySettings configures the key/value memory store. FilePath is
// relative to the project root unless absolute.
type MemorySettings struct {
	Backend   string `yaml:"backend" json:"backend"`
	Namespace string `yaml:"namespace" json:"namespace"`
	FilePath  string `yaml:"file_path" json:"file_path"`
}

// UISettings configures the chat UI.
type UISettings struct {
	PageTitle string `yaml:"page_title" json:"page_title"`
	PageIcon  string `yaml:"page_icon" json:"page_icon"`
}

// ServerSettings configures "expertkit serve".
type ServerSettings struct {
	Addr string `yaml:"addr" json:"addr"`
}

// LoggingSettings configures the runtime logger. File is relative to the
// project root unless absolute.
type LoggingSettings struct {
	Level string `yaml:"level" json:"level"`
	File  string `yaml:"file" json:"file"`
}

// ApplyDefaults fills empty fields in place.
func (p *Project) ApplyDefaults() {
	if p.Agent.Model == "" {
		p.Agent.Model = DefaultModel
	}
	if p.Agent.Temperature == nil {
		t := DefaultTemperature
		p.Agent.Temperature = &t
	}
	if p.Agent.MaxTokens == 0 {
		p.Agent.MaxTokens = DefaultMaxTokens
	}
	if p.Controller.Strategy == "" {
		p.Controller.Strategy = StrategyDirect
	}
	if p.Memory.Backend == "" {
		p.Memory.Backend = BackendFile
	}
	if p.Memory.Namespace == "" {
		p.Memory.Namespace = DefaultNamespace
	}
	if p.Memory.FilePath == "" {
		p.Memory.FilePath = DefaultMemoryPath
	}
	if p.UI.PageTitle == "" {
		p.UI.PageTitle = p.Project.Name
	}
	if p.UI.PageIcon == "" {
		p.UI.PageIcon = DefaultPageIcon
	}
	if p.Server.Addr == "" {
		p.Server.Addr = DefaultServerAddr
	}
	if p.Logging.Level == "" {
		p.Logging.Level = DefaultLogLevel
	}
	if p.Logging.File == "" {
		p.Logging.File = DefaultLogFile
	}
}

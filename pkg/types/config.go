package types

// KernelConfig selects the kernel and language descriptors written into the
// notebook metadata. Zero fields fall back to the Python 2 kernel defaults.
type KernelConfig struct {
	// DisplayName is the human-readable kernel name (default "Python 2").
	DisplayName string `json:"display_name" yaml:"display_name" mapstructure:"display_name"`

	// Name is the kernel identifier (default "python2").
	Name string `json:"name" yaml:"name" mapstructure:"name"`

	// Language is the kernel language (default "python").
	Language string `json:"language" yaml:"language" mapstructure:"language"`

	// Version is the language version reported in language_info (default "2.7.10").
	Version string `json:"version" yaml:"version" mapstructure:"version"`
}

// Kernel defaults reproduce the envelope of notebooks produced by earlier
// versions of the converter.
const (
	DefaultKernelDisplayName = "Python 2"
	DefaultKernelName        = "python2"
	DefaultKernelLanguage    = "python"
	DefaultKernelVersion     = "2.7.10"
)

// WithDefaults returns a copy of c with empty fields filled in.
func (c KernelConfig) WithDefaults() KernelConfig {
	if c.DisplayName == "" {
		c.DisplayName = DefaultKernelDisplayName
	}
	if c.Name == "" {
		c.Name = DefaultKernelName
	}
	if c.Language == "" {
		c.Language = DefaultKernelLanguage
	}
	if c.Version == "" {
		c.Version = DefaultKernelVersion
	}
	return c
}

// HistoryConfig controls the optional SQLite conversion log.
type HistoryConfig struct {
	// Enabled turns on recording of each successful conversion.
	Enabled bool `json:"enabled" yaml:"enabled" mapstructure:"enabled"`

	// Path is the database file (default ".md2ipynb/history.db").
	Path string `json:"path" yaml:"path" mapstructure:"path"`
}

// DefaultHistoryPath is used when HistoryConfig.Path is empty.
const DefaultHistoryPath = ".md2ipynb/history.db"

// ConversionConfig holds settings for markdown-to-notebook conversion.
type ConversionConfig struct {
	// Lang is the fence tag that opens a code block (default "python").
	// Only one language is recognized per run.
	Lang string `json:"lang" yaml:"lang" mapstructure:"lang"`

	// OutDir is the directory for .ipynb output. Empty means next to the source.
	OutDir string `json:"out_dir" yaml:"out_dir" mapstructure:"out_dir"`

	// Force overwrites existing notebooks instead of skipping them.
	Force bool `json:"force" yaml:"force" mapstructure:"force"`

	// Indent is the JSON indentation string. Empty produces compact output.
	Indent string `json:"indent" yaml:"indent" mapstructure:"indent"`

	// Pattern is the doublestar glob used to select files in batch mode
	// (default "**/*.md").
	Pattern string `json:"pattern" yaml:"pattern" mapstructure:"pattern"`

	Kernel  KernelConfig  `json:"kernel" yaml:"kernel" mapstructure:"kernel"`
	History HistoryConfig `json:"history" yaml:"history" mapstructure:"history"`
}

const (
	DefaultLang    = "python"
	DefaultPattern = "**/*.md"
)

// WithDefaults returns a copy of c with empty fields filled in.
func (c ConversionConfig) WithDefaults() ConversionConfig {
	if c.Lang == "" {
		c.Lang = DefaultLang
	}
	if c.Pattern == "" {
		c.Pattern = DefaultPattern
	}
	if c.History.Path == "" {
		c.History.Path = DefaultHistoryPath
	}
	c.Kernel = c.Kernel.WithDefaults()
	return c
}

package config

// Settingsfile represents the structure of the uccmake.yaml file.
// Absent keys keep their default value.
type Settingsfile struct {
	Compiler           *string    `yaml:"compiler"`
	CompilerSearchPath *bool      `yaml:"compiler_search_path"`
	OutputEncoding     *string    `yaml:"output_encoding"`
	Hooks              HooksDTO   `yaml:"hooks"`
	Flatten            FlattenDTO `yaml:"flatten"`
}

// HooksDTO represents the hooks section.
type HooksDTO struct {
	PreBuild  *string `yaml:"pre_build"`
	PostBuild *string `yaml:"post_build"`
	OnFailure *string `yaml:"on_failure"`
}

// FlattenDTO represents the flatten section.
type FlattenDTO struct {
	Ignore      []string `yaml:"ignore"`
	Destination *string  `yaml:"destination"`
}

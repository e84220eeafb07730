package config

type YAMLConfig struct {
	InputDir       string  `yaml:"input_dir"`
	Pattern        string  `yaml:"pattern"`
	Output         string  `yaml:"output"`
	Profile        string  `yaml:"profile"`
	OnBadFile      string  `yaml:"on_bad_file"`
	MaxSegmentSize *int    `yaml:"max_segment_size"`
	Log            YAMLLog `yaml:"log"`
}

type YAMLLog struct {
	Dir   string `yaml:"dir"`
	Debug bool   `yaml:"debug"`
}

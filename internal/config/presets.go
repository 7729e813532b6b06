package config

// PresetConfig is the resolved encode settings for one video job. Values
// start from the named preset and are overridden by CLI/env options before
// being frozen into the job snapshot.
type PresetConfig struct {
	Name         VideoPreset
	Codec        string // -c:v value.
	Speed        string // -preset value.
	CRF          int    // Used when Bitrate is empty.
	Bitrate      string // -b:v value; enables two-pass.
	AudioCodec   string // -c:a value.
	AudioBitrate string // -b:a value.
	TwoPass      bool   // Only honored when Bitrate is set.
}

// Built-in presets. CRF ladder trades encode time for size: ultrafast is
// the largest/fastest, veryslow the smallest/slowest.
var presets = map[VideoPreset]PresetConfig{
	PresetUltrafast: {Codec: "libx264", Speed: "ultrafast", CRF: 28, AudioCodec: "aac", AudioBitrate: "128k"},
	PresetFast:      {Codec: "libx264", Speed: "fast", CRF: 25, AudioCodec: "aac", AudioBitrate: "128k"},
	PresetMedium:    {Codec: "libx264", Speed: "medium", CRF: 23, AudioCodec: "aac", AudioBitrate: "192k"},
	PresetSlow:      {Codec: "libx264", Speed: "slow", CRF: 20, AudioCodec: "aac", AudioBitrate: "192k"},
	PresetVeryslow:  {Codec: "libx265", Speed: "veryslow", CRF: 18, AudioCodec: "aac", AudioBitrate: "256k"},
}

// ResolvePreset returns the preset settings for c.Preset with the
// command-line overrides (crf, bitrate, two-pass) applied. The Config must
// have passed Validate; unknown presets cannot reach here.
func (c *Config) ResolvePreset() PresetConfig {
	pc := presets[c.Preset]
	pc.Name = c.Preset
	if c.CRF != -1 {
		pc.CRF = c.CRF
	}
	if c.Bitrate != "" {
		pc.Bitrate = c.Bitrate
	}
	if c.TwoPass {
		pc.TwoPass = true
	}
	return pc
}

package tracing

import "testing"

func TestCreateSampler(t *testing.T) {
	tests := []struct {
		strategy string
		ratio    float64
		wantErr  bool
	}{
		{SamplerAlways, 0, false},
		{SamplerNever, 0, false},
		{SamplerRatio, 0, false},
		{SamplerRatio, 0.1, false},
		{SamplerRatio, 1, false},
		{SamplerRatio, -0.1, true},
		{SamplerRatio, 1.1, true},
		{"", 0, true},
		{"ALWAYS", 0, true},
	}

	for _, tt := range tests {
		sampler, err := createSampler(tt.strategy, tt.ratio)
		if (err != nil) != tt.wantErr {
			t.Errorf("createSampler(%q, %v) error = %v, wantErr %v", tt.strategy, tt.ratio, err, tt.wantErr)
			continue
		}
		if err == nil && sampler == nil {
			t.Errorf("createSampler(%q, %v) returned nil sampler", tt.strategy, tt.ratio)
		}
	}
}

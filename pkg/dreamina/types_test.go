package dreamina

import "testing"

func TestParseRatio(t *testing.T) {
	tests := []struct {
		in      string
		want    Ratio
		wantErr bool
	}{
		{"", Ratio1x1, false},
		{"1:1", Ratio1x1, false},
		{" 16:9 ", Ratio16x9, false},
		{"21:9", Ratio21x9, false},
		{"2:3", Ratio2x3, false},
		{"5:4", "", true},
		{"16x9", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseRatio(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseRatio(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseRatio(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestRatioList(t *testing.T) {
	want := "1:1, 3:4, 4:3, 9:16, 16:9, 2:3, 3:2, 21:9"
	if got := RatioList(); got != want {
		t.Errorf("RatioList() = %q, want %q", got, want)
	}
}

func TestGenerateResponse_URLs_Nil(t *testing.T) {
	var r *GenerateResponse
	if urls := r.URLs(); urls != nil {
		t.Errorf("URLs() on nil = %v, want nil", urls)
	}
}

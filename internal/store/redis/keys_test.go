package redis

import "testing"

func TestResultKey(t *testing.T) {
	if got := ResultKey("abc123"); got != "wfd:result:abc123" {
		t.Errorf("ResultKey() = %v, want wfd:result:abc123", got)
	}
}

func TestExtractResultHash(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		want    string
		wantErr bool
	}{
		{name: "valid", key: "wfd:result:abc123", want: "abc123"},
		{name: "prefix only", key: "wfd:result:", wantErr: true},
		{name: "other key", key: "wfd:live-and-more", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractResultHash(tt.key)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ExtractResultHash() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ExtractResultHash() = %v, want %v", got, tt.want)
			}
		})
	}
}

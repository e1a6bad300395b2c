package utils

import (
	"strings"
	"testing"
)

func TestHashReader(t *testing.T) {
	tests := []struct {
		name  string
		algo  Algorithm
		input string
		want  string
	}{
		{"md5 empty", AlgorithmMD5, "", "d41d8cd98f00b204e9800998ecf8427e"},
		{"md5 hello", AlgorithmMD5, "hello", "5d41402abc4b2a76b9719d911017c592"},
		{"sha256 empty", AlgorithmSHA256, "", "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"},
		{"default is md5", "", "hello", "5d41402abc4b2a76b9719d911017c592"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := HashReader(strings.NewReader(tt.input), tt.algo)
			if err != nil {
				t.Fatalf("HashReader() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("HashReader() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestHashReaderDigestLengths(t *testing.T) {
	lengths := map[Algorithm]int{
		AlgorithmMD5:     32,
		AlgorithmSHA256:  64,
		AlgorithmBLAKE2b: 64,
	}

	for _, algo := range Algorithms() {
		got, err := HashReader(strings.NewReader("same content"), algo)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", algo, err)
		}
		if len(got) != lengths[algo] {
			t.Errorf("%s: digest length = %d, want %d", algo, len(got), lengths[algo])
		}
	}
}

func TestHashReaderUnknownAlgorithm(t *testing.T) {
	if _, err := HashReader(strings.NewReader("x"), Algorithm("crc7")); err == nil {
		t.Error("expected error for unknown algorithm")
	}
}

func TestParseAlgorithm(t *testing.T) {
	tests := []struct {
		input   string
		want    Algorithm
		wantErr bool
	}{
		{"", AlgorithmMD5, false},
		{"md5", AlgorithmMD5, false},
		{" SHA256 ", AlgorithmSHA256, false},
		{"Blake2b", AlgorithmBLAKE2b, false},
		{"sha1", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseAlgorithm(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseAlgorithm(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseAlgorithm(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		input int64
		want  string
	}{
		{-1, "0 B"},
		{0, "0 B"},
		{512, "512 B"},
		{KB, "1.00 KB"},
		{3 * MB / 2, "1.50 MB"},
		{2 * GB, "2.00 GB"},
		{TB, "1.00 TB"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := FormatBytes(tt.input); got != tt.want {
				t.Errorf("FormatBytes(%d) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

package export

import (
	"testing"
)

func TestNewExporter(t *testing.T) {
	tests := []struct {
		name    string
		format  string
		wantExt string
		wantErr bool
	}{
		{name: "jsonl format", format: "jsonl", wantExt: "jsonl"},
		{name: "markdown format", format: "md", wantExt: "md"},
		{name: "markdown format long", format: "markdown", wantExt: "md"},
		{name: "yaml format", format: "yaml", wantExt: "yaml"},
		{name: "json format", format: "json", wantExt: "json"},
		{name: "sqlite is an archive format", format: "sqlite", wantErr: true},
		{name: "unsupported format", format: "xml", wantErr: true},
		{name: "empty format", format: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exporter, err := NewExporter(tt.format)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewExporter() error = %v, wantErr %v", err, tt.wantErr)
				return
			}

			if tt.wantErr {
				if exporter != nil {
					t.Errorf("NewExporter() returned exporter %T, want nil", exporter)
				}
				return
			}

			if got := exporter.Extension(); got != tt.wantExt {
				t.Errorf("Exporter.Extension() = %v, want %v", got, tt.wantExt)
			}
		})
	}
}

func TestNewArchiveExporter(t *testing.T) {
	tests := []struct {
		format string
		wantOK bool
	}{
		{format: "sqlite", wantOK: true},
		{format: "db", wantOK: true},
		{format: "json", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			exporter, ok := NewArchiveExporter(tt.format)
			if ok != tt.wantOK {
				t.Fatalf("NewArchiveExporter(%q) ok = %v, want %v", tt.format, ok, tt.wantOK)
			}
			if ok {
				if _, isSQLite := exporter.(*SQLiteExporter); !isSQLite {
					t.Errorf("Expected SQLiteExporter, got %T", exporter)
				}
			}
		})
	}
}

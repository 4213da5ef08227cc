package taskqueue

import "testing"

func TestStatus_Drained(t *testing.T) {
	tests := []struct {
		name   string
		status Status
		want   bool
	}{
		{"open and empty", Status{}, false},
		{"closed with pending", Status{Closed: true, Pending: 2}, false},
		{"closed and empty", Status{Closed: true}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.status.Drained(); got != tt.want {
				t.Errorf("Drained() = %v, want %v", got, tt.want)
			}
		})
	}
}

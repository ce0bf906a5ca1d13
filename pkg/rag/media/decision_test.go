package media

import (
	"context"
	"reflect"
	"testing"
	"time"

	"admission-assistant-be/pkg/retry"
)

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

func TestDecideWithoutProvider(t *testing.T) {
	d := NewDecider(nil, retry.Policy{Retries: 1, BaseDelay: time.Millisecond}, nopLogger{})

	decision := d.Decide(context.Background(), "show me the campus")
	if decision.IncludeMedia {
		t.Error("missing provider must decide against media")
	}
}

func TestParseDecision(t *testing.T) {
	tests := []struct {
		name         string
		raw          string
		wantInclude  bool
		wantKeywords []string
	}{
		{
			name: "empty response",
			raw:  "",
		},
		{
			name: "plain no",
			raw:  "NO",
		},
		{
			name:         "structured yes with keyword line",
			raw:          "YES\ncampus, library",
			wantInclude:  true,
			wantKeywords: []string{"campus", "library"},
		},
		{
			name:         "bare comma list implies yes",
			raw:          "campus tour, engineering labs, dorms",
			wantInclude:  true,
			wantKeywords: []string{"campus tour", "engineering labs", "dorms"},
		},
		{
			name:         "verbose yes answer",
			raw:          "Yes, showing media would benefit this question about the campus gate.",
			wantInclude:  true,
			wantKeywords: []string{"showing", "campus", "gate"},
		},
		{
			name: "no with trailing explanation",
			raw:  "NO\nThe question is about tuition numbers.",
		},
		{
			name:         "keyword cap at four",
			raw:          "alpha, beta, gamma, delta, epsilon",
			wantInclude:  true,
			wantKeywords: []string{"alpha", "beta", "gamma", "delta"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseDecision(tt.raw)
			if got.IncludeMedia != tt.wantInclude {
				t.Errorf("IncludeMedia = %v, want %v", got.IncludeMedia, tt.wantInclude)
			}
			if tt.wantKeywords != nil && !reflect.DeepEqual(got.Keywords, tt.wantKeywords) {
				t.Errorf("Keywords = %v, want %v", got.Keywords, tt.wantKeywords)
			}
			if !tt.wantInclude && len(got.Keywords) != 0 {
				t.Errorf("negative verdict should carry no keywords, got %v", got.Keywords)
			}
		})
	}
}

func TestAsCommaListRejectsVerdictLine(t *testing.T) {
	if _, ok := asCommaList("yes, campus, library"); ok {
		t.Error("a list starting with a verdict token is not a keyword dump")
	}
	if _, ok := asCommaList("campus, library"); !ok {
		t.Error("plain keyword dump should be accepted")
	}
}

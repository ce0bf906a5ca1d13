package signals

import "testing"

func TestExtract(t *testing.T) {
	tests := []struct {
		name           string
		text           string
		wantCompletion bool
		wantRegister   bool
	}{
		{
			name: "no markers defaults false",
			text: "Just a normal answer about tuition fees.",
		},
		{
			name:           "both markers on own lines",
			text:           "Great, you're all set!\nCOMPLETION_STATUS=true\nSHOW_REGISTER_BUTTON=true",
			wantCompletion: true,
			wantRegister:   true,
		},
		{
			name: "explicit false",
			text: "Still missing your email.\nCOMPLETION_STATUS=false\nSHOW_REGISTER_BUTTON=false",
		},
		{
			name:           "marker buried in prose line",
			text:           "done COMPLETION_STATUS=true thanks",
			wantCompletion: true,
		},
		{
			name:           "last duplicate wins",
			text:           "COMPLETION_STATUS=false\nCOMPLETION_STATUS=true",
			wantCompletion: true,
		},
		{
			name: "marker name without value is ignored",
			text: "We track a COMPLETION_STATUS flag internally.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Extract(tt.text)
			if got.CompletionStatus != tt.wantCompletion {
				t.Errorf("CompletionStatus = %v, want %v", got.CompletionStatus, tt.wantCompletion)
			}
			if got.ShowRegisterButton != tt.wantRegister {
				t.Errorf("ShowRegisterButton = %v, want %v", got.ShowRegisterButton, tt.wantRegister)
			}
		})
	}
}

func TestStrip(t *testing.T) {
	text := "Welcome aboard!\nCOMPLETION_STATUS=true\nSHOW_REGISTER_BUTTON=true\nSee you on campus."
	want := "Welcome aboard!\nSee you on campus."
	if got := Strip(text); got != want {
		t.Errorf("Strip() = %q, want %q", got, want)
	}
}

func TestStripKeepsPlainText(t *testing.T) {
	text := "No control tokens here."
	if got := Strip(text); got != text {
		t.Errorf("Strip() = %q, want unchanged", got)
	}
}

package kyc

import "testing"

func TestParseExtraction(t *testing.T) {
	raw := `{"name":"Sara Ahmed","email":null,"mobile":"01012345678","faculty":null,"password":null}`

	extracted, err := ParseExtraction(raw)
	if err != nil {
		t.Fatalf("ParseExtraction() error = %v", err)
	}
	if extracted.Name == nil || *extracted.Name != "Sara Ahmed" {
		t.Errorf("Name = %v", extracted.Name)
	}
	if extracted.Email != nil {
		t.Errorf("Email should be nil for JSON null, got %q", *extracted.Email)
	}
	if extracted.Mobile == nil || *extracted.Mobile != "01012345678" {
		t.Errorf("Mobile = %v", extracted.Mobile)
	}
}

func TestParseExtractionToleratesCodeFence(t *testing.T) {
	raw := "```json\n{\"name\":null,\"email\":\"sara@example.com\",\"mobile\":null,\"faculty\":null,\"password\":null}\n```"

	extracted, err := ParseExtraction(raw)
	if err != nil {
		t.Fatalf("ParseExtraction() error = %v", err)
	}
	if extracted.Email == nil || *extracted.Email != "sara@example.com" {
		t.Errorf("Email = %v", extracted.Email)
	}
}

func TestParseExtractionRejectsProse(t *testing.T) {
	if _, err := ParseExtraction("The user mentioned their name is Sara."); err == nil {
		t.Error("prose response should fail to parse")
	}
}

package challenge

import "testing"

func TestCheckAnswer_Text(t *testing.T) {
	inst := CardInstance{Type: TypeText, CorrectAnswers: []string{"Paris", "City of Light"}}

	tests := []struct {
		input string
		want  bool
	}{
		{" paris ", true},
		{"PARIS", true},
		{"Paris", true},
		{"city   of\tlight", true},
		{"  City of Light\n", true},
		{"Pari", false},
		{"", false},
		{"   ", false},
		{"London", false},
	}
	for _, tt := range tests {
		if got := CheckAnswer(inst, tt.input); got != tt.want {
			t.Errorf("CheckAnswer(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestCheckAnswer_TextUnicodeFolding(t *testing.T) {
	inst := CardInstance{Type: TypeText, CorrectAnswers: []string{"Ärger"}}
	if !CheckAnswer(inst, "ärger") {
		t.Error("expected case folding to apply to non-ASCII letters")
	}
}

func TestCheckAnswer_TextNumbers(t *testing.T) {
	inst := CardInstance{Type: TypeText, CorrectAnswers: []string{"3.5"}}
	for _, in := range []string{"3.50", "3.5", " 3.500 "} {
		if !CheckAnswer(inst, in) {
			t.Errorf("CheckAnswer(%q) = false, want true", in)
		}
	}
	if CheckAnswer(inst, "35") {
		t.Error("CheckAnswer(35) = true, want false")
	}
}

func TestCheckAnswer_MCQ(t *testing.T) {
	inst := CardInstance{
		Type:           TypeMCQ,
		CorrectAnswers: []string{"Paris"},
		Options:        []string{"Rome", "Paris", "Berlin", "Madrid"},
	}
	tests := []struct {
		input string
		want  bool
	}{
		{"Paris", true},
		{"paris", false},
		{" Paris", false},
		{"Rome", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := CheckAnswer(inst, tt.input); got != tt.want {
			t.Errorf("CheckAnswer(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestCheckAnswer_BlankAcceptedAnswerIgnored(t *testing.T) {
	inst := CardInstance{Type: TypeText, CorrectAnswers: []string{"", "yes"}}
	if CheckAnswer(inst, " ") {
		t.Error("blank input matched blank accepted answer")
	}
	if !CheckAnswer(inst, "YES") {
		t.Error("expected alias to match")
	}
}

func TestOptionAt(t *testing.T) {
	inst := CardInstance{Type: TypeMCQ, Options: []string{"a", "b", "c", "d"}}
	if got, ok := OptionAt(inst, "2"); !ok || got != "b" {
		t.Errorf("OptionAt(2) = %q, %v", got, ok)
	}
	for _, in := range []string{"0", "5", "x", ""} {
		if _, ok := OptionAt(inst, in); ok {
			t.Errorf("OptionAt(%q) should fail", in)
		}
	}
}

func TestPrimaryAnswer(t *testing.T) {
	if got := (CardInstance{}).PrimaryAnswer(); got != "" {
		t.Errorf("empty PrimaryAnswer = %q", got)
	}
	if got := (CardInstance{CorrectAnswers: []string{"x", "y"}}).PrimaryAnswer(); got != "x" {
		t.Errorf("PrimaryAnswer = %q", got)
	}
}

package builder

import (
	"strings"
	"testing"
)

func TestBuildPromptRequiresModelAndYear(t *testing.T) {
	t.Parallel()
	session := NewSession("user-1")
	if _, err := BuildPrompt(session); err == nil {
		t.Fatalf("expected error for incomplete session")
	}
}

func TestBuildPromptWithColorAndFeatures(t *testing.T) {
	t.Parallel()
	session := readySession(t)
	if err := session.AddOption(colorSelection("#0000FF")); err != nil {
		t.Fatalf("add color: %v", err)
	}
	if err := session.AddOption(exteriorSelection("opt-1", "Carbon Splitter", 2000)); err != nil {
		t.Fatalf("add option: %v", err)
	}
	if err := session.AddOption(exteriorSelection("opt-2", "Rear Wing", 3500)); err != nil {
		t.Fatalf("add option: %v", err)
	}

	prompt, err := BuildPrompt(session)
	if err != nil {
		t.Fatalf("build prompt: %v", err)
	}

	if !strings.HasPrefix(prompt, "A hyper-realistic, cinematic, high-resolution image of a 2024 BMW X5") {
		t.Fatalf("unexpected prompt start: %s", prompt)
	}
	if !strings.Contains(prompt, "in a stunning, high-gloss **Deep Sapphire Blue** finish") {
		t.Fatalf("color missing from prompt: %s", prompt)
	}
	if !strings.Contains(prompt, "with **Carbon Splitter, Rear Wing**") {
		t.Fatalf("features missing from prompt: %s", prompt)
	}
	if !strings.Contains(prompt, "award-winning car photography style.") {
		t.Fatalf("style suffix missing from prompt: %s", prompt)
	}
}

func TestBuildPromptStripsHexFromCustomColor(t *testing.T) {
	t.Parallel()
	session := readySession(t)
	if err := session.AddOption(colorSelection("#123456")); err != nil {
		t.Fatalf("add custom color: %v", err)
	}

	prompt, err := BuildPrompt(session)
	if err != nil {
		t.Fatalf("build prompt: %v", err)
	}
	if strings.Contains(prompt, "#123456") {
		t.Fatalf("hex must be stripped from prompt: %s", prompt)
	}
	if !strings.Contains(prompt, "**Color** finish") {
		t.Fatalf("custom color fallback missing: %s", prompt)
	}
}

func TestBuildPromptWithoutOptions(t *testing.T) {
	t.Parallel()
	session := readySession(t)

	prompt, err := BuildPrompt(session)
	if err != nil {
		t.Fatalf("build prompt: %v", err)
	}
	if strings.Contains(prompt, "finish") || strings.Contains(prompt, "with **") {
		t.Fatalf("bare session must not mention options: %s", prompt)
	}
}

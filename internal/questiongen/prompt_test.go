package questiongen

import (
	"strings"
	"testing"

	"github.com/abhisek/histquiz/internal/topics"
)

func TestBuildUserMessage_MinimalContext(t *testing.T) {
	msg := buildUserMessage(GenerateInput{Topic: testTopic(), Level: topics.Easy}, DefaultConfig())

	for _, want := range []string{
		"Topic: World War II",
		"Audience: " + DefaultAudience,
		"Difficulty: Easy",
		"Complexity: " + topics.Easy.Complexity(),
		"- Pearl Harbor and D-Day",
		"Already asked in this session:\nNone",
		"Recent mistakes by this student:\nNone",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("message missing %q", want)
		}
	}
}

func TestBuildUserMessage_CustomTopic(t *testing.T) {
	msg := buildUserMessage(GenerateInput{
		Topic:    topics.Custom("Ancient Rome"),
		Level:    topics.Medium,
		Audience: "high school students",
	}, DefaultConfig())

	if !strings.Contains(msg, "Topic: Ancient Rome") {
		t.Error("missing topic")
	}
	if strings.Contains(msg, "Description:") {
		t.Error("custom topic description duplicates its name")
	}
	if strings.Contains(msg, "Subjects to draw from") {
		t.Error("custom topic has no focus list")
	}
	if !strings.Contains(msg, "Audience: high school students") {
		t.Error("missing audience")
	}
}

func TestBuildUserMessage_Truncation(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxPriorQuestions = 2
	cfg.MaxRecentErrors = 1

	msg := buildUserMessage(GenerateInput{
		Topic:          testTopic(),
		PriorQuestions: []string{"q1", "q2", "q3"},
		RecentErrors:   []string{"e1", "e2"},
	}, cfg)

	if strings.Contains(msg, "q1") {
		t.Error("oldest prior question should be dropped")
	}
	if !strings.Contains(msg, "1. q2\n2. q3") {
		t.Error("expected last two prior questions numbered")
	}
	if strings.Contains(msg, "e1") || !strings.Contains(msg, "1. e2") {
		t.Error("expected only the latest error")
	}
}

package llm

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
)

const mockModel = "mock"

// MockResponse is one queued reply. Err, when set, is returned instead.
type MockResponse struct {
	Content json.RawMessage
	Usage   Usage
	Err     error
}

// MockProvider replays queued responses in order and records every request.
// Once the queue is empty it either fails as unavailable or, when built by
// NewOfflineProvider, answers from a small built-in World Wars bank so the
// quiz runs without an API key.
type MockProvider struct {
	mu        sync.Mutex
	responses []MockResponse
	offline   bool
	served    int
	Calls     []Request
}

// NewMockProvider queues responses for a test.
func NewMockProvider(responses ...MockResponse) *MockProvider {
	return &MockProvider{responses: responses}
}

// NewOfflineProvider returns the provider selected by HISTQUIZ_LLM_PROVIDER=mock.
func NewOfflineProvider() *MockProvider {
	return &MockProvider{offline: true}
}

func (m *MockProvider) Generate(_ context.Context, req Request) (*Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, req)

	if len(m.responses) > 0 {
		next := m.responses[0]
		m.responses = m.responses[1:]
		if next.Err != nil {
			return nil, next.Err
		}
		return &Response{Content: next.Content, Usage: next.Usage, Model: mockModel, StopReason: StopEnd}, nil
	}

	if !m.offline {
		return nil, &Error{Kind: KindUnavailable, Provider: m.Name(), Err: errors.New("no queued response")}
	}
	content, err := m.offlineContent(req)
	if err != nil {
		return nil, err
	}
	return &Response{Content: content, Model: mockModel, StopReason: StopEnd}, nil
}

func (m *MockProvider) Name() string    { return "mock" }
func (m *MockProvider) ModelID() string { return mockModel }

func (m *MockProvider) AddResponse(resp MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses = append(m.responses, resp)
}

func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

func (m *MockProvider) offlineContent(req Request) (json.RawMessage, error) {
	var prompt strings.Builder
	for _, msg := range req.Messages {
		prompt.WriteString(msg.Content)
	}
	text := prompt.String()

	name := ""
	if req.Schema != nil {
		name = req.Schema.Name
	}
	switch name {
	case "history-question":
		q := m.nextQuestion(text)
		return json.Marshal(q)
	case "video-queries":
		return json.Marshal(map[string][]string{"queries": offlineQueries(text)})
	default:
		return nil, &Error{Kind: KindUnavailable, Provider: m.Name(), Err: errors.New("no offline content for schema " + name)}
	}
}

type offlineQuestion struct {
	Topic         string `json:"-"`
	Question      string `json:"question"`
	Option1       string `json:"option1"`
	Option2       string `json:"option2"`
	Option3       string `json:"option3"`
	Option4       string `json:"option4"`
	CorrectAnswer int    `json:"correct_answer"`
	Explanation   string `json:"explanation"`
}

var offlineBank = []offlineQuestion{
	{"World War I", "In which year did World War I begin?", "1912", "1914", "1917", "1939", 2,
		"World War I began in 1914 after the assassination of Archduke Franz Ferdinand."},
	{"World War I", "Whose assassination in Sarajevo sparked World War I?", "Archduke Franz Ferdinand", "Kaiser Wilhelm II", "Tsar Nicholas II", "King George V", 1,
		"Archduke Franz Ferdinand of Austria-Hungary was shot in Sarajevo in June 1914."},
	{"World War I", "What kind of fighting is World War I on the Western Front best known for?", "Jungle fighting", "Naval blockades only", "Trench warfare", "Desert tank battles", 3,
		"Soldiers on the Western Front dug long lines of trenches and fought from them for years."},
	{"World War I", "Which country joined World War I in 1917 on the side of the Allies?", "Japan", "Russia", "Italy", "The United States", 4,
		"The United States entered the war in April 1917."},
	{"World War II", "In which year did World War II end?", "1943", "1944", "1945", "1946", 3,
		"World War II ended in 1945, in Europe in May and in Asia in September."},
	{"World War II", "Which country did Germany invade in September 1939, starting World War II in Europe?", "France", "Poland", "Belgium", "Norway", 2,
		"Germany invaded Poland on 1 September 1939, and Britain and France declared war two days later."},
	{"World War II", "What was D-Day?", "The Allied landings in Normandy", "The bombing of Pearl Harbor", "The end of the war in Europe", "The Battle of Britain", 1,
		"On 6 June 1944 Allied troops landed on the beaches of Normandy in France."},
	{"World War II", "Which attack brought the United States into World War II?", "The Blitz", "The invasion of Poland", "The attack on Pearl Harbor", "The Battle of Midway", 3,
		"Japan attacked Pearl Harbor in Hawaii on 7 December 1941."},
	{"World Wars General", "Which international organization was created after World War I to keep the peace?", "The United Nations", "NATO", "The European Union", "The League of Nations", 4,
		"The League of Nations was set up in 1920. The United Nations replaced it after World War II."},
	{"World Wars General", "Which country fought on opposite sides in the two World Wars?", "Italy", "Germany", "Britain", "France", 1,
		"Italy was an Allied power in World War I but joined Germany in World War II."},
}

// nextQuestion rotates through the bank, preferring the prompt's topic and
// skipping questions the prompt lists as already asked.
func (m *MockProvider) nextQuestion(prompt string) offlineQuestion {
	topic := ""
	for _, line := range strings.Split(prompt, "\n") {
		if t, ok := strings.CutPrefix(line, "Topic: "); ok {
			topic = strings.TrimSpace(t)
			break
		}
	}

	pick := func(matchTopic bool) (offlineQuestion, bool) {
		for i := range offlineBank {
			q := offlineBank[(m.served+i)%len(offlineBank)]
			if matchTopic && q.Topic != topic {
				continue
			}
			if strings.Contains(prompt, q.Question) {
				continue
			}
			m.served += i + 1
			return q, true
		}
		return offlineQuestion{}, false
	}
	if q, ok := pick(true); ok {
		return q
	}
	if q, ok := pick(false); ok {
		return q
	}
	m.served++
	return offlineBank[m.served%len(offlineBank)]
}

// offlineQueries reads the topic from an answer prompt ("... questions
// about X.") and falls back to general queries for the final prompt.
func offlineQueries(prompt string) []string {
	_, rest, ok := strings.Cut(prompt, " questions about ")
	topic, _, _ := strings.Cut(rest, ".\n")
	topic = strings.TrimSpace(topic)
	if !ok || topic == "" {
		return []string{"World War I explained for kids", "World War II explained for kids", "World Wars documentary for students"}
	}
	return []string{topic + " explained for kids", topic + " animated history", "World Wars documentary for students"}
}

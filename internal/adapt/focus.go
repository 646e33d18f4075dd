package adapt

import (
	"math"

	"github.com/abhisek/histquiz/internal/topics"
)

const (
	// MinObservations is the smallest answer log the focus model trains on.
	MinObservations = 3

	fitIterations   = 500
	fitLearningRate = 0.5
	fitL2           = 1.0
)

// Observation is one logged answer used to train the focus model.
type Observation struct {
	Topic   string
	Level   topics.Level
	Correct bool
}

// Model is a logistic regression over one-hot (topic, level) features.
type Model struct {
	bias    float64
	topic   map[string]float64
	level   map[topics.Level]float64
	trained int
}

// Fit trains a Model on obs. It returns nil when there are fewer than
// MinObservations or every observation has the same outcome.
func Fit(obs []Observation) *Model {
	if len(obs) < MinObservations || singleClass(obs) {
		return nil
	}

	m := &Model{
		topic:   make(map[string]float64),
		level:   make(map[topics.Level]float64),
		trained: len(obs),
	}
	for _, o := range obs {
		m.topic[o.Topic] = 0
		m.level[o.Level] = 0
	}

	n := float64(len(obs))
	for iter := 0; iter < fitIterations; iter++ {
		var gBias float64
		gTopic := make(map[string]float64, len(m.topic))
		gLevel := make(map[topics.Level]float64, len(m.level))

		for _, o := range obs {
			err := m.Predict(o.Topic, o.Level) - label(o.Correct)
			gBias += err
			gTopic[o.Topic] += err
			gLevel[o.Level] += err
		}

		// L2 penalty on feature weights, not on the bias.
		m.bias -= fitLearningRate * gBias / n
		for k, w := range m.topic {
			m.topic[k] = w - fitLearningRate*(gTopic[k]+fitL2*w)/n
		}
		for k, w := range m.level {
			m.level[k] = w - fitLearningRate*(gLevel[k]+fitL2*w)/n
		}
	}
	return m
}

// Predict returns the probability of a correct answer at (topic, level).
// Topics and levels absent from training contribute nothing.
func (m *Model) Predict(topic string, level topics.Level) float64 {
	z := m.bias + m.topic[topic] + m.level[level]
	return 1 / (1 + math.Exp(-z))
}

// Observations returns the number of answers the model was trained on.
func (m *Model) Observations() int { return m.trained }

// SelectFocus returns the (topic, level) with the lowest predicted chance of
// a correct answer. When the model cannot be trained it returns the first
// topic at Easy and ok=false.
func SelectFocus(obs []Observation, topicNames []string, levels []topics.Level) (topic string, level topics.Level, ok bool) {
	if len(topicNames) == 0 {
		return "", topics.Easy, false
	}
	m := Fit(obs)
	if m == nil || len(levels) == 0 {
		return topicNames[0], topics.Easy, false
	}

	best := math.Inf(1)
	for _, t := range topicNames {
		for _, l := range levels {
			if p := m.Predict(t, l); p < best {
				best, topic, level = p, t, l
			}
		}
	}
	return topic, level, true
}

// Performance returns the mean correctness of obs at (topic, level), or 0.5
// when there is no matching observation.
func Performance(obs []Observation, topic string, level topics.Level) float64 {
	var n, correct int
	for _, o := range obs {
		if o.Topic == topic && o.Level == level {
			n++
			if o.Correct {
				correct++
			}
		}
	}
	if n == 0 {
		return 0.5
	}
	return float64(correct) / float64(n)
}

func singleClass(obs []Observation) bool {
	for _, o := range obs[1:] {
		if o.Correct != obs[0].Correct {
			return false
		}
	}
	return true
}

func label(correct bool) float64 {
	if correct {
		return 1
	}
	return 0
}

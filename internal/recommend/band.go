package recommend

// Band is a performance bracket derived from the final percentage.
type Band int

const (
	Foundation Band = iota
	Good
	Excellent
)

// BandFor maps a percentage (0-100) to its band.
func BandFor(percent float64) Band {
	switch {
	case percent >= 80:
		return Excellent
	case percent >= 60:
		return Good
	default:
		return Foundation
	}
}

// Percent returns score/total as a percentage, or 0 when total is 0.
func Percent(score, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(score) / float64(total) * 100
}

func (b Band) String() string {
	switch b {
	case Excellent:
		return "Excellent"
	case Good:
		return "Good"
	default:
		return "Foundation"
	}
}

// Headline is the first line of end-of-quiz feedback.
func (b Band) Headline() string {
	switch b {
	case Excellent:
		return "Outstanding work! You have excellent knowledge of World Wars!"
	case Good:
		return "Good job! You have solid understanding with room to grow!"
	default:
		return "Keep learning! History takes time to master!"
	}
}

// Feedback is the encouragement shown under the headline.
func (b Band) Feedback() string {
	switch b {
	case Excellent:
		return "You're ready for more advanced historical topics!"
	case Good:
		return "Keep studying to master all the important details!"
	default:
		return "Focus on the basics and you'll improve quickly!"
	}
}

func (b Band) description() string {
	switch b {
	case Excellent:
		return "excellent work"
	case Good:
		return "good understanding but room for improvement"
	default:
		return "need to strengthen your foundation"
	}
}

func (b Band) focus() string {
	switch b {
	case Excellent:
		return "advanced World Wars topics and connections between events"
	case Good:
		return "reviewing key facts and important events"
	default:
		return "basic World Wars facts, dates, and major figures"
	}
}

// StudyTips returns general advice for improving history knowledge.
func StudyTips() []string {
	return []string{
		"Read your history textbook carefully",
		"Watch documentaries about WWI and WWII",
		"Visit history museums if possible",
		"Ask your teacher questions about confusing topics",
		"Practice with timeline activities",
		"Learn about key figures like Roosevelt, Churchill, and Hitler",
	}
}

// QuizTips are shown alongside the quiz.
func QuizTips() []string {
	return []string{
		"Take your time reading each question",
		"Think about what you learned in class",
		"Learn from mistakes: check the explanations",
		"Watch videos to learn more",
	}
}

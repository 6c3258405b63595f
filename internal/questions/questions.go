package questions

// Question is one interview prompt. Navigation is a view concern only:
// a single continuous recording answers all questions.
type Question struct {
	Title string
	Body  string
	Tip   string
}

var prompts = []Question{
	{
		Title: "Self-Introduction",
		Body:  "Can you briefly introduce yourself, your background, and what excites you about joining this program?",
		Tip:   "Be concise and highlight key details about yourself in 1-2 minutes.",
	},
	{
		Title: "Innovation and Digital Transformation Mindset",
		Body:  "What role do you think digital transformation plays in shaping the future of banking? Can you share an example of an innovation or technology that could significantly impact the banking industry?",
	},
	{
		Title: "Analytical Thinking and Problem-Solving",
		Body:  "If you were tasked with analyzing why a bank's YoY revenue decreased by 10%, what steps would you take to identify the root cause?",
	},
	{
		Title: "Motivational Fit and Resilience",
		Body:  "Describe a challenging project or task you worked on. How did you approach it, and what did you learn that could help you in this bootcamp?",
	},
}

// List returns the fixed ordered prompts.
func List() []Question {
	out := make([]Question, len(prompts))
	copy(out, prompts)
	return out
}

// Navigator tracks the currently viewed prompt index, clamped to the
// list bounds with no wraparound.
type Navigator struct {
	questions []Question
	index     int
}

func NewNavigator() Navigator {
	return Navigator{questions: List()}
}

func (n *Navigator) Len() int {
	return len(n.questions)
}

func (n *Navigator) Index() int {
	return n.index
}

func (n *Navigator) Current() Question {
	return n.questions[n.index]
}

func (n *Navigator) Next() {
	if n.index < len(n.questions)-1 {
		n.index++
	}
}

func (n *Navigator) Previous() {
	if n.index > 0 {
		n.index--
	}
}

package chakra

import "fmt"

// QuestionsPerCenter is the fixed number of prompts for every center.
const QuestionsPerCenter = 4

// Question is one Likert prompt owned by a single center.
type Question struct {
	ID       string
	CenterID ID
	Text     string
}

var prompts = map[ID][QuestionsPerCenter]string{
	Root: {
		"I feel safe and secure in my daily life.",
		"I feel connected to my body and physically grounded.",
		"I trust that my basic needs will be met.",
		"I feel stable when things around me change.",
	},
	Sacral: {
		"I allow myself to enjoy life's pleasures without guilt.",
		"I express my emotions freely and appropriately.",
		"I feel creatively inspired.",
		"I am comfortable with intimacy and closeness.",
	},
	Solar: {
		"I feel confident in my decisions.",
		"I can set boundaries and say no when needed.",
		"I feel motivated to pursue my goals.",
		"My digestion feels calm and balanced.",
	},
	Heart: {
		"I find it easy to give love to others.",
		"I can receive love and kindness from others.",
		"I forgive others and myself without holding grudges.",
		"I feel compassion toward people who are struggling.",
	},
	Throat: {
		"I speak my truth even when it is difficult.",
		"I feel heard when I communicate.",
		"I listen to others without interrupting.",
		"I express my ideas clearly.",
	},
	ThirdEye: {
		"I trust my intuition when making choices.",
		"I can see the bigger picture in difficult situations.",
		"I remember and reflect on my dreams.",
		"My mind feels clear and focused.",
	},
	Crown: {
		"I feel connected to something greater than myself.",
		"I experience moments of deep peace.",
		"I feel a sense of purpose in my life.",
		"I am open to new ideas and perspectives.",
	},
}

var questions = buildQuestions()

func buildQuestions() []Question {
	out := make([]Question, 0, len(centers)*QuestionsPerCenter)
	for _, id := range All() {
		for i, text := range prompts[id] {
			out = append(out, Question{
				ID:       fmt.Sprintf("%s-%d", id, i+1),
				CenterID: id,
				Text:     text,
			})
		}
	}
	return out
}

// Questions returns the 28 questions in canonical order. The returned slice
// is a copy; callers may reorder it freely.
func Questions() []Question {
	out := make([]Question, len(questions))
	copy(out, questions)
	return out
}

// QuestionByID finds a question by its id.
func QuestionByID(id string) (Question, bool) {
	for _, q := range questions {
		if q.ID == id {
			return q, true
		}
	}
	return Question{}, false
}

package assessment

import "github.com/abhisek/aura/internal/chakra"

// Message is a human-readable healing message for a center.
type Message struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// HealingMessage returns the message for id. Unknown ids get the heart
// message.
func HealingMessage(id chakra.ID) Message {
	switch id {
	case chakra.Root:
		return Message{
			Title: "Return to the Ground Beneath You",
			Body:  "Your root center is asking for stability. Spend time in nature, walk barefoot, and build simple routines that help you feel safe in your body.",
		}
	case chakra.Sacral:
		return Message{
			Title: "Let Your Feelings Flow",
			Body:  "Your sacral center wants more room for joy and creativity. Make something with your hands, move your hips, and let emotions pass through without judgement.",
		}
	case chakra.Solar:
		return Message{
			Title: "Reclaim Your Inner Fire",
			Body:  "Your solar plexus is calling for confidence. Keep one small promise to yourself each day, set a clear boundary, and notice how your strength grows.",
		}
	case chakra.Throat:
		return Message{
			Title: "Speak Your Truth Gently",
			Body:  "Your throat center wants to be heard. Journal freely, hum or sing, and practise saying what you need with kindness and clarity.",
		}
	case chakra.ThirdEye:
		return Message{
			Title: "Trust Your Inner Vision",
			Body:  "Your third eye is asking for quiet. Reduce screen time before bed, keep a dream journal, and give your intuition space to speak.",
		}
	case chakra.Crown:
		return Message{
			Title: "Reconnect With Something Greater",
			Body:  "Your crown center seeks meaning. Sit in silence for a few minutes each day, practise gratitude, and stay open to wonder.",
		}
	default:
		return Message{
			Title: "Open Your Heart Again",
			Body:  "Your heart center is longing for connection. Offer yourself the compassion you give others, reach out to someone you love, and let kindness in.",
		}
	}
}

// Keyword returns a one-word theme for id, or "Balance" when unknown.
func Keyword(id chakra.ID) string {
	switch id {
	case chakra.Root:
		return "Stability"
	case chakra.Sacral:
		return "Creativity"
	case chakra.Solar:
		return "Confidence"
	case chakra.Heart:
		return "Compassion"
	case chakra.Throat:
		return "Expression"
	case chakra.ThirdEye:
		return "Intuition"
	case chakra.Crown:
		return "Connection"
	default:
		return "Balance"
	}
}
